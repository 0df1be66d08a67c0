// Package format decodes the binary header of compiled policy module
// packages. Only the fields needed to identify a package are read; the
// policy body itself is never interpreted.
//
// On-disk layout (all words little-endian):
//
//	Offset  Size      Description
//	------  --------  ---------------------------------------------------
//	 0x00    4        Package magic (0xf97cff8f)
//	 0x04    4        Container format version
//	 0x08    4        Section count N
//	 0x0C    4*N      Absolute section offsets
//
// The first section is the policy module header:
//
//	 4        Section magic (0xf97cff8d, or 0xf97cff90 for an
//	          old-style base package carrying file contexts first)
//	 4        Target string length, then the string "SE Linux Module"
//	 4        Policy type (1 = base, 2 = module)
//	 4        Policy format version
//	 4        Config word
//	 4        Symbol table count
//	 4        Object context count
//	 4+len    Module name (modules only, length-prefixed)
//	 4+len    Module version (modules only, length-prefixed)
package format

import (
	"fmt"

	"github.com/policytools/storemig/internal/buf"
)

// PackageInfo holds the identity fields of a module package header.
// Name and Version are empty for base packages.
type PackageInfo struct {
	Type    PolicyType
	Name    string
	Version string
}

// ParsePackageInfo extracts type, name, and version from a module package
// buffer. The buffer is decompressed first when it carries a recognized
// compressed-stream magic. Malformed or truncated input is reported as an
// error wrapping one of the sentinel errors in this package.
func ParsePackageInfo(data []byte) (PackageInfo, error) {
	data, err := Decompress(data)
	if err != nil {
		return PackageInfo{}, err
	}
	if len(data) < packageHeaderSize {
		return PackageInfo{}, fmt.Errorf("package header: %w", ErrTruncated)
	}
	if buf.U32LE(data) != PackageMagic {
		return PackageInfo{}, fmt.Errorf("package header: %w", ErrBadMagic)
	}
	nsec := int(buf.U32LE(data[8:]))
	if nsec < 1 {
		return PackageInfo{}, fmt.Errorf("package header: no sections: %w", ErrMalformed)
	}
	if !buf.FitsList(len(data), packageHeaderSize, nsec, 4) {
		return PackageInfo{}, fmt.Errorf("section offsets: %w", ErrTruncated)
	}
	off := int(buf.U32LE(data[packageHeaderSize:]))
	if off < packageHeaderSize+4*nsec || off > len(data) {
		return PackageInfo{}, fmt.Errorf("section offset %#x: %w", off, ErrMalformed)
	}
	return parseModuleHeader(data[off:])
}

// parseModuleHeader decodes the policy module section at the start of sec.
func parseModuleHeader(sec []byte) (PackageInfo, error) {
	c := cursor{b: sec}
	magic, err := c.u32()
	if err != nil {
		return PackageInfo{}, err
	}
	switch magic {
	case SectionFileContexts:
		// Old-style base package: file contexts come first and there is
		// no module header to read a name or version from.
		return PackageInfo{Type: TypeBase}, nil
	case ModuleMagic:
	default:
		return PackageInfo{}, fmt.Errorf("module section: %w", ErrBadMagic)
	}

	target, err := c.str()
	if err != nil {
		return PackageInfo{}, err
	}
	if target != ModuleTarget {
		return PackageInfo{}, fmt.Errorf("module target %q: %w", target, ErrMalformed)
	}
	// Type word, then policy format version, config word, symbol and
	// object context counts, none of which matter for identification.
	typeWord, err := c.u32()
	if err != nil {
		return PackageInfo{}, err
	}
	for i := 0; i < 4; i++ {
		if _, err = c.u32(); err != nil {
			return PackageInfo{}, err
		}
	}

	switch typeWord {
	case policyTypeBase:
		return PackageInfo{Type: TypeBase}, nil
	case policyTypeModule:
	default:
		return PackageInfo{}, fmt.Errorf("policy type %d: %w", typeWord, ErrMalformed)
	}

	name, err := c.str()
	if err != nil {
		return PackageInfo{}, err
	}
	version, err := c.str()
	if err != nil {
		return PackageInfo{}, err
	}
	return PackageInfo{Type: TypeModule, Name: name, Version: version}, nil
}

// cursor walks a byte slice with bounds-checked reads.
type cursor struct {
	b   []byte
	off int
}

func (c *cursor) u32() (uint32, error) {
	if c.off+4 > len(c.b) {
		return 0, fmt.Errorf("module section: %w", ErrTruncated)
	}
	v := buf.U32LE(c.b[c.off:])
	c.off += 4
	return v, nil
}

func (c *cursor) str() (string, error) {
	n, err := c.u32()
	if err != nil {
		return "", err
	}
	if n > maxNameLen {
		return "", fmt.Errorf("string length %d: %w", n, ErrMalformed)
	}
	if c.off+int(n) > len(c.b) {
		return "", fmt.Errorf("module section: %w", ErrTruncated)
	}
	s := string(c.b[c.off : c.off+int(n)])
	c.off += int(n)
	return s, nil
}
