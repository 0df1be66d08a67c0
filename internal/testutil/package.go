// Package testutil builds policy module package fixtures for tests.
package testutil

import "encoding/binary"

// Magic numbers mirrored from internal/format. Redefined here so fixture
// construction stays independent of the decoder under test.
const (
	packageMagic        = 0xf97cff8f
	moduleMagic         = 0xf97cff8d
	sectionFileContexts = 0xf97cff90
	moduleTarget        = "SE Linux Module"
)

// BuildModulePackage returns the bytes of a loadable module package whose
// header declares the given module name and version.
func BuildModulePackage(name, version string) []byte {
	var sec []byte
	sec = appendU32(sec, moduleMagic)
	sec = appendStr(sec, moduleTarget)
	sec = appendU32(sec, 2)  // policy type: module
	sec = appendU32(sec, 19) // policy format version
	sec = appendU32(sec, 0)  // config word
	sec = appendU32(sec, 0)  // symbol table count
	sec = appendU32(sec, 0)  // object context count
	sec = appendStr(sec, name)
	sec = appendStr(sec, version)
	return wrapPackage(sec)
}

// BuildBasePackage returns the bytes of a base policy package. Base headers
// carry no module name or version.
func BuildBasePackage() []byte {
	var sec []byte
	sec = appendU32(sec, moduleMagic)
	sec = appendStr(sec, moduleTarget)
	sec = appendU32(sec, 1) // policy type: base
	sec = appendU32(sec, 19)
	sec = appendU32(sec, 0)
	sec = appendU32(sec, 0)
	sec = appendU32(sec, 0)
	return wrapPackage(sec)
}

// BuildLegacyBasePackage returns a package whose first section is a
// file-contexts section, the old-style base layout.
func BuildLegacyBasePackage() []byte {
	var sec []byte
	sec = appendU32(sec, sectionFileContexts)
	sec = append(sec, "/ system_u:object_r:root_t"...)
	return wrapPackage(sec)
}

// wrapPackage prefixes sec with a single-section package container.
func wrapPackage(sec []byte) []byte {
	var pkg []byte
	pkg = appendU32(pkg, packageMagic)
	pkg = appendU32(pkg, 1) // container format version
	pkg = appendU32(pkg, 1) // section count
	pkg = appendU32(pkg, 16)
	return append(pkg, sec...)
}

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

func appendStr(b []byte, s string) []byte {
	b = appendU32(b, uint32(len(s)))
	return append(b, s...)
}
