package store

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Priority bounds for modules in the migrated layout.
const (
	PriorityMin = 1
	PriorityMax = 999
)

// ErrInvalid indicates a module metadata field failed validation.
var ErrInvalid = errors.New("store: invalid module metadata")

// Enabled is the tri-state enablement of a module: on, off, or unknown.
type Enabled int

const (
	EnabledUnknown Enabled = iota - 1
	EnabledOff
	EnabledOn
)

// ModuleInfo describes one module in the migrated, priority-bucketed tree.
type ModuleInfo struct {
	Name     string
	Priority int
	Version  string
	LangExt  string
	Enabled  Enabled
}

// ValidatePriority checks priority is within [PriorityMin, PriorityMax].
func ValidatePriority(priority int) error {
	if priority < PriorityMin || priority > PriorityMax {
		return fmt.Errorf("priority %d out of range [%d, %d]: %w",
			priority, PriorityMin, PriorityMax, ErrInvalid)
	}
	return nil
}

// ValidateName checks a module name. A name must start with a letter and
// continue with letters, digits, '_' or '-', where any of those may be
// preceded by a single '.'. The reserved base name is always valid.
func ValidateName(name string) error {
	if name == BaseName {
		return nil
	}
	if name == "" || !isAlpha(name[0]) {
		return fmt.Errorf("module name %q: %w", name, ErrInvalid)
	}
	for i := 1; i < len(name); i++ {
		if isNameChar(name[i]) {
			continue
		}
		if name[i] == '.' && i+1 < len(name) && isNameChar(name[i+1]) {
			i++
			continue
		}
		return fmt.Errorf("module name %q: %w", name, ErrInvalid)
	}
	return nil
}

// ValidateLangExt checks a language extension: alphanumeric first, then
// letters, digits, '_' or '-'.
func ValidateLangExt(ext string) error {
	if ext == "" || !isAlnum(ext[0]) {
		return fmt.Errorf("lang_ext %q: %w", ext, ErrInvalid)
	}
	for i := 1; i < len(ext); i++ {
		if !isNameChar(ext[i]) {
			return fmt.Errorf("lang_ext %q: %w", ext, ErrInvalid)
		}
	}
	return nil
}

// ValidateVersion checks a version string: non-empty printable ASCII.
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("empty version: %w", ErrInvalid)
	}
	for i := 0; i < len(version); i++ {
		if version[i] < 0x20 || version[i] > 0x7e {
			return fmt.Errorf("version %q: %w", version, ErrInvalid)
		}
	}
	return nil
}

// Validate checks every field of the module record.
func (m ModuleInfo) Validate() error {
	if err := ValidatePriority(m.Priority); err != nil {
		return err
	}
	if err := ValidateName(m.Name); err != nil {
		return err
	}
	if err := ValidateLangExt(m.LangExt); err != nil {
		return err
	}
	return ValidateVersion(m.Version)
}

// PathKind selects a path produced by ModulePath.
type PathKind int

const (
	// PathPriority is the priority bucket directory.
	PathPriority PathKind = iota
	// PathModule is the module's own directory.
	PathModule
	// PathPackage is the compiled package file.
	PathPackage
	// PathLangExt is the compiler-selection sidecar.
	PathLangExt
	// PathVersion is the version sidecar.
	PathVersion
	// PathDisabled is the disabled marker under the store's modules tree.
	PathDisabled
)

// ModulePath resolves a path for the module inside the migrated store
// tree. Manager-owned paths render the priority zero-padded to three
// digits, unlike the flat integer buckets the migration itself writes.
func (m ModuleInfo) ModulePath(l Layout, storeName string, kind PathKind) (string, error) {
	if err := ValidatePriority(m.Priority); err != nil {
		return "", err
	}
	prio := filepath.Join(l.NewModules(storeName), fmt.Sprintf("%03d", m.Priority))
	if kind == PathPriority {
		return prio, nil
	}
	if err := ValidateName(m.Name); err != nil {
		return "", err
	}
	dir := filepath.Join(prio, m.Name)
	switch kind {
	case PathModule:
		return dir, nil
	case PathPackage:
		if err := ValidateLangExt(m.LangExt); err != nil {
			return "", err
		}
		return filepath.Join(dir, m.Name+"."+m.LangExt), nil
	case PathLangExt:
		return filepath.Join(dir, LangExtFile), nil
	case PathVersion:
		return filepath.Join(dir, VersionFile), nil
	case PathDisabled:
		return filepath.Join(l.NewModules(storeName), DisabledDir, m.Name), nil
	default:
		return "", fmt.Errorf("path kind %d: %w", kind, ErrInvalid)
	}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

func isNameChar(c byte) bool {
	return isAlnum(c) || c == '_' || c == '-'
}
