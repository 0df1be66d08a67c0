package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/policytools/storemig/internal/format"
	"github.com/policytools/storemig/store"
)

// DefaultVersion is written to the version sidecar when the package
// header yields no usable version.
const DefaultVersion = "1.0.0"

// ImportStatus classifies the outcome of one module import.
type ImportStatus int

const (
	// StatusImported means the module landed in the new tree.
	StatusImported ImportStatus = iota
	// StatusSkipped means the entry was not a module package.
	StatusSkipped
	// StatusFailed means the import was abandoned; the rest of the
	// store is unaffected.
	StatusFailed
)

// ImportResult is the per-module outcome. Module-level failures are data,
// not errors: a single bad module never aborts the store migration.
type ImportResult struct {
	Module  string
	Status  ImportStatus
	Version string
	Err     error
}

// importModule installs one module package into the priority bucket of
// the new tree: a module directory labeled with conLabel, the copied
// package, and the lang_ext and version sidecars.
func (m *Migrator) importModule(storeName, filename, conLabel string, isBase bool) ImportResult {
	m.logger.Debug("installing module", "store", storeName, "file", filename)

	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	if ext != store.PackageExt {
		m.logger.Warn("invalid extension, skipping", "file", filename)
		return ImportResult{Module: name, Status: StatusSkipped}
	}

	root := m.layout.OldModules(storeName)
	if isBase {
		root = m.layout.OldStore(storeName)
		// The reserved destination keeps the base package from
		// colliding with a module legitimately named "base".
		name = store.BaseName
	}

	fail := func(err error) ImportResult {
		return ImportResult{Module: name, Status: StatusFailed, Err: err}
	}

	if err := store.ValidateName(name); err != nil {
		return fail(err)
	}

	dir := filepath.Join(m.layout.BottomDir(storeName), name)
	if err := m.mkdirWithLabel(conLabel, dir, 0o700); err != nil {
		return fail(err)
	}
	if err := m.copyWithContext(filepath.Join(root, filename), filepath.Join(dir, name+ext)); err != nil {
		return fail(err)
	}
	if err := os.WriteFile(filepath.Join(dir, store.LangExtFile), []byte(store.PackageLang), 0o600); err != nil {
		return fail(fmt.Errorf("write lang_ext: %w", err))
	}

	version := DefaultVersion
	if !isBase {
		version = m.packageVersion(filepath.Join(root, filename))
	}
	if err := os.WriteFile(filepath.Join(dir, store.VersionFile), []byte(version), 0o600); err != nil {
		return fail(fmt.Errorf("write version: %w", err))
	}
	return ImportResult{Module: name, Status: StatusImported, Version: version}
}

// packageVersion recovers the declared version from a package header,
// falling back to DefaultVersion on any read or parse failure.
func (m *Migrator) packageVersion(path string) string {
	data, err := os.ReadFile(path)
	if err == nil {
		var info format.PackageInfo
		if info, err = format.ParsePackageInfo(data); err == nil && info.Version != "" {
			return info.Version
		}
	}
	if err == nil {
		err = errors.New("package header carries no version")
	}
	m.logger.Warn("unable to determine version, using default", "package", path, "error", err)
	return DefaultVersion
}
