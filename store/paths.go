// Package store models the on-disk policy store: the legacy and migrated
// directory layouts, per-module metadata, and a direct-mode manager handle
// with a transactional rebuild surface.
package store

import (
	"path/filepath"
	"strconv"
)

// Default roots of the legacy and migrated policy trees.
const (
	DefaultOldRoot = "/etc/selinux"
	DefaultNewRoot = "/var/lib/selinux"
)

// Sidecar and lock filenames inside a store.
const (
	LangExtFile = "lang_ext"
	VersionFile = "version"
	CommitNum   = "commit_num"
	TransLock   = "semanage.trans.LOCK"
	RebuildFlag = "rebuild.request"
	DisabledDir = "disabled"
	BaseName    = "_base"
	PackageExt  = ".pp"
	PackageLang = "pp"
)

// TopPaths is the allow-list of configuration artifacts that live at the
// top level of a store and are copied verbatim during migration.
var TopPaths = []string{
	"file_contexts",
	"homedir_template",
	"file_contexts.template",
	CommitNum,
	"ports.local",
	"interfaces.local",
	"nodes.local",
	"booleans.local",
	"file_contexts.local",
	"seusers",
	"users.local",
	"users_extra.local",
	"seusers.final",
	"users_extra",
	"netfilter_contexts",
	"file_contexts.homedirs",
	"disable_dontaudit",
}

// IsTopPath reports whether name is one of the copied top-level artifacts.
func IsTopPath(name string) bool {
	for _, p := range TopPaths {
		if name == p {
			return true
		}
	}
	return false
}

// Layout resolves store names to concrete paths in both trees. It is pure
// string composition, reproducible byte for byte, so path existence can be
// used to detect an already-migrated store.
type Layout struct {
	OldRoot  string
	NewRoot  string
	Priority int
}

// DefaultLayout returns the system layout with the given module priority.
func DefaultLayout(priority int) Layout {
	return Layout{OldRoot: DefaultOldRoot, NewRoot: DefaultNewRoot, Priority: priority}
}

// OldStore is the active tree of a store in the legacy layout.
func (l Layout) OldStore(store string) string {
	return filepath.Join(l.OldRoot, store, "modules", "active")
}

// OldModules is the module package directory in the legacy layout.
func (l Layout) OldModules(store string) string {
	return filepath.Join(l.OldStore(store), "modules")
}

// NewStore is the active tree of a store in the migrated layout.
func (l Layout) NewStore(store string) string {
	return filepath.Join(l.NewRoot, store, "active")
}

// NewModules is the priority-bucketed module tree in the migrated layout.
func (l Layout) NewModules(store string) string {
	return filepath.Join(l.NewStore(store), "modules")
}

// BottomDir is the priority bucket every module migrated in one run lands in.
func (l Layout) BottomDir(store string) string {
	return filepath.Join(l.NewModules(store), strconv.Itoa(l.Priority))
}
