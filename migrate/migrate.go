// Package migrate moves policy stores from the legacy directory layout to
// the priority-bucketed layout and triggers a rebuild of the active
// policy afterwards.
//
// Every filesystem object the migration creates is labeled from a
// reference object in the legacy tree. The platform's create-label is
// process-global, thread-scoped state, so Run pins itself to one OS
// thread and the package must not be used concurrently.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/policytools/storemig/internal/selinux"
	"github.com/policytools/storemig/store"
)

// Options is the configuration of one migration run.
type Options struct {
	// Priority is the bucket every migrated module lands in.
	Priority int
	// Store restricts the run to one store. Empty migrates every store
	// found under the legacy root.
	Store string
	// CleanOld removes the legacy modules directory of each store after
	// a successful migration.
	CleanOld bool
	// OldRoot and NewRoot override the default trees, mainly for tests.
	OldRoot string
	NewRoot string
}

// Migrator performs the layout transformation for one or more stores.
type Migrator struct {
	layout store.Layout
	opts   Options
	plat   selinux.Platform
	logger *log.Logger
}

// New validates opts and builds a Migrator on the given platform.
func New(opts Options, plat selinux.Platform, logger *log.Logger) (*Migrator, error) {
	if err := store.ValidatePriority(opts.Priority); err != nil {
		return nil, err
	}
	l := store.DefaultLayout(opts.Priority)
	if opts.OldRoot != "" {
		l.OldRoot = opts.OldRoot
	}
	if opts.NewRoot != "" {
		l.NewRoot = opts.NewRoot
	}
	return &Migrator{layout: l, opts: opts, plat: plat, logger: logger}, nil
}

// Layout returns the path layout the migrator operates on.
func (m *Migrator) Layout() store.Layout {
	return m.layout
}

// Run migrates every candidate store and then triggers the policy
// rebuild. Label failures abort the run; store- and file-level problems
// are logged and skipped.
func (m *Migrator) Run() error {
	// The create-label attribute is scoped to the calling OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := m.createDirFrom(m.layout.OldRoot, m.layout.NewRoot, 0o755); err != nil {
		return err
	}

	stores, err := m.candidateStores()
	if err != nil {
		return err
	}
	for _, name := range stores {
		if _, err := os.Stat(m.layout.OldModules(name)); err != nil {
			// Already migrated, or not a policy store at all.
			m.logger.Debug("no legacy modules directory, skipping", "store", name)
			continue
		}
		if _, err := os.Stat(m.layout.NewStore(name)); err == nil {
			m.logger.Warn("store already migrated but legacy modules still exist, skipping",
				"store", name)
			continue
		}
		if err := m.MigrateStore(name); err != nil {
			return err
		}
		if m.opts.CleanOld {
			if err := os.RemoveAll(m.layout.OldModules(name)); err != nil {
				m.logger.Warn("unable to remove legacy modules directory",
					"store", name, "error", err)
			}
		}
	}

	return m.Rebuild()
}

// MigrateStore transforms one store: skeleton directories labeled from
// their legacy counterparts, the base module, the allow-listed top-level
// artifacts, and every module package.
func (m *Migrator) MigrateStore(storeName string) error {
	oldStore := m.layout.OldStore(storeName)
	oldModules := m.layout.OldModules(storeName)
	newStore := m.layout.NewStore(storeName)
	newModules := m.layout.NewModules(storeName)
	bottomDir := m.layout.BottomDir(storeName)

	m.logger.Info("migrating store", "from", oldStore, "to", newStore)

	polRoot, err := m.plat.PolicyRoot()
	if err != nil {
		return fmt.Errorf("policy root: %w", err)
	}
	if err := m.createDirFrom(polRoot, filepath.Join(m.layout.NewRoot, storeName), 0o755); err != nil {
		return err
	}
	if err := m.createDirFrom(oldModules, newStore, 0o700); err != nil {
		return err
	}
	if err := m.createDirFrom(oldStore, newModules, 0o700); err != nil {
		return err
	}
	if err := m.createDirFrom(oldStore, bottomDir, 0o700); err != nil {
		return err
	}

	// Module directories share whatever label the bottom directory
	// actually ended up with, read back rather than re-derived.
	conLabel, err := m.plat.FileLabel(bottomDir)
	if err != nil {
		return fmt.Errorf("read label of %s: %w", bottomDir, err)
	}

	// The base package lives in the store root, not the modules
	// directory, and lands under a reserved name.
	m.report(m.importModule(storeName, "base"+store.PackageExt, conLabel, true))

	tops, err := os.ReadDir(oldStore)
	if err != nil {
		return fmt.Errorf("read store %s: %w", oldStore, err)
	}
	for _, e := range tops {
		if e.IsDir() || !store.IsTopPath(e.Name()) {
			continue
		}
		src := filepath.Join(oldStore, e.Name())
		if err := m.copyWithContext(src, filepath.Join(newStore, e.Name())); err != nil {
			return err
		}
	}

	mods, err := os.ReadDir(oldModules)
	if err != nil {
		return fmt.Errorf("read modules %s: %w", oldModules, err)
	}
	for _, e := range mods {
		if e.IsDir() {
			continue
		}
		m.report(m.importModule(storeName, e.Name(), conLabel, false))
	}
	return nil
}

// report logs a module import outcome.
func (m *Migrator) report(r ImportResult) {
	switch r.Status {
	case StatusImported:
		m.logger.Debug("module installed", "module", r.Module, "version", r.Version)
	case StatusFailed:
		m.logger.Error("error installing module", "module", r.Module, "error", r.Err)
	}
}

// candidateStores returns the stores the run should consider.
func (m *Migrator) candidateStores() ([]string, error) {
	if m.opts.Store != "" {
		return []string{m.opts.Store}, nil
	}
	entries, err := os.ReadDir(m.layout.OldRoot)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", m.layout.OldRoot, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
