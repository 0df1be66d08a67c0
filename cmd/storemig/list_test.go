package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/policytools/storemig/store"
)

func TestListCommand(t *testing.T) {
	oldRootSave, newRootSave := oldRoot, newRoot
	defer func() { oldRoot, newRoot = oldRootSave, newRootSave }()
	oldRoot = t.TempDir()
	newRoot = t.TempDir()

	l := store.Layout{OldRoot: oldRoot, NewRoot: newRoot, Priority: 100}
	dir := filepath.Join(l.NewModules("targeted"), "100", "foo")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version"), []byte("2.1.0"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lang_ext"), []byte("pp"), 0o600))

	require.NoError(t, runList(listCmd, []string{"targeted"}))
}

func TestListCommandMissingStore(t *testing.T) {
	oldRootSave, newRootSave := oldRoot, newRoot
	defer func() { oldRoot, newRoot = oldRootSave, newRootSave }()
	oldRoot = t.TempDir()
	newRoot = t.TempDir()

	require.Error(t, runList(listCmd, []string{"nosuch"}))
}

func TestMigrateCommandRejectsBadPriority(t *testing.T) {
	oldRootSave, newRootSave := oldRoot, newRoot
	defer func() { oldRoot, newRoot = oldRootSave, newRootSave }()
	oldRoot = t.TempDir()
	newRoot = t.TempDir()

	prioSave := migratePriority
	defer func() { migratePriority = prioSave }()
	migratePriority = 0

	require.Error(t, runMigrate(migrateCmd, nil))
}
