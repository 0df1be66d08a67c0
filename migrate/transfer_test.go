package migrate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newBareMigrator(t *testing.T, plat *fakePlatform, out *bytes.Buffer) *Migrator {
	t.Helper()
	opts := Options{Priority: 100, OldRoot: t.TempDir(), NewRoot: t.TempDir()}
	if out == nil {
		return newTestMigrator(t, opts, plat, nil)
	}
	return newTestMigrator(t, opts, plat, out)
}

func TestCopyFilePreservesBytesAndMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o640))
	stamp := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	require.NoError(t, copyFile(src, dst))

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "payload", string(b))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o640), fi.Mode().Perm())
	require.True(t, fi.ModTime().Equal(stamp))
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old old old"), 0o600))

	require.NoError(t, copyFile(src, dst))
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "new", string(b))
}

func TestCopyWithContextMissingSourceWarns(t *testing.T) {
	plat := &fakePlatform{failLabelFor: map[string]error{}}
	var logBuf bytes.Buffer
	m := newBareMigrator(t, plat, &logBuf)

	// The label is readable but the copy itself fails; that is a
	// warning, not a run-ending error.
	dst := filepath.Join(t.TempDir(), "dst")
	require.NoError(t, m.copyWithContext(filepath.Join(t.TempDir(), "missing"), dst))
	require.Contains(t, logBuf.String(), "could not copy file")
	_, err := os.Stat(dst)
	require.True(t, os.IsNotExist(err))
}

func TestCreateDirFromIsIdempotent(t *testing.T) {
	plat := &fakePlatform{failLabelFor: map[string]error{}}
	m := newBareMigrator(t, plat, nil)

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "d")
	require.NoError(t, m.createDirFrom(src, dst, 0o700))
	require.NoError(t, m.createDirFrom(src, dst, 0o700))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestCreateDirFromBadParentIsFatal(t *testing.T) {
	plat := &fakePlatform{failLabelFor: map[string]error{}}
	m := newBareMigrator(t, plat, nil)

	dst := filepath.Join(t.TempDir(), "no", "such", "parent")
	require.Error(t, m.createDirFrom(t.TempDir(), dst, 0o700))
}
