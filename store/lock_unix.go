//go:build unix

package store

import (
	"os"

	"golang.org/x/sys/unix"
)

// acquireLock opens (creating if needed) and exclusively flocks path.
// The call blocks until the lock is granted.
func acquireLock(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// releaseLock drops the flock and closes the file.
func releaseLock(f *os.File) {
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	_ = f.Close()
}

// accessible reports whether the effective caller can access path, for
// writing when write is set, otherwise for reading.
func accessible(path string, write bool) bool {
	mode := uint32(unix.R_OK)
	if write {
		mode = unix.R_OK | unix.W_OK
	}
	return unix.Access(path, mode) == nil
}
