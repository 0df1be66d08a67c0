//go:build !unix

package store

import (
	"errors"
	"os"
)

var errNoLocking = errors.New("store: file locking not supported on this platform")

func acquireLock(path string) (*os.File, error) {
	return nil, errNoLocking
}

func releaseLock(f *os.File) {}

func accessible(path string, write bool) bool {
	_, err := os.Stat(path)
	return err == nil
}
