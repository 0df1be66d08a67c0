package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ConnectMode selects how a handle reaches the store manager.
type ConnectMode int

// ConnDirect manages the store through direct filesystem access,
// bypassing any client/server indirection.
const ConnDirect ConnectMode = 0

// Access is the level granted by AccessCheck. Levels are ordered, so
// callers compare against the level they require.
type Access int

const (
	AccessNone Access = iota
	AccessRead
	AccessWrite
)

var (
	// ErrNotConnected indicates a transaction call before Connect.
	ErrNotConnected = errors.New("store: handle not connected")
	// ErrNoTransaction indicates Commit without a begun transaction.
	ErrNoTransaction = errors.New("store: no transaction in progress")
	// ErrNoStore indicates no store has been selected on the handle.
	ErrNoStore = errors.New("store: no store selected")
)

// Handle is a direct-mode policy store manager handle.
//
// The protocol is: NewHandle, SelectStore, IsManaged/AccessCheck gates,
// Connect, optionally SetRebuild, BeginTransaction, Commit, Destroy.
// Destroy must run on every exit path; it is safe to call at any point.
//
// A Handle is not safe for concurrent use.
type Handle struct {
	layout    Layout
	storeName string
	mode      ConnectMode
	connected bool
	rebuild   bool
	inTx      bool
	serial    uint64
	lock      *os.File
}

// NewHandle returns an unconnected handle over the given layout.
func NewHandle(l Layout) *Handle {
	return &Handle{layout: l}
}

// SelectStore points the handle at a named store.
func (h *Handle) SelectStore(name string, mode ConnectMode) {
	h.storeName = name
	h.mode = mode
}

// storeDir is the per-store directory holding the lock file.
func (h *Handle) storeDir() string {
	return filepath.Join(h.layout.NewRoot, h.storeName)
}

// IsManaged reports whether the selected store exists in a manageable
// form: its directory is present in the migrated tree.
func (h *Handle) IsManaged() bool {
	if h.storeName == "" {
		return false
	}
	fi, err := os.Stat(h.storeDir())
	return err == nil && fi.IsDir()
}

// AccessCheck returns the caller's effective access level on the store.
func (h *Handle) AccessCheck() Access {
	dir := h.storeDir()
	if accessible(dir, true) {
		return AccessWrite
	}
	if accessible(dir, false) {
		return AccessRead
	}
	return AccessNone
}

// Connect attaches the handle to the selected store. The store must have
// been selected and must exist.
func (h *Handle) Connect() error {
	if h.storeName == "" {
		return ErrNoStore
	}
	fi, err := os.Stat(h.layout.NewStore(h.storeName))
	if err != nil {
		return fmt.Errorf("connect %s: %w", h.storeName, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("connect %s: not a directory", h.storeName)
	}
	h.connected = true
	return nil
}

// SetRebuild marks the next committed transaction as a full policy
// rebuild rather than an incremental recompute.
func (h *Handle) SetRebuild(on bool) {
	h.rebuild = on
}

// BeginTransaction takes the store's exclusive transaction lock and reads
// the current commit serial. Calling it inside an open transaction is a
// no-op.
func (h *Handle) BeginTransaction() error {
	if !h.connected {
		return ErrNotConnected
	}
	if h.inTx {
		return nil
	}
	lock, err := acquireLock(filepath.Join(h.storeDir(), TransLock))
	if err != nil {
		return fmt.Errorf("transaction lock: %w", err)
	}
	h.lock = lock
	h.serial = readSerial(filepath.Join(h.layout.NewStore(h.storeName), CommitNum))
	h.inTx = true
	return nil
}

// Commit finalizes the transaction: the rebuild marker is written and
// synced first, then the bumped commit serial is installed atomically.
// The serial write is the commit point. The lock is released whether or
// not the commit succeeds.
func (h *Handle) Commit() error {
	if !h.inTx {
		return ErrNoTransaction
	}
	defer h.endTransaction()

	active := h.layout.NewStore(h.storeName)
	if h.rebuild {
		flag := filepath.Join(active, RebuildFlag)
		if err := writeFileSync(flag, []byte(strconv.FormatUint(h.serial+1, 10)+"\n"), 0o600); err != nil {
			return fmt.Errorf("rebuild marker: %w", err)
		}
	}
	serial := []byte(strconv.FormatUint(h.serial+1, 10) + "\n")
	if err := installFileSync(filepath.Join(active, CommitNum), serial, 0o600); err != nil {
		return fmt.Errorf("commit serial: %w", err)
	}
	h.serial++
	return nil
}

// Serial returns the commit serial observed by the last transaction.
func (h *Handle) Serial() uint64 {
	return h.serial
}

// Destroy releases every resource held by the handle. Safe to call more
// than once and on every exit path.
func (h *Handle) Destroy() {
	h.endTransaction()
	h.connected = false
}

func (h *Handle) endTransaction() {
	if h.lock != nil {
		releaseLock(h.lock)
		h.lock = nil
	}
	h.inTx = false
}

// readSerial returns the stored commit serial, or 0 when absent or
// unreadable.
func readSerial(path string) uint64 {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// writeFileSync writes path in place and syncs it.
func writeFileSync(path string, data []byte, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// installFileSync writes data to a temp file, syncs it, and renames it
// over path so the update is atomic.
func installFileSync(path string, data []byte, mode os.FileMode) error {
	tmp := path + ".tmp"
	if err := writeFileSync(tmp, data, mode); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
