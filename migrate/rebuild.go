package migrate

import (
	"errors"
	"fmt"

	"github.com/policytools/storemig/store"
)

// Rebuild opens the active policy store through the manager handle and
// commits one transaction flagged as a full rebuild. Everything up to the
// commit is fatal; a commit failure is only reported, since the migrated
// filesystem state is already correct and the operator can retry.
//
// The handle is destroyed on every exit path.
func (m *Migrator) Rebuild() error {
	m.logger.Info("attempting to rebuild policy", "root", m.layout.NewRoot)

	storeName, err := m.plat.PolicyType()
	if err != nil {
		return fmt.Errorf("active policy type: %w", err)
	}

	h := store.NewHandle(m.layout)
	defer h.Destroy()

	h.SelectStore(storeName, store.ConnDirect)
	if !h.IsManaged() {
		return fmt.Errorf("policy store %s is not managed or cannot be accessed", storeName)
	}
	if h.AccessCheck() < store.AccessWrite {
		return errors.New("cannot write to policy store")
	}
	if err := h.Connect(); err != nil {
		return fmt.Errorf("could not establish store connection: %w", err)
	}

	h.SetRebuild(true)
	if err := h.BeginTransaction(); err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	if err := h.Commit(); err != nil {
		m.logger.Warn("rebuild not confirmed: commit failed, retry required", "error", err)
	}
	return nil
}
