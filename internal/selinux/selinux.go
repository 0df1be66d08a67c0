// Package selinux exposes the small slice of the security-label platform
// the migration needs: reading file labels, steering the label applied to
// newly created filesystem objects, and locating the active policy.
package selinux

import "errors"

var (
	// ErrNoLabel indicates a path had no readable security label.
	ErrNoLabel = errors.New("selinux: no security label")
	// ErrUnsupported indicates the platform has no label support.
	ErrUnsupported = errors.New("selinux: not supported on this platform")
)

// Platform is the security-label surface of the operating system.
//
// SetCreateLabel mutates process-global state: the label set applies to
// every subsequent filesystem object creation until changed. Callers must
// be single-threaded; see migrate for the locking discipline.
type Platform interface {
	// FileLabel returns the raw security label of path, without
	// following a final symlink.
	FileLabel(path string) (string, error)

	// SetCreateLabel sets the label applied to filesystem objects
	// created after this call. An empty label resets to the default.
	SetCreateLabel(label string) error

	// PolicyRoot returns the directory of the active policy under the
	// legacy tree, e.g. /etc/selinux/targeted.
	PolicyRoot() (string, error)

	// PolicyType returns the name of the active policy, e.g. "targeted".
	PolicyType() (string, error)
}
