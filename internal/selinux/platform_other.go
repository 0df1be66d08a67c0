//go:build !linux

package selinux

// System is a stub on platforms without a mandatory-access-control
// filesystem label API. Every method reports ErrUnsupported.
type System struct {
	Dir string
}

func (s *System) FileLabel(path string) (string, error) { return "", ErrUnsupported }

func (s *System) SetCreateLabel(label string) error { return ErrUnsupported }

func (s *System) PolicyRoot() (string, error) { return "", ErrUnsupported }

func (s *System) PolicyType() (string, error) { return "", ErrUnsupported }
