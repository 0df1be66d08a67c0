//go:build linux

package selinux

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	securityXattr  = "security.selinux"
	fscreatePath   = "/proc/thread-self/attr/fscreate"
	configTypeKey  = "SELINUXTYPE"
	defaultPolicy  = "targeted"
	defaultSEConf  = "/etc/selinux"
	configFileName = "config"
)

// System reads labels through the security xattr namespace and sets the
// creation label through procfs. The create label is scoped to the calling
// thread; callers must pin their goroutine to one OS thread.
type System struct {
	// Dir is the legacy policy tree holding the config file.
	// Empty means /etc/selinux.
	Dir string
}

func (s *System) dir() string {
	if s.Dir == "" {
		return defaultSEConf
	}
	return s.Dir
}

// FileLabel reads the security label of path via lgetxattr.
func (s *System) FileLabel(path string) (string, error) {
	sz, err := unix.Lgetxattr(path, securityXattr, nil)
	if err != nil {
		return "", fmt.Errorf("lgetxattr %s: %w", path, err)
	}
	b := make([]byte, sz)
	n, err := unix.Lgetxattr(path, securityXattr, b)
	if err != nil {
		return "", fmt.Errorf("lgetxattr %s: %w", path, err)
	}
	label := strings.TrimRight(string(b[:n]), "\x00")
	if label == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoLabel)
	}
	return label, nil
}

// SetCreateLabel writes label to the thread's fscreate attribute.
func (s *System) SetCreateLabel(label string) error {
	f, err := os.OpenFile(fscreatePath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open fscreate: %w", err)
	}
	defer f.Close()
	_, err = f.WriteString(label)
	if err != nil {
		return fmt.Errorf("set create label %q: %w", label, err)
	}
	return nil
}

// PolicyRoot returns Dir joined with the active policy type.
func (s *System) PolicyRoot() (string, error) {
	typ, err := s.PolicyType()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir(), typ), nil
}

// PolicyType parses SELINUXTYPE from the policy config file, defaulting
// to "targeted" when the key is absent.
func (s *System) PolicyType() (string, error) {
	f, err := os.Open(filepath.Join(s.dir(), configFileName))
	if err != nil {
		return "", fmt.Errorf("policy config: %w", err)
	}
	defer f.Close()

	typ := defaultPolicy
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(k) == configTypeKey {
			typ = strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("policy config: %w", err)
	}
	return typ, nil
}
