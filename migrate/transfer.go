package migrate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// copyWithContext copies src to dst, creating dst under src's security
// label. Label read and create-label failures are returned, since an
// unlabeled copy would silently break the labeling invariant. A copy I/O
// failure is only a warning: the file is skipped and the run continues.
func (m *Migrator) copyWithContext(src, dst string) error {
	m.logger.Debug("copying", "src", src, "dst", dst)
	con, err := m.plat.FileLabel(src)
	if err != nil {
		return fmt.Errorf("read label of %s: %w", src, err)
	}
	if err := m.plat.SetCreateLabel(con); err != nil {
		return fmt.Errorf("set create label %q: %w", con, err)
	}
	if err := copyFile(src, dst); err != nil {
		m.logger.Warn("could not copy file, skipping", "src", src, "dst", dst, "error", err)
	}
	return nil
}

// createDirFrom creates dst with the given mode under the security label
// of src. An existing dst is fine, so partial runs can be retried; any
// other failure is returned.
func (m *Migrator) createDirFrom(src, dst string, mode os.FileMode) error {
	con, err := m.plat.FileLabel(src)
	if err != nil {
		return fmt.Errorf("read label of %s: %w", src, err)
	}
	return m.mkdirWithLabel(con, dst, mode)
}

// mkdirWithLabel creates dst with the given mode under an already
// captured label. Existing directories are accepted.
func (m *Migrator) mkdirWithLabel(label, dst string, mode os.FileMode) error {
	m.logger.Debug("creating directory", "dst", dst, "label", label)
	if err := m.plat.SetCreateLabel(label); err != nil {
		return fmt.Errorf("set create label %q: %w", label, err)
	}
	if err := os.Mkdir(dst, mode); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	return nil
}

// copyFile copies bytes and the basic metadata of src to dst, overwriting
// any previous dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	if err = os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, fi.ModTime(), fi.ModTime())
}
