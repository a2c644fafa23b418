package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
)

// moveFile renames src to dst, replacing dst. When the two live on different
// filesystems it copies into a temp file beside dst, syncs, renames it into
// place and removes src.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return errors.Wrapf(err, "move %s", filepath.Base(src))
	}
	return copyAndRemove(src, dst)
}

func copyAndRemove(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.WithStack(err)
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return errors.WithStack(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file in output directory")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return errors.Wrapf(err, "copy %s", filepath.Base(src))
	}
	if err = tmp.Sync(); err != nil {
		return errors.WithStack(err)
	}
	if err = tmp.Chmod(fi.Mode().Perm()); err != nil {
		return errors.WithStack(err)
	}
	if err = tmp.Close(); err != nil {
		return errors.WithStack(err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.Remove(src))
}
