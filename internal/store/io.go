package store

import (
	"errors"
	"os"
	"path/filepath"
)

// replaceFile stages b next to path and renames it into place, so readers see
// either the old note or the new one. The directory is synced after the
// rename so the swap survives a crash. The staged file never outlives a
// failed call.
func replaceFile(path string, b []byte, mode os.FileMode) (err error) {
	dir := filepath.Dir(path)
	staged, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(staged.Name())
		}
	}()

	_, err = staged.Write(b)
	if err == nil {
		err = staged.Chmod(mode)
	}
	if err == nil {
		err = staged.Sync()
	}
	if cerr := staged.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if err = os.Rename(staged.Name(), path); err != nil {
		return err
	}
	return syncDir(dir)
}

// syncDir flushes directory metadata. Some platforms refuse to fsync a
// directory; that is not treated as a failed write.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) && !errors.Is(err, errors.ErrUnsupported) {
		return err
	}
	return nil
}
