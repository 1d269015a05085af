package pipeline

import (
	"os"
	"path/filepath"

	dcmerrors "github.com/caio-sobreiro/srassess/errors"
)

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dcmerrors.NewIOError("read", path, err)
	}
	return data, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file. The temporary
// file is removed on failure.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return dcmerrors.NewIOError("create", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return dcmerrors.NewIOError("write", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return dcmerrors.NewIOError("sync", path, err)
	}
	if err = tmp.Close(); err != nil {
		return dcmerrors.NewIOError("close", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return dcmerrors.NewIOError("chmod", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return dcmerrors.NewIOError("rename", path, err)
	}
	return nil
}
