package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmptyOutputPath is returned when a write is requested without a target path.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

const (
	dirPermUserGroupRX = 0o750
	filePermDefault    = 0o644
)

// WriteFile replaces the file at output with content.
//
// The content is written to a temporary file in the target directory which is then
// renamed over the destination, so readers only ever observe the old or the new
// file. Missing parent directories are created.
func WriteFile(output string, content []byte) error {
	if output == "" {
		return ErrEmptyOutputPath
	}

	output = filepath.Clean(output)
	dir := filepath.Dir(output)

	err := os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	perm := os.FileMode(filePermDefault)

	info, statErr := os.Stat(output)
	if statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(output)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", output, err)
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Chmod(perm)
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to write file %s: %w", output, err)
	}

	err = os.Rename(tmpName, output)
	if err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to replace file %s: %w", output, err)
	}

	return nil
}

// ReadFileIfExists reads the file at path. A missing file is not an error; found
// reports whether the file was present.
func ReadFileIfExists(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return data, true, nil
}
