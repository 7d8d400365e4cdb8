// Package scanner finds Flutter projects in a directory.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/devantler-tech/flutterkit/pkg/fsutil"
)

// ManifestFile marks a directory as a Flutter project.
const ManifestFile = "pubspec.yaml"

// ErrDirectoryNotFound is returned when the scanned path is missing or not a directory.
var ErrDirectoryNotFound = errors.New("directory not found")

// ListProjects returns the sorted names of the direct subdirectories of dir that contain
// a pubspec.yaml. Nested projects are not searched for.
func ListProjects(dir string) ([]string, error) {
	root, err := fsutil.ExpandHomePath(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	if !fsutil.IsDir(root) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	projects := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !fsutil.IsDir(filepath.Join(root, entry.Name())) {
			continue
		}

		info, err := os.Stat(filepath.Join(root, entry.Name(), ManifestFile))
		if err == nil && info.Mode().IsRegular() {
			projects = append(projects, entry.Name())
		}
	}

	slices.Sort(projects)

	return projects, nil
}
