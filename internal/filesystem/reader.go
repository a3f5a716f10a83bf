// Package filesystem lists batch inputs and writes batch outputs.
package filesystem

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// ListDir returns the paths of all entries directly under dir, sorted by
// name. Nothing is filtered out: sub-directories and non-PDF files are left
// for the caller to reject.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "error listing input directory %s", dir)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
