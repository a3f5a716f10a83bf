package filesystem

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrPathInvalid is returned when an input path has no usable base name.
var ErrPathInvalid = errors.New("invalid output file name")

const (
	permDir  os.FileMode = 0o755
	permFile os.FileMode = 0o644
	bufSize              = 64 * 1024
)

// EnsureDir creates dir and any missing parents. It fails if dir exists and
// is not a directory.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, permDir); err != nil {
		return errors.Wrapf(err, "error creating output directory %s", dir)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "error creating output directory %s", dir)
	}
	if !fi.IsDir() {
		return errors.Errorf("output path %s is not a directory", dir)
	}
	return nil
}

// BaseName maps an input path to its output file name. Directory components
// are dropped.
func BaseName(path string) (string, error) {
	name := filepath.Base(filepath.Clean(path))
	if name == "." || name == ".." || name == string(filepath.Separator) || name == "" {
		return "", errors.Wrap(ErrPathInvalid, path)
	}
	return name, nil
}

// Writer writes files into a single output directory it owns. Existing files
// are replaced.
type Writer struct {
	root string
}

// NewWriter creates root if needed and returns a Writer for it.
func NewWriter(root string) (*Writer, error) {
	if err := EnsureDir(root); err != nil {
		return nil, err
	}
	return &Writer{root: root}, nil
}

// Root returns the output directory.
func (w *Writer) Root() string { return w.root }

// Write stores the output for input under root using the input's base name
// and returns the destination path. The content goes to a temporary file in
// root first and is renamed into place, so a failed write never leaves a
// partial file under the final name.
func (w *Writer) Write(input string, src io.WriterTo) (string, error) {
	name, err := BaseName(input)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(w.root, name)

	tmp, err := os.CreateTemp(w.root, ".tmp-*")
	if err != nil {
		return "", errors.Wrap(err, "error creating temporary file")
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, permFile)

	bw := bufio.NewWriterSize(tmp, bufSize)
	if _, err := src.WriteTo(bw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "error writing output")
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "error writing output")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "error syncing output")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "error closing output")
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.Wrapf(err, "error replacing %s", dest)
	}
	return dest, nil
}
