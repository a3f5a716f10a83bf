package filesystem

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type failingSource struct{}

func (failingSource) WriteTo(w io.Writer) (int64, error) {
	n, _ := w.Write([]byte("partial"))
	return int64(n), errors.New("boom")
}

func TestListDirSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.pdf", "a.pdf", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ListDir(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"a.pdf", "b.txt", "c.pdf", "sub"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i, name := range want {
		if got[i] != filepath.Join(dir, name) {
			t.Fatalf("entry %d: got %s want %s", i, got[i], name)
		}
	}
}

func TestListDirMissing(t *testing.T) {
	if _, err := ListDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	// idempotent
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("ensure again: %v", err)
	}

	file := filepath.Join(root, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(file); err == nil {
		t.Fatalf("expected error for regular file")
	}
}

func TestBaseName(t *testing.T) {
	cases := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "input/reports/q1.pdf", want: "q1.pdf"},
		{in: "q1.pdf", want: "q1.pdf"},
		{in: "/abs/path/x.pdf", want: "x.pdf"},
		{in: "dir/", want: "dir"},
		{in: ".", wantErr: true},
		{in: "/", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := BaseName(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrPathInvalid) {
				t.Fatalf("%q: err=%v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %q err=%v", tc.in, got, err)
		}
	}
}

func TestWriterReplacesExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "q1.pdf"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	dest, err := w.Write("input/reports/q1.pdf", bytes.NewBufferString("new"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if dest != filepath.Join(dir, "q1.pdf") {
		t.Fatalf("dest=%s", dest)
	}
	b, err := os.ReadFile(dest)
	if err != nil || string(b) != "new" {
		t.Fatalf("content %q err=%v", b, err)
	}
	assertNoTemp(t, dir)
}

func TestWriterFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := w.Write("b.pdf", failingSource{}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(filepath.Join(dir, "b.pdf")); !os.IsNotExist(err) {
		t.Fatalf("partial output present: %v", err)
	}
	assertNoTemp(t, dir)
}

func assertNoTemp(t *testing.T, dir string) {
	t.Helper()
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("tmp file not cleaned: %s", e.Name())
		}
	}
}
