package pdftest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

func TestBuildValidates(t *testing.T) {
	for _, tc := range []struct {
		pages int
		text  string
	}{
		{1, "CONFIDENTIAL"},
		{3, "Body (draft)"},
		{2, ""},
	} {
		data := Build(tc.pages, tc.text)
		if err := api.Validate(bytes.NewReader(data), model.NewDefaultConfiguration()); err != nil {
			t.Fatalf("%d pages %q: %v", tc.pages, tc.text, err)
		}
		n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
		if err != nil || n != tc.pages {
			t.Fatalf("pages=%d want %d err=%v", n, tc.pages, err)
		}
	}
}

func TestWritePDF(t *testing.T) {
	p := WritePDF(t, filepath.Join(t.TempDir(), "nested"), "a.pdf", 2, "A")
	n, err := api.PageCountFile(p)
	if err != nil || n != 2 {
		t.Fatalf("pages=%d err=%v", n, err)
	}
}
