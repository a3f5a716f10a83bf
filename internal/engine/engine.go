// Package engine wraps pdfcpu with the handful of operations the batch
// watermarker needs: load a watermark page, open a document, merge the
// watermark under every page and serialize the result.
package engine

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

const (
	// The watermark page is placed 1:1 at the page origin, unrotated and opaque.
	WATERMARK_CONFIG = "position:bl, offset:0 0, scalefactor:1 abs, rotation:0, opacity:1"

	stagedWatermarkName = "watermark.pdf"
)

// ErrNotMerged is returned when writing a document that was never merged.
var ErrNotMerged = errors.New("document has not been watermarked")

// Engine opens and watermarks PDF documents.
type Engine struct {
	newConf func() *model.Configuration
}

// New returns an Engine using pdfcpu's default configuration.
func New() *Engine {
	return &Engine{newConf: model.NewDefaultConfiguration}
}

// Watermark is the first page of a watermark document. It is read once and
// not modified afterwards.
type Watermark struct {
	source string
	dir    string
	staged string
	pages  int
}

// LoadWatermark reads the watermark document at path and checks it has at
// least one page. The caller must Close the returned Watermark.
func (e *Engine) LoadWatermark(path string) (*Watermark, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading watermark PDF")
	}

	n, err := api.PageCount(bytes.NewReader(data), e.newConf())
	if err != nil {
		return nil, errors.Wrap(err, "error reading watermark PDF context")
	}
	if n < 1 {
		return nil, errors.Errorf("watermark PDF %s has no pages", path)
	}

	// pdfcpu loads PDF watermarks by file name and insists on a .pdf suffix,
	// so work from a private copy.
	dir, err := os.MkdirTemp("", "pdfwatermark-*")
	if err != nil {
		return nil, errors.Wrap(err, "error creating temporary directory")
	}
	staged := filepath.Join(dir, stagedWatermarkName)
	if err := os.WriteFile(staged, data, 0o600); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "error staging watermark PDF")
	}

	wm := &Watermark{source: path, dir: dir, staged: staged, pages: n}
	if _, err := wm.descriptor(); err != nil {
		wm.Close()
		return nil, err
	}
	return wm, nil
}

// Source returns the path the watermark was loaded from.
func (w *Watermark) Source() string { return w.source }

// PageCount returns the page count of the watermark document. Only the first
// page is ever used.
func (w *Watermark) PageCount() int { return w.pages }

// Close removes the staged copy of the watermark.
func (w *Watermark) Close() error {
	if w.dir == "" {
		return nil
	}
	err := os.RemoveAll(w.dir)
	w.dir = ""
	return err
}

// descriptor builds a fresh pdfcpu watermark for page 1 rendered beneath the
// page content. pdfcpu caches per document state inside the descriptor, so
// one is needed per merge.
func (w *Watermark) descriptor() (*model.Watermark, error) {
	onTop := false
	wm, err := api.PDFWatermark(w.staged+":1", WATERMARK_CONFIG, onTop, false, types.POINTS)
	if err != nil {
		return nil, errors.Wrap(err, "error creating PDF watermark")
	}
	return wm, nil
}

// Document is an in-memory copy of one input PDF. It shares nothing with
// other documents or with the watermark.
type Document struct {
	path   string
	raw    []byte
	pages  int
	merged []byte
	conf   *model.Configuration
}

// Open reads the PDF at path.
func (e *Engine) Open(path string) (*Document, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	conf := e.newConf()
	n, err := api.PageCount(bytes.NewReader(raw), conf)
	if err != nil {
		return nil, errors.Wrap(err, "error reading PDF context")
	}
	if n < 1 {
		return nil, errors.New("PDF has no pages")
	}
	return &Document{path: path, raw: raw, pages: n, conf: conf}, nil
}

// Path returns the path the document was opened from.
func (d *Document) Path() string { return d.path }

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return d.pages }

// MergeUnder composites the watermark beneath the existing content of every
// page. Original content is drawn on top.
func (d *Document) MergeUnder(w *Watermark) error {
	wm, err := w.descriptor()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(d.raw), &buf, nil, wm, d.conf); err != nil {
		return errors.Wrap(err, "error applying watermark")
	}

	n, err := api.PageCount(bytes.NewReader(buf.Bytes()), d.conf)
	if err != nil {
		return errors.Wrap(err, "error reading watermarked PDF")
	}
	if n != d.pages {
		return errors.Errorf("watermarked PDF has %d pages, want %d", n, d.pages)
	}

	d.merged = buf.Bytes()
	return nil
}

// WriteTo writes the watermarked document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if d.merged == nil {
		return 0, ErrNotMerged
	}
	n, err := w.Write(d.merged)
	return int64(n), err
}

func readFile(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}
	return os.ReadFile(path)
}
