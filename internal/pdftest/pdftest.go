// Package pdftest builds small, valid PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Build returns a PDF with the given number of Letter sized pages, validated
// and written by pdfcpu. Page i shows "<text> i"; an empty text leaves the
// pages blank. Callers must have disabled the pdfcpu config dir.
func Build(pages int, text string) []byte {
	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(skeleton(pages, text)), &out, model.NewDefaultConfiguration()); err != nil {
		panic(fmt.Sprintf("pdftest: %v", err))
	}
	return out.Bytes()
}

// skeleton lays out the objects by hand; pdfcpu has no API to place text on
// a page without its JSON content description and font setup.
func skeleton(pages int, text string) []byte {
	// Object layout: 1 catalog, 2 pages, 3 font, then a page and a content
	// stream per page.
	nObjs := 3 + 2*pages
	objs := make([]string, nObjs+1)

	kids := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}
	objs[1] = "<< /Type /Catalog /Pages 2 0 R >>"
	objs[2] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages)
	objs[3] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"

	for i := 0; i < pages; i++ {
		pageNr, contentNr := 4+2*i, 5+2*i
		objs[pageNr] = fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentNr)
		var content string
		if text != "" {
			content = fmt.Sprintf("BT /F1 24 Tf 72 %d Td (%s %d) Tj ET", 700-i, escape(text), i+1)
		}
		objs[contentNr] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, nObjs+1)
	for nr := 1; nr <= nObjs; nr++ {
		offsets[nr] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", nr, objs[nr])
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", nObjs+1)
	buf.WriteString("0000000000 65535 f \n")
	for nr := 1; nr <= nObjs; nr++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[nr])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", nObjs+1, xref)
	return buf.Bytes()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// WritePDF writes a generated PDF to dir/name and returns its path.
func WritePDF(t testing.TB, dir, name string, pages int, text string) string {
	t.Helper()
	return WriteFile(t, dir, name, Build(pages, text))
}

// WriteFile writes raw bytes to dir/name, creating dir as needed.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}
