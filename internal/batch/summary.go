package batch

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/mattn/go-runewidth"
)

// Summarize writes one line per result followed by a totals line. Names are
// padded by display width so wide characters keep the columns aligned.
func Summarize(w io.Writer, results []Result) error {
	width := 0
	for _, r := range results {
		if n := runewidth.StringWidth(filepath.Base(r.Input)); n > width {
			width = n
		}
	}

	failed := 0
	for _, r := range results {
		name := runewidth.FillRight(filepath.Base(r.Input), width)
		var err error
		if r.OK() {
			_, err = fmt.Fprintf(w, "ok      %s  %d pages -> %s\n", name, r.Pages, r.Output)
		} else {
			failed++
			_, err = fmt.Fprintf(w, "failed  %s  %s: %v\n", name, r.Err.Kind, r.Err.Err)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d watermarked, %d skipped\n", len(results)-failed, failed)
	return err
}
