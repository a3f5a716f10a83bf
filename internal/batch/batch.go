// Package batch applies one watermark page beneath every page of a set of
// PDF files. A failing input is reported and skipped; it never stops the
// rest of the batch.
package batch

import (
	"fmt"

	"github.com/pkg/errors"

	"pdfwatermark/internal/engine"
	"pdfwatermark/internal/filesystem"
	"pdfwatermark/internal/report"
)

// Kind tells at which step an input failed.
type Kind int

const (
	KindOpen Kind = iota + 1
	KindMerge
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindMerge:
		return "merge"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// ItemError is the failure of a single input.
type ItemError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Stage names the precondition a FatalError failed.
type Stage string

const (
	StageOutputDir Stage = "output-dir"
	StageWatermark Stage = "watermark"
)

// FatalError aborts the whole batch.
type FatalError struct {
	Stage Stage
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Result is the outcome for one input. Err is nil on success.
type Result struct {
	Input  string
	Output string
	Pages  int
	Err    *ItemError
}

// OK reports whether the input was watermarked and written.
func (r Result) OK() bool { return r.Err == nil }

// Watermarker runs batches. It holds no state between runs.
type Watermarker struct {
	eng *engine.Engine
	log *report.Logger
}

// New returns a Watermarker. A nil logger discards all output.
func New(eng *engine.Engine, log *report.Logger) *Watermarker {
	if log == nil {
		log = report.Discard()
	}
	return &Watermarker{eng: eng, log: log}
}

// Run watermarks every input with the first page of the watermark document
// and writes the results into outputDir under their base names, replacing
// existing files. Results are returned in input order. The returned error is
// a *FatalError and is only set when the output directory cannot be created
// or the watermark cannot be loaded.
func (b *Watermarker) Run(watermarkPath string, inputs []string, outputDir string) ([]Result, error) {
	w, err := filesystem.NewWriter(outputDir)
	if err != nil {
		return nil, &FatalError{Stage: StageOutputDir, Err: err}
	}

	b.log.Logf("Loading watermark from: %s", watermarkPath)
	wm, err := b.eng.LoadWatermark(watermarkPath)
	if err != nil {
		return nil, &FatalError{Stage: StageWatermark, Err: err}
	}
	defer wm.Close()
	b.log.Logf("Loaded watermark %s (%d pages, using page 1)", wm.Source(), wm.PageCount())
	b.log.Logf("Writing output to %s", w.Root())

	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		res := b.process(wm, w, in)
		if !res.OK() {
			b.log.Skipped(in, res.Err.Err)
		} else {
			b.log.Logf("Watermarked %s (%d pages) -> %s", in, res.Pages, res.Output)
		}
		results = append(results, res)
	}
	return results, nil
}

// process handles one input. Everything it allocates is dropped on return.
func (b *Watermarker) process(wm *engine.Watermark, w *filesystem.Writer, input string) Result {
	res := Result{Input: input}

	doc, err := b.eng.Open(input)
	if err != nil {
		res.Err = &ItemError{Kind: KindOpen, Path: input, Err: err}
		return res
	}
	res.Pages = doc.PageCount()

	if err := doc.MergeUnder(wm); err != nil {
		res.Err = &ItemError{Kind: KindMerge, Path: doc.Path(), Err: err}
		return res
	}

	dest, err := w.Write(input, doc)
	if err != nil {
		res.Err = &ItemError{Kind: KindWrite, Path: doc.Path(), Err: err}
		return res
	}
	res.Output = dest
	return res
}

// Failures returns the failed results, in order.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// IsFatal reports whether err aborted a batch, and at which stage.
func IsFatal(err error) (Stage, bool) {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe.Stage, true
	}
	return "", false
}
