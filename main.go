package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"

	"pdfwatermark/internal/batch"
	"pdfwatermark/internal/config"
	"pdfwatermark/internal/engine"
	"pdfwatermark/internal/filesystem"
	"pdfwatermark/internal/report"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrUsage) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if err := run(cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// run watermarks every entry of the input directory. Only fatal conditions
// are returned; inputs that fail are reported on stderr and skipped.
func run(cfg *config.Config, stdout, stderr io.Writer) error {
	if !cfg.UsePdfcpuConfig {
		api.DisableConfigDir()
	}

	logger := report.New(stderr, cfg.Verbose, uuid.New().String()[:8])
	logger.Logf("Watermark: %s, input: %s, output: %s", cfg.WatermarkPath, cfg.InputDir, cfg.OutputDir)

	inputs, err := filesystem.ListDir(cfg.InputDir)
	if err != nil {
		return err
	}
	logger.Logf("Found %d input files", len(inputs))

	results, err := batch.New(engine.New(), logger).Run(cfg.WatermarkPath, inputs, cfg.OutputDir)
	if err != nil {
		return err
	}

	if cfg.Summary || logger.Verbose() {
		if err := batch.Summarize(stdout, results); err != nil {
			return errors.Wrap(err, "error writing summary")
		}
	}
	if failed := len(batch.Failures(results)); failed == 0 {
		logger.Logln("Done: all files watermarked")
	} else {
		logger.Logf("Done: %d of %d files watermarked", len(results)-failed, len(results))
	}
	return nil
}
