package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	EnvVerbose      = "PDFWATERMARK_VERBOSE"
	EnvSummary      = "PDFWATERMARK_SUMMARY"
	EnvPdfcpuConfig = "PDFWATERMARK_PDFCPU_CONFIG"
)

// ErrUsage is returned when the positional arguments are wrong.
var ErrUsage = errors.New("usage: pdfwatermark <watermark-pdf-path> <input-directory> <output-directory>")

// Config stores all configuration for a run.
type Config struct {
	WatermarkPath string
	InputDir      string
	OutputDir     string

	Verbose bool
	Summary bool
	// UsePdfcpuConfig keeps pdfcpu's user configuration directory enabled.
	UsePdfcpuConfig bool
}

// Load reads the three positional arguments and the environment.
func Load(args []string) (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	if len(args) != 3 {
		return nil, ErrUsage
	}
	cfg := &Config{
		WatermarkPath: args[0],
		InputDir:      args[1],
		OutputDir:     args[2],
	}
	for i, a := range args {
		if strings.TrimSpace(a) == "" {
			return nil, errors.Wrapf(ErrUsage, "argument %d is empty", i+1)
		}
	}

	var err error
	if cfg.Verbose, err = envBool(EnvVerbose); err != nil {
		return nil, err
	}
	if cfg.Summary, err = envBool(EnvSummary); err != nil {
		return nil, err
	}
	if cfg.UsePdfcpuConfig, err = envBool(EnvPdfcpuConfig); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envBool(key string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "invalid value for %s", key)
	}
	return b, nil
}
