package rating

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const defaultExifToolTimeout = 20 * time.Second

// ExifToolDecoder shells out to exiftool, which understands maker formats
// the built-in scanner cannot parse. Selected via the rating.decoder config
// key; availability is verified during preflight.
type ExifToolDecoder struct {
	binary  string
	timeout time.Duration
}

// NewExifToolDecoder builds an exiftool-backed decoder. Empty binary falls
// back to "exiftool" on PATH; non-positive timeout falls back to 20s.
func NewExifToolDecoder(binary string, timeout time.Duration) *ExifToolDecoder {
	if strings.TrimSpace(binary) == "" {
		binary = "exiftool"
	}
	if timeout <= 0 {
		timeout = defaultExifToolTimeout
	}
	return &ExifToolDecoder{binary: binary, timeout: timeout}
}

func (d *ExifToolDecoder) Rating(ctx context.Context, path string) (Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, d.binary, "-s3", "-Rating", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return Result{}, fmt.Errorf("exiftool %s: %s: %w", path, detail, err)
		}
		return Result{}, fmt.Errorf("exiftool %s: %w", path, err)
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		return Result{}, nil
	}
	value, err := strconv.Atoi(output)
	if err != nil {
		// Some writers store ratings as decimals.
		f, ferr := strconv.ParseFloat(output, 64)
		if ferr != nil {
			return Result{}, fmt.Errorf("exiftool %s: unexpected rating %q", path, output)
		}
		value = int(f)
	}
	return Result{Value: value, Present: true}, nil
}
