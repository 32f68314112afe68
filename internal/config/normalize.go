package config

import (
	"fmt"
	"strings"

	"cull/internal/media"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSelection()
	c.normalizeExtensions()
	c.normalizeRating()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	stateDir, err := expandPath(c.Run.StateDir)
	if err != nil {
		return fmt.Errorf("run.state_dir: %w", err)
	}
	c.Run.StateDir = stateDir

	if strings.TrimSpace(c.Report.ManifestDir) != "" {
		manifestDir, err := expandPath(c.Report.ManifestDir)
		if err != nil {
			return fmt.Errorf("report.manifest_dir: %w", err)
		}
		c.Report.ManifestDir = manifestDir
	} else {
		c.Report.ManifestDir = ""
	}
	return nil
}

func (c *Config) normalizeSelection() {
	c.Selection.Comparison = strings.ToLower(strings.TrimSpace(c.Selection.Comparison))
	if c.Selection.Comparison == "" {
		c.Selection.Comparison = defaultComparison
	}
}

func (c *Config) normalizeExtensions() {
	c.Extensions.Images = normalizeExtensionList(c.Extensions.Images)
	c.Extensions.Videos = normalizeExtensionList(c.Extensions.Videos)
	c.Extensions.Raws = normalizeExtensionList(c.Extensions.Raws)

	defaults := Default()
	if len(c.Extensions.Images) == 0 {
		c.Extensions.Images = defaults.Extensions.Images
	}
	if len(c.Extensions.Videos) == 0 {
		c.Extensions.Videos = defaults.Extensions.Videos
	}
	if len(c.Extensions.Raws) == 0 {
		c.Extensions.Raws = defaults.Extensions.Raws
	}
}

func normalizeExtensionList(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		ext := media.NormalizeExt(value)
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

func (c *Config) normalizeRating() {
	c.Rating.Decoder = strings.ToLower(strings.TrimSpace(c.Rating.Decoder))
	if c.Rating.Decoder == "" {
		c.Rating.Decoder = defaultDecoder
	}
	c.Rating.ExifToolBinary = strings.TrimSpace(c.Rating.ExifToolBinary)
	if c.Rating.ExifToolBinary == "" {
		c.Rating.ExifToolBinary = defaultExifToolBinary
	}
	if c.Rating.ExifToolTimeoutSeconds == 0 {
		c.Rating.ExifToolTimeoutSeconds = defaultExifToolTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
