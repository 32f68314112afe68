package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"cull/internal/media"
)

//go:embed sample_config.toml
var sampleConfig string

// Selection contains the default filter settings for action commands.
// Command-line flags override these per run.
type Selection struct {
	Threshold     int    `toml:"threshold"`
	Comparison    string `toml:"comparison"`
	IncludeVideos bool   `toml:"include_videos"`
	MatchRaws     bool   `toml:"match_raws"`
}

// Extensions contains the media classification tables.
type Extensions struct {
	Images []string `toml:"images"`
	Videos []string `toml:"videos"`
	Raws   []string `toml:"raws"`
}

// Rating contains the metadata decoder settings.
type Rating struct {
	Decoder                string `toml:"decoder"`
	ExifToolBinary         string `toml:"exiftool_binary"`
	ExifToolTimeoutSeconds int    `toml:"exiftool_timeout_seconds"`
}

// Run contains cross-process run coordination settings.
type Run struct {
	StateDir string `toml:"state_dir"`
	Lock     bool   `toml:"lock"`
}

// Report contains run report output settings.
type Report struct {
	ManifestDir string `toml:"manifest_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cull.
//
// Configuration sections:
//   - Selection: default threshold, comparison, and gating flags
//   - Extensions: image/video/raw classification tables
//   - Rating: decoder backend and exiftool settings
//   - Run: state directory and run lock
//   - Report: CSV manifest output
//   - Logging: log format and level
type Config struct {
	Selection  Selection  `toml:"selection"`
	Extensions Extensions `toml:"extensions"`
	Rating     Rating     `toml:"rating"`
	Run        Run        `toml:"run"`
	Report     Report     `toml:"report"`
	Logging    Logging    `toml:"logging"`
}

// Sets builds the media extension tables from the configured lists.
func (c *Config) Sets() media.Sets {
	return media.NewSets(c.Extensions.Images, c.Extensions.Videos, c.Extensions.Raws)
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cull/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv("CULL_CONFIG"))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cull.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run depends on. The
// manifest directory is created on a best-effort basis since the report
// writer creates it again at write time.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Run.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Run.StateDir, err)
	}
	if strings.TrimSpace(c.Report.ManifestDir) != "" {
		_ = os.MkdirAll(c.Report.ManifestDir, 0o755)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
