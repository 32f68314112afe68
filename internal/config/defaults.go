package config

import "cull/internal/media"

const (
	defaultThreshold              = 5
	defaultComparison             = "more-equal"
	defaultDecoder                = "scan"
	defaultExifToolBinary         = "exiftool"
	defaultExifToolTimeoutSeconds = 20
	defaultStateDir               = "~/.local/state/cull"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns the baseline configuration used before a config file is applied.
func Default() Config {
	images, videos, raws := media.DefaultExtensions()
	return Config{
		Selection: Selection{
			Threshold:     defaultThreshold,
			Comparison:    defaultComparison,
			IncludeVideos: false,
			MatchRaws:     false,
		},
		Extensions: Extensions{
			Images: images,
			Videos: videos,
			Raws:   raws,
		},
		Rating: Rating{
			Decoder:                defaultDecoder,
			ExifToolBinary:         defaultExifToolBinary,
			ExifToolTimeoutSeconds: defaultExifToolTimeoutSeconds,
		},
		Run: Run{
			StateDir: defaultStateDir,
			Lock:     true,
		},
		Report: Report{
			ManifestDir: "",
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
