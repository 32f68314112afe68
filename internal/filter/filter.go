package filter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cull/internal/logging"
	"cull/internal/media"
	"cull/internal/rating"
)

// Comparison selects the rating test applied against the threshold.
type Comparison int

const (
	MoreEqual Comparison = iota
	LessEqual
	Equal
)

func (c Comparison) String() string {
	switch c {
	case LessEqual:
		return "less-equal"
	case Equal:
		return "equal"
	default:
		return "more-equal"
	}
}

// ParseComparison maps the CLI/config spelling to a Comparison.
func ParseComparison(value string) (Comparison, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "more-equal", "":
		return MoreEqual, nil
	case "less-equal":
		return LessEqual, nil
	case "equal":
		return Equal, nil
	default:
		return MoreEqual, fmt.Errorf("comparison must be one of more-equal, less-equal, equal (got %q)", value)
	}
}

// Matches reports whether a rating passes the comparison against threshold.
func (c Comparison) Matches(value, threshold int) bool {
	switch c {
	case LessEqual:
		return value <= threshold
	case Equal:
		return value == threshold
	default:
		return value >= threshold
	}
}

// Config is the immutable per-run filter configuration.
type Config struct {
	Threshold     int
	Comparison    Comparison
	Inverse       bool
	IncludeVideos bool
	Exclude       []string
	FlipExclusion bool
}

// Selectable applies the exclusion rules to a candidate. With an empty
// exclude list everything is selectable; with FlipExclusion only matching
// entries are. The same predicate gates inherited raw companions.
func (c Config) Selectable(candidate media.Candidate) bool {
	if len(c.Exclude) == 0 {
		return true
	}
	matched := c.excludeMatch(candidate)
	if c.FlipExclusion {
		return matched
	}
	return !matched
}

// An exclude entry matches on extension (leading dot optional,
// case-insensitive) or on the full filename.
func (c Config) excludeMatch(candidate media.Candidate) bool {
	for _, entry := range c.Exclude {
		if ext := media.NormalizeExt(entry); ext != "" && ext == candidate.Ext {
			return true
		}
		if strings.EqualFold(strings.TrimSpace(entry), candidate.Name) {
			return true
		}
	}
	return false
}

// RatingFunc resolves the rating for a candidate path.
type RatingFunc func(ctx context.Context, path string) rating.Result

// Pipeline evaluates scanned candidates against a Config.
type Pipeline struct {
	cfg    Config
	rate   RatingFunc
	logger *slog.Logger
}

// NewPipeline builds a Pipeline. A nil logger discards debug output.
func NewPipeline(cfg Config, rate RatingFunc, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, rate: rate, logger: logger}
}

// PrimaryMatches returns the candidates passing media-class gating, the
// rating comparison (inverse-aware), and the exclusion rules, in enumeration
// order. Every decoded rating is recorded in the returned map, keyed by
// path, for later reporting.
func (p *Pipeline) PrimaryMatches(ctx context.Context, candidates []media.Candidate) ([]media.Candidate, map[string]rating.Result) {
	matches := make([]media.Candidate, 0, len(candidates))
	ratings := make(map[string]rating.Result, len(candidates))

	for _, candidate := range candidates {
		if !p.classEligible(candidate) {
			continue
		}
		result := p.rate(ctx, candidate.Path)
		ratings[candidate.Path] = result
		if !result.Present {
			// Unrated files stay outside the filtered universe, inverse or not.
			p.logger.Debug("no rating", logging.String("file", candidate.Name))
			continue
		}
		passes := p.cfg.Comparison.Matches(result.Value, p.cfg.Threshold)
		if p.cfg.Inverse {
			passes = !passes
		}
		if !passes || !p.cfg.Selectable(candidate) {
			continue
		}
		p.logger.Debug("primary match",
			logging.String("file", candidate.Name),
			logging.Int("rating", result.Value))
		matches = append(matches, candidate)
	}
	return matches, ratings
}

func (p *Pipeline) classEligible(candidate media.Candidate) bool {
	switch candidate.Class {
	case media.ClassImage:
		return true
	case media.ClassVideo:
		return p.cfg.IncludeVideos
	default:
		return false
	}
}
