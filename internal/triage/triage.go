package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"cull/internal/action"
	"cull/internal/companion"
	"cull/internal/config"
	"cull/internal/filter"
	"cull/internal/label"
	"cull/internal/logging"
	"cull/internal/preflight"
	"cull/internal/rating"
	"cull/internal/report"
	"cull/internal/runlock"
	"cull/internal/scan"
)

const decoderExifTool = "exiftool"

// Request holds one run's immutable inputs.
type Request struct {
	Action    action.Kind
	Source    string
	Dest      string
	Label     string
	DryRun    bool
	MatchRaws bool
	Filter    filter.Config
}

// Engine orchestrates a triage run: index the source directory, filter
// candidates by rating, expand raw companions, execute the action, and
// assemble the report. Stages run sequentially; per-file problems become
// Failed outcomes while directory- and configuration-level problems abort
// the run before any file action.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewEngine builds an Engine. A nil logger discards output.
func NewEngine(cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Run executes the request and returns the per-file report. The returned
// error is non-nil only for fatal problems (bad request, unreadable source,
// lock contention); individual file failures are carried on the report.
func (e *Engine) Run(ctx context.Context, req Request) (*report.Report, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	base := e.logger.With(logging.String(logging.FieldRunID, runID))
	logger := logging.NewComponentLogger(base, "engine")
	started := time.Now()

	logger.Info("run starting",
		logging.String("action", req.Action.String()),
		logging.String("source", req.Source),
		logging.String("dest", req.Dest),
		logging.Bool("dry_run", req.DryRun))

	mutates := req.Action.Mutates() && !req.DryRun

	if e.cfg.Run.Lock && mutates {
		lock, err := runlock.New(e.cfg.Run.StateDir)
		if err != nil {
			return nil, Wrap(ErrConfiguration, "run", "prepare lock", "", err)
		}
		if err := lock.Acquire(); err != nil {
			if errors.Is(err, runlock.ErrHeld) {
				return nil, Wrap(ErrLockHeld, "run", "acquire lock", "", err)
			}
			return nil, Wrap(ErrConfiguration, "run", "acquire lock", "", err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("release run lock", logging.Error(err))
			}
		}()
	}

	// The destination is created when missing, but never under dry run,
	// which must not touch the filesystem at all.
	if req.Action.NeedsDest() && !req.DryRun {
		if err := os.MkdirAll(req.Dest, 0o755); err != nil {
			return nil, Wrap(ErrConfiguration, "preflight", "create destination", req.Dest, err)
		}
	}

	if err := e.preflight(logger, req); err != nil {
		return nil, err
	}

	sets := e.cfg.Sets()
	candidates, index, err := scan.Build(req.Source, sets)
	if err != nil {
		return nil, Wrap(ErrSourceUnreadable, "scan", "list entries", "", err)
	}
	logger.Debug("source indexed",
		logging.Int("entries", len(candidates)),
		logging.Int("stems", len(index)))

	svc := rating.NewService(e.decoder(), logging.NewComponentLogger(base, "rating"))
	pipeline := filter.NewPipeline(req.Filter, svc.Rating, logging.NewComponentLogger(base, "filter"))
	primaries, ratings := pipeline.PrimaryMatches(ctx, candidates)

	resolver := companion.Resolver{
		Index:      index,
		Sets:       sets,
		MatchRaws:  req.MatchRaws,
		Selectable: req.Filter.Selectable,
	}
	selection, inherited := resolver.Resolve(candidates, primaries)
	logger.Info("selection resolved",
		logging.Int("candidates", len(candidates)),
		logging.Int("primaries", len(primaries)),
		logging.Int("selected", len(selection)))

	// Capture times are read before any action so rows for moved and
	// deleted files still carry them.
	captures := make(map[string]time.Time, len(selection))
	for _, candidate := range selection {
		if taken, ok := report.CaptureTime(candidate.Path); ok {
			captures[candidate.Path] = taken
		}
	}

	var labeler action.Labeler
	if req.Label != "" {
		labeler = label.Xattr{}
	}
	executor := action.NewExecutor(action.Options{
		Kind:    req.Action,
		DestDir: req.Dest,
		Label:   req.Label,
		DryRun:  req.DryRun,
		Labeler: labeler,
		Logger:  logging.NewComponentLogger(base, "action"),
	})
	outcomes := executor.Run(ctx, selection)

	rows := make([]report.Row, 0, len(outcomes))
	for _, outcome := range outcomes {
		rows = append(rows, report.Row{
			Outcome:     outcome,
			Rating:      ratings[outcome.Candidate.Path],
			Inherited:   inherited[outcome.Candidate.Path],
			CaptureTime: captures[outcome.Candidate.Path],
		})
	}
	rep := &report.Report{
		RunID:    runID,
		Title:    report.DeriveTitle(req.Source),
		Action:   req.Action.String(),
		Source:   req.Source,
		Dest:     req.Dest,
		DryRun:   req.DryRun,
		Started:  started,
		Finished: time.Now(),
		Rows:     rows,
		Counts:   report.Tally(rows),
	}

	if dir := e.cfg.Report.ManifestDir; dir != "" && !req.DryRun {
		path, err := report.WriteManifest(dir, rep)
		if err != nil {
			logger.Warn("write manifest", logging.Error(err))
		} else {
			rep.ManifestPath = path
			logger.Debug("manifest written", logging.String("path", path))
		}
	}

	logger.Info("run complete",
		logging.Int("selected", rep.Counts.Selected),
		logging.Int("succeeded", rep.Counts.Succeeded),
		logging.Int("skipped", rep.Counts.Skipped),
		logging.Int("failed", rep.Counts.Failed),
		logging.Duration("elapsed", rep.Duration()))
	return rep, nil
}

func (e *Engine) preflight(logger *slog.Logger, req Request) error {
	opts := preflight.Options{
		Source:        req.Source,
		MutatesSource: (req.Action == action.Move || req.Action == action.Delete) && !req.DryRun,
	}
	if req.Action.NeedsDest() && !req.DryRun {
		opts.Dest = req.Dest
	}
	if e.cfg.Rating.Decoder == decoderExifTool {
		opts.ExifTool = e.cfg.Rating.ExifToolBinary
	}

	results := preflight.RunAll(opts)
	for _, result := range results {
		if result.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		} else {
			logger.Error("preflight check failed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		}
	}
	failures := preflight.Failures(results)
	if len(failures) == 0 {
		return nil
	}
	first := failures[0]
	marker := ErrConfiguration
	if first.Name == preflight.SourceCheckName {
		marker = ErrSourceUnreadable
	}
	return Wrap(marker, "preflight", strings.ToLower(first.Name), first.Detail, nil)
}

func (e *Engine) decoder() rating.Decoder {
	if e.cfg.Rating.Decoder == decoderExifTool {
		timeout := time.Duration(e.cfg.Rating.ExifToolTimeoutSeconds) * time.Second
		return rating.NewExifToolDecoder(e.cfg.Rating.ExifToolBinary, timeout)
	}
	return rating.NewScanDecoder()
}

func validate(req Request) error {
	if strings.TrimSpace(req.Source) == "" {
		return Wrap(ErrConfiguration, "request", "source", "source directory is required", nil)
	}
	if req.Action.NeedsDest() && strings.TrimSpace(req.Dest) == "" {
		return Wrap(ErrConfiguration, "request", "dest", fmt.Sprintf("%s requires a destination directory", req.Action), nil)
	}
	if !req.Action.NeedsDest() && strings.TrimSpace(req.Dest) != "" {
		return Wrap(ErrConfiguration, "request", "dest", fmt.Sprintf("%s does not take a destination directory", req.Action), nil)
	}
	if req.Label != "" && !req.Action.NeedsDest() {
		return Wrap(ErrConfiguration, "request", "label", "label applies to copy and move only", nil)
	}
	return nil
}
