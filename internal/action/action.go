package action

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"cull/internal/fileutil"
	"cull/internal/logging"
	"cull/internal/media"
)

// Kind identifies the requested bulk action.
type Kind int

const (
	Copy Kind = iota
	Move
	Delete
	Print
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Delete:
		return "delete"
	case Print:
		return "print"
	default:
		return "copy"
	}
}

// Mutates reports whether the action writes to the filesystem.
func (k Kind) Mutates() bool {
	return k != Print
}

// NeedsDest reports whether the action requires a destination directory.
func (k Kind) NeedsDest() bool {
	return k == Copy || k == Move
}

// Status classifies a per-candidate outcome.
type Status int

const (
	Succeeded Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "succeeded"
	}
}

// Skip and failure reasons surfaced on outcomes.
const (
	ReasonDestinationExists = "destination exists"
	ReasonDryRun            = "dry run"
	ReasonCanceled          = "canceled"
)

// Outcome is the per-candidate result of one action attempt.
type Outcome struct {
	Candidate media.Candidate
	Status    Status
	Reason    string
	Warning   string
	Dest      string
}

// Labeler applies a label value as a file property on a destination file.
type Labeler interface {
	Apply(path, value string) error
}

// Options configures an Executor for one run.
type Options struct {
	Kind    Kind
	DestDir string
	Label   string
	DryRun  bool
	Labeler Labeler
	Logger  *slog.Logger
}

// Executor applies one action across a selection, accumulating per-file
// outcomes. Per-file errors never abort the batch; destination conflicts are
// tested at the moment each action is attempted.
type Executor struct {
	kind    Kind
	destDir string
	label   string
	dryRun  bool
	labeler Labeler
	logger  *slog.Logger
}

// NewExecutor builds an Executor. A nil logger discards output.
func NewExecutor(opts Options) *Executor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{
		kind:    opts.Kind,
		destDir: opts.DestDir,
		label:   opts.Label,
		dryRun:  opts.DryRun,
		labeler: opts.Labeler,
		logger:  logger,
	}
}

// Run attempts the action for every candidate in selection, in order. The
// context is consulted between files; once canceled, the remaining
// candidates report Skipped without being touched.
func (e *Executor) Run(ctx context.Context, selection []media.Candidate) []Outcome {
	outcomes := make([]Outcome, 0, len(selection))
	for _, candidate := range selection {
		if ctx.Err() != nil {
			outcomes = append(outcomes, Outcome{Candidate: candidate, Status: Skipped, Reason: ReasonCanceled})
			continue
		}
		outcome := e.attempt(candidate)
		e.log(outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (e *Executor) attempt(candidate media.Candidate) Outcome {
	if e.kind == Print {
		return Outcome{Candidate: candidate, Status: Succeeded}
	}
	if e.dryRun {
		return Outcome{Candidate: candidate, Status: Skipped, Reason: ReasonDryRun, Dest: e.destPath(candidate)}
	}
	switch e.kind {
	case Delete:
		return e.deleteOne(candidate)
	case Move:
		return e.moveOne(candidate)
	default:
		return e.copyOne(candidate)
	}
}

func (e *Executor) destPath(candidate media.Candidate) string {
	if !e.kind.NeedsDest() {
		return ""
	}
	return filepath.Join(e.destDir, candidate.Name)
}

func (e *Executor) copyOne(candidate media.Candidate) Outcome {
	dest := e.destPath(candidate)
	if err := fileutil.CopyFileExclusive(candidate.Path, dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Outcome{Candidate: candidate, Status: Failed, Reason: ReasonDestinationExists, Dest: dest}
		}
		return Outcome{Candidate: candidate, Status: Failed, Reason: fmt.Sprintf("copy: %v", err), Dest: dest}
	}
	outcome := Outcome{Candidate: candidate, Status: Succeeded, Dest: dest}
	e.applyLabel(&outcome)
	return outcome
}

func (e *Executor) moveOne(candidate media.Candidate) Outcome {
	dest := e.destPath(candidate)

	// Rename would silently replace an existing destination, so probe first.
	if _, err := os.Lstat(dest); err == nil {
		return Outcome{Candidate: candidate, Status: Failed, Reason: ReasonDestinationExists, Dest: dest}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Outcome{Candidate: candidate, Status: Failed, Reason: fmt.Sprintf("probe destination: %v", err), Dest: dest}
	}

	if renameErr := os.Rename(candidate.Path, dest); renameErr != nil {
		var linkErr *os.LinkError
		if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
			return Outcome{Candidate: candidate, Status: Failed, Reason: fmt.Sprintf("move: %v", renameErr), Dest: dest}
		}
		// Cross-device: verified copy, then drop the source. A failed copy
		// leaves the source untouched.
		if copyErr := fileutil.CopyFileExclusive(candidate.Path, dest); copyErr != nil {
			if errors.Is(copyErr, fs.ErrExist) {
				return Outcome{Candidate: candidate, Status: Failed, Reason: ReasonDestinationExists, Dest: dest}
			}
			return Outcome{Candidate: candidate, Status: Failed, Reason: fmt.Sprintf("copy: %v", copyErr), Dest: dest}
		}
		if err := os.Remove(candidate.Path); err != nil {
			return Outcome{Candidate: candidate, Status: Failed, Reason: fmt.Sprintf("remove source after copy: %v", err), Dest: dest}
		}
	}

	outcome := Outcome{Candidate: candidate, Status: Succeeded, Dest: dest}
	e.applyLabel(&outcome)
	return outcome
}

func (e *Executor) deleteOne(candidate media.Candidate) Outcome {
	if err := os.Remove(candidate.Path); err != nil {
		return Outcome{Candidate: candidate, Status: Failed, Reason: fmt.Sprintf("remove: %v", err)}
	}
	return Outcome{Candidate: candidate, Status: Succeeded}
}

// applyLabel runs the label side effect after a successful copy/move. A
// label failure downgrades nothing: the outcome stays Succeeded and carries
// a warning.
func (e *Executor) applyLabel(outcome *Outcome) {
	if e.label == "" || e.labeler == nil || outcome.Dest == "" {
		return
	}
	if err := e.labeler.Apply(outcome.Dest, e.label); err != nil {
		outcome.Warning = fmt.Sprintf("label: %v", err)
	}
}

func (e *Executor) log(outcome Outcome) {
	attrs := []logging.Attr{
		logging.String("action", e.kind.String()),
		logging.String("file", outcome.Candidate.Name),
		logging.String("status", outcome.Status.String()),
	}
	if outcome.Dest != "" {
		attrs = append(attrs, logging.String("dest", outcome.Dest))
	}
	if outcome.Reason != "" {
		attrs = append(attrs, logging.String("reason", outcome.Reason))
	}
	switch {
	case outcome.Warning != "":
		attrs = append(attrs, logging.String("warning", outcome.Warning))
		e.logger.Warn("action completed with warning", logging.Args(attrs...)...)
	case outcome.Status == Failed:
		e.logger.Warn("action failed", logging.Args(attrs...)...)
	default:
		e.logger.Debug("action applied", logging.Args(attrs...)...)
	}
}
