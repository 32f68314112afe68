// Package report assembles the per-run outcome report: a derived run
// title, one row per selected file, tallied counts, and an optional
// CSV manifest.
package report

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cull/internal/action"
	"cull/internal/rating"
)

// Row is one selected file's outcome plus the metadata gathered for it.
type Row struct {
	Outcome   action.Outcome
	Rating    rating.Result
	Inherited bool
	// CaptureTime is the EXIF capture timestamp, read before any
	// action runs so moved and deleted files still carry it. Zero
	// when the file had none.
	CaptureTime time.Time
}

// RatingLabel renders the rating for tables and manifests.
func (r Row) RatingLabel() string {
	if !r.Rating.Present {
		return "-"
	}
	return strconv.Itoa(r.Rating.Value)
}

// CaptureLabel renders the capture time, or "" when unknown.
func (r Row) CaptureLabel() string {
	if r.CaptureTime.IsZero() {
		return ""
	}
	return r.CaptureTime.Format(time.RFC3339)
}

// Counts tallies row outcomes for the run summary.
type Counts struct {
	Selected  int
	Succeeded int
	Skipped   int
	Failed    int
	Warnings  int
}

// Report describes one completed run.
type Report struct {
	RunID        string
	Title        string
	Action       string
	Source       string
	Dest         string
	DryRun       bool
	Started      time.Time
	Finished     time.Time
	Rows         []Row
	Counts       Counts
	ManifestPath string
}

// Duration returns the wall-clock span of the run.
func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Tally computes summary counts over the rows.
func Tally(rows []Row) Counts {
	counts := Counts{Selected: len(rows)}
	for _, row := range rows {
		switch row.Outcome.Status {
		case action.Succeeded:
			counts.Succeeded++
		case action.Skipped:
			counts.Skipped++
		case action.Failed:
			counts.Failed++
		}
		if row.Outcome.Warning != "" {
			counts.Warnings++
		}
	}
	return counts
}

// DeriveTitle builds a display title from the source directory name.
func DeriveTitle(source string) string {
	if source == "" {
		return "Untitled Run"
	}
	base := filepath.Base(filepath.Clean(source))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Run"
	}
	return cases.Title(language.Und).String(title)
}
