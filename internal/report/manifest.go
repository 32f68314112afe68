package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var manifestHeader = []string{
	"name", "class", "rating", "inherited", "status", "reason", "warning", "destination", "capture_time",
}

// WriteManifest writes the per-run CSV manifest into dir, creating it
// when missing, and returns the manifest path. The filename embeds the
// run ID so repeated runs never clobber each other.
func WriteManifest(dir string, rep *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create manifest dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, "cull-"+rep.RunID+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create manifest %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(manifestHeader); err != nil {
		f.Close()
		return "", fmt.Errorf("write manifest header: %w", err)
	}
	for _, row := range rep.Rows {
		record := []string{
			row.Outcome.Candidate.Name,
			row.Outcome.Candidate.Class.String(),
			row.RatingLabel(),
			strconv.FormatBool(row.Inherited),
			row.Outcome.Status.String(),
			row.Outcome.Reason,
			row.Outcome.Warning,
			row.Outcome.Dest,
			row.CaptureLabel(),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return "", fmt.Errorf("write manifest row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close manifest: %w", err)
	}
	return path, nil
}
