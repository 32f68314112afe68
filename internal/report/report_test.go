package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cull/internal/action"
	"cull/internal/media"
	"cull/internal/rating"
	"cull/internal/report"
	"cull/internal/testsupport"
)

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"/photos/wedding_shoot-2024", "Wedding Shoot 2024"},
		{"/photos/2024.06.15 iceland", "2024 06 15 Iceland"},
		{"shoot", "Shoot"},
		{"", "Untitled Run"},
		{"///", "Untitled Run"},
	}
	for _, tc := range cases {
		if got := report.DeriveTitle(tc.source); got != tc.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestTally(t *testing.T) {
	rows := []report.Row{
		{Outcome: action.Outcome{Status: action.Succeeded}},
		{Outcome: action.Outcome{Status: action.Succeeded, Warning: "label: no xattr support"}},
		{Outcome: action.Outcome{Status: action.Skipped, Reason: action.ReasonDryRun}},
		{Outcome: action.Outcome{Status: action.Failed, Reason: action.ReasonDestinationExists}},
	}

	counts := report.Tally(rows)
	want := report.Counts{Selected: 4, Succeeded: 2, Skipped: 1, Failed: 1, Warnings: 1}
	if counts != want {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
}

func TestRowLabels(t *testing.T) {
	rated := report.Row{Rating: rating.Result{Value: 5, Present: true}}
	if got := rated.RatingLabel(); got != "5" {
		t.Fatalf("RatingLabel = %q, want 5", got)
	}
	unrated := report.Row{}
	if got := unrated.RatingLabel(); got != "-" {
		t.Fatalf("RatingLabel = %q, want -", got)
	}
	if got := unrated.CaptureLabel(); got != "" {
		t.Fatalf("CaptureLabel = %q, want empty", got)
	}
	taken := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	stamped := report.Row{CaptureTime: taken}
	if got := stamped.CaptureLabel(); got != "2024-06-15T10:30:00Z" {
		t.Fatalf("CaptureLabel = %q", got)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	candidate := media.NewCandidate("/photos", "IMG001.jpg", media.DefaultSets())
	rep := &report.Report{
		RunID: "0d9f2a6c",
		Rows: []report.Row{
			{
				Outcome: action.Outcome{
					Candidate: candidate,
					Status:    action.Succeeded,
					Dest:      "/picked/IMG001.jpg",
				},
				Rating: rating.Result{Value: 5, Present: true},
			},
			{
				Outcome: action.Outcome{
					Candidate: media.NewCandidate("/photos", "IMG001.ARW", media.DefaultSets()),
					Status:    action.Failed,
					Reason:    action.ReasonDestinationExists,
				},
				Inherited: true,
			},
		},
	}

	path, err := report.WriteManifest(filepath.Join(dir, "manifests"), rep)
	if err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if filepath.Base(path) != "cull-0d9f2a6c.csv" {
		t.Fatalf("unexpected manifest name: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "name" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "IMG001.jpg" || records[1][2] != "5" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][3] != "true" || records[2][5] != action.ReasonDestinationExists {
		t.Fatalf("unexpected second row: %v", records[2])
	}
}

func TestCaptureTimeAbsent(t *testing.T) {
	if _, ok := report.CaptureTime(filepath.Join(t.TempDir(), "missing.jpg")); ok {
		t.Fatal("missing file must not report a capture time")
	}

	path := testsupport.WriteFile(t, t.TempDir(), "plain.jpg", []byte("not a real image"))
	if _, ok := report.CaptureTime(path); ok {
		t.Fatal("file without EXIF data must not report a capture time")
	}
}

func TestDuration(t *testing.T) {
	rep := &report.Report{
		Started:  time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		Finished: time.Date(2024, 6, 15, 10, 0, 2, 0, time.UTC),
	}
	if got := rep.Duration(); got != 2*time.Second {
		t.Fatalf("duration = %v", got)
	}
}
