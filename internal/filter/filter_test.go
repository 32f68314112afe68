package filter_test

import (
	"context"
	"path/filepath"
	"testing"

	"cull/internal/filter"
	"cull/internal/media"
	"cull/internal/rating"
)

func candidate(name string, class media.Class) media.Candidate {
	c := media.NewCandidate("/photos", name, media.DefaultSets())
	c.Class = class
	return c
}

func image(name string) media.Candidate { return candidate(name, media.ClassImage) }

// ratingTable maps candidate names to ratings; missing names decode as absent.
func ratingTable(values map[string]int) filter.RatingFunc {
	return func(_ context.Context, path string) rating.Result {
		if value, ok := values[filepath.Base(path)]; ok {
			return rating.Result{Value: value, Present: true}
		}
		return rating.Result{}
	}
}

func names(candidates []media.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Name)
	}
	return out
}

func assertNames(t *testing.T, got []media.Candidate, want ...string) {
	t.Helper()
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("matches = %v, want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("matches = %v, want %v", gotNames, want)
		}
	}
}

func TestParseComparison(t *testing.T) {
	cases := []struct {
		in      string
		want    filter.Comparison
		wantErr bool
	}{
		{"more-equal", filter.MoreEqual, false},
		{"less-equal", filter.LessEqual, false},
		{"equal", filter.Equal, false},
		{"EQUAL", filter.Equal, false},
		{"", filter.MoreEqual, false},
		{"greater", filter.MoreEqual, true},
	}
	for _, tc := range cases {
		got, err := filter.ParseComparison(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseComparison(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseComparison(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseComparison(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestComparisonMatches(t *testing.T) {
	cases := []struct {
		comparison filter.Comparison
		value      int
		threshold  int
		want       bool
	}{
		{filter.MoreEqual, 5, 4, true},
		{filter.MoreEqual, 4, 4, true},
		{filter.MoreEqual, 3, 4, false},
		{filter.LessEqual, 3, 4, true},
		{filter.LessEqual, 4, 4, true},
		{filter.LessEqual, 5, 4, false},
		{filter.Equal, 4, 4, true},
		{filter.Equal, 5, 4, false},
		{filter.MoreEqual, -1, 0, false},
		{filter.LessEqual, -1, 0, true},
	}
	for _, tc := range cases {
		got := tc.comparison.Matches(tc.value, tc.threshold)
		if got != tc.want {
			t.Fatalf("%v.Matches(%d, %d) = %v, want %v", tc.comparison, tc.value, tc.threshold, got, tc.want)
		}
	}
}

func TestPrimaryMatchesThreshold(t *testing.T) {
	candidates := []media.Candidate{image("a.jpg"), image("b.jpg"), image("c.jpg")}
	rate := ratingTable(map[string]int{"a.jpg": 5, "b.jpg": 3, "c.jpg": 4})

	p := filter.NewPipeline(filter.Config{Threshold: 4, Comparison: filter.MoreEqual}, rate, nil)
	matches, ratings := p.PrimaryMatches(context.Background(), candidates)

	assertNames(t, matches, "a.jpg", "c.jpg")
	if len(ratings) != 3 {
		t.Fatalf("expected 3 decoded ratings, got %d", len(ratings))
	}
}

func TestPrimaryMatchesAbsentNeverSelected(t *testing.T) {
	candidates := []media.Candidate{image("rated.jpg"), image("unrated.jpg")}
	rate := ratingTable(map[string]int{"rated.jpg": 5})

	for _, inverse := range []bool{false, true} {
		cfg := filter.Config{Threshold: 10, Comparison: filter.MoreEqual, Inverse: inverse}
		p := filter.NewPipeline(cfg, rate, nil)
		matches, _ := p.PrimaryMatches(context.Background(), candidates)
		for _, m := range matches {
			if m.Name == "unrated.jpg" {
				t.Fatalf("unrated candidate selected (inverse=%v)", inverse)
			}
		}
	}
}

func TestPrimaryMatchesInverse(t *testing.T) {
	candidates := []media.Candidate{image("keep.jpg"), image("reject.jpg")}
	rate := ratingTable(map[string]int{"keep.jpg": 5, "reject.jpg": 2})

	cfg := filter.Config{Threshold: 4, Comparison: filter.MoreEqual, Inverse: true}
	p := filter.NewPipeline(cfg, rate, nil)
	matches, _ := p.PrimaryMatches(context.Background(), candidates)

	assertNames(t, matches, "reject.jpg")
}

func TestPrimaryMatchesVideoGate(t *testing.T) {
	candidates := []media.Candidate{image("IMG001.jpg"), candidate("IMG002.mp4", media.ClassVideo)}
	rate := ratingTable(map[string]int{"IMG001.jpg": 5, "IMG002.mp4": 5})

	cfg := filter.Config{Threshold: 4, Comparison: filter.MoreEqual}
	p := filter.NewPipeline(cfg, rate, nil)
	matches, _ := p.PrimaryMatches(context.Background(), candidates)
	assertNames(t, matches, "IMG001.jpg")

	cfg.IncludeVideos = true
	p = filter.NewPipeline(cfg, rate, nil)
	matches, _ = p.PrimaryMatches(context.Background(), candidates)
	assertNames(t, matches, "IMG001.jpg", "IMG002.mp4")
}

func TestPrimaryMatchesUnknownClassNeverEvaluated(t *testing.T) {
	candidates := []media.Candidate{candidate("notes.txt", media.ClassUnknown)}
	decoded := false
	rate := func(context.Context, string) rating.Result {
		decoded = true
		return rating.Result{Value: 5, Present: true}
	}

	p := filter.NewPipeline(filter.Config{Threshold: 1}, rate, nil)
	matches, _ := p.PrimaryMatches(context.Background(), candidates)

	if len(matches) != 0 {
		t.Fatalf("unknown-class candidate selected: %v", names(matches))
	}
	if decoded {
		t.Fatal("unknown-class candidate must not be decoded")
	}
}

func TestSelectableExclusion(t *testing.T) {
	arw := image("IMG001.ARW")
	jpg := image("IMG001.jpg")

	cfg := filter.Config{Exclude: []string{".ARW"}}
	if cfg.Selectable(arw) {
		t.Fatal("excluded extension must not be selectable")
	}
	if !cfg.Selectable(jpg) {
		t.Fatal("non-excluded extension must stay selectable")
	}
}

func TestSelectableFlipExclusion(t *testing.T) {
	arw := image("IMG001.ARW")
	jpg := image("IMG001.jpg")

	cfg := filter.Config{Exclude: []string{"arw"}, FlipExclusion: true}
	if !cfg.Selectable(arw) {
		t.Fatal("flip-exclusion must keep listed extensions")
	}
	if cfg.Selectable(jpg) {
		t.Fatal("flip-exclusion must drop unlisted extensions")
	}
}

func TestSelectableEmptyExcludeIsNoop(t *testing.T) {
	jpg := image("IMG001.jpg")

	for _, flip := range []bool{false, true} {
		cfg := filter.Config{FlipExclusion: flip}
		if !cfg.Selectable(jpg) {
			t.Fatalf("empty exclude list must select everything (flip=%v)", flip)
		}
	}
}

func TestSelectableFilenameEntry(t *testing.T) {
	cfg := filter.Config{Exclude: []string{"IMG001.jpg"}}

	if cfg.Selectable(image("IMG001.jpg")) {
		t.Fatal("filename entry must exclude the exact file")
	}
	if !cfg.Selectable(image("IMG002.jpg")) {
		t.Fatal("filename entry must not exclude other files")
	}
}

func TestPrimaryMatchesAppliesExclusion(t *testing.T) {
	candidates := []media.Candidate{image("IMG001.jpg"), image("IMG001.ARW")}
	rate := ratingTable(map[string]int{"IMG001.jpg": 5, "IMG001.ARW": 5})

	cfg := filter.Config{Threshold: 4, Comparison: filter.MoreEqual, Exclude: []string{".arw"}}
	p := filter.NewPipeline(cfg, rate, nil)
	matches, _ := p.PrimaryMatches(context.Background(), candidates)

	assertNames(t, matches, "IMG001.jpg")
}
