package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"cull/internal/media"
	"cull/internal/scan"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestBuildFlatEnumeration(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "IMG001.jpg")
	writeFile(t, dir, "IMG001.ARW")
	writeFile(t, dir, "IMG002.mp4")
	writeFile(t, dir, "notes.txt")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	writeFile(t, filepath.Join(dir, "nested"), "IMG100.jpg")

	candidates, index, err := scan.Build(dir, media.DefaultSets())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(candidates) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.Name == "IMG100.jpg" {
			t.Fatal("nested entries must not be enumerated")
		}
	}

	siblings := index.Siblings("IMG001")
	if len(siblings) != 2 {
		t.Fatalf("expected 2 siblings for IMG001, got %d", len(siblings))
	}
	if len(index.Siblings("IMG002")) != 1 {
		t.Fatal("expected 1 sibling for IMG002")
	}
	if len(index.Siblings("missing")) != 0 {
		t.Fatal("expected no siblings for unknown stem")
	}
}

func TestBuildEnumerationOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.jpg")
	writeFile(t, dir, "a.jpg")
	writeFile(t, dir, "c.jpg")

	candidates, _, err := scan.Build(dir, media.DefaultSets())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := make([]string, 0, len(candidates))
	for _, c := range candidates {
		got = append(got, c.Name)
	}
	want := []string{"a.jpg", "b.jpg", "c.jpg"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("enumeration order = %v, want %v", got, want)
		}
	}
}

func TestBuildUnreadableSource(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "absent")

	if _, _, err := scan.Build(missing, media.DefaultSets()); err == nil {
		t.Fatal("expected error for missing source directory")
	}
}

func TestBuildStemBuckets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "IMG001.jpg")
	writeFile(t, dir, "IMG001.ARW")
	writeFile(t, dir, "IMG001.xmp")

	candidates, index, err := scan.Build(dir, media.DefaultSets())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	total := 0
	for _, bucket := range index {
		total += len(bucket)
	}
	if total != len(candidates) {
		t.Fatalf("index holds %d candidates, enumeration produced %d", total, len(candidates))
	}
}
