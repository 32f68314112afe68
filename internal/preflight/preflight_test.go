package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckSourceDirectory_OK(t *testing.T) {
	result := CheckSourceDirectory(t.TempDir(), false)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckSourceDirectory_NotExist(t *testing.T) {
	result := CheckSourceDirectory(filepath.Join(t.TempDir(), "nope"), false)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckSourceDirectory_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckSourceDirectory(f, false)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDestinationDirectory_OK(t *testing.T) {
	result := CheckDestinationDirectory(t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDestinationDirectory_NotExist(t *testing.T) {
	result := CheckDestinationDirectory(filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
}

func TestCheckExifTool_Present(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "exiftool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	result := CheckExifTool(stub)
	if !result.Passed {
		t.Fatalf("expected pass for stub binary, got: %s", result.Detail)
	}
}

func TestCheckExifTool_Missing(t *testing.T) {
	result := CheckExifTool("clearly-not-present-binary")
	if result.Passed {
		t.Fatal("expected failure for missing binary")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestRunAll_SkipsInapplicableChecks(t *testing.T) {
	results := RunAll(Options{Source: t.TempDir()})
	if len(results) != 1 {
		t.Fatalf("expected source check only, got %d results", len(results))
	}
	if !results[0].Passed {
		t.Fatalf("source check failed: %s", results[0].Detail)
	}
}

func TestRunAll_AllChecks(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "exiftool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(Options{
		Source:   t.TempDir(),
		Dest:     t.TempDir(),
		ExifTool: stub,
	})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if failed := Failures(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %v", failed)
	}
}

func TestFailures(t *testing.T) {
	results := []Result{
		{Name: "a", Passed: true},
		{Name: "b", Detail: "broken"},
	}
	failed := Failures(results)
	if len(failed) != 1 || failed[0].Name != "b" {
		t.Fatalf("unexpected failures: %v", failed)
	}
}
