package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeContentFile(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "packs.txt")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write content file: %v", err)
	}
	return path
}

func TestLintFileAcceptsValidPacks(t *testing.T) {
	path := writeContentFile(t,
		"spark-a,8,80",
		"spark-b,19,-60",
	)

	report, err := lintFile(path)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if !report.OK() {
		t.Fatalf("expected a clean report, got findings: %+v", report.Findings)
	}
	if report.Packs != 2 {
		t.Fatalf("expected 2 packs, got %d", report.Packs)
	}
}

func TestLintFileRejectsMalformedLine(t *testing.T) {
	path := writeContentFile(t, "spark-a,8")

	report, err := lintFile(path)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if report.OK() {
		t.Fatal("expected a malformed line to be flagged")
	}
}

func TestLintFileRejectsOutOfRangeCell(t *testing.T) {
	path := writeContentFile(t, "spark-a,2,80")

	report, err := lintFile(path)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if report.OK() {
		t.Fatal("expected an out-of-range cell to be flagged")
	}
}

func TestLintFileRejectsCollapsingValue(t *testing.T) {
	path := writeContentFile(t, "spark-a,8,5")

	report, err := lintFile(path)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if report.OK() {
		t.Fatal("expected a collapsing starting value to be flagged")
	}
}

func TestLintFileRejectsDuplicateName(t *testing.T) {
	path := writeContentFile(t,
		"spark-a,8,80",
		"spark-a,20,90",
	)

	report, err := lintFile(path)
	if err != nil {
		t.Fatalf("lintFile: %v", err)
	}
	if report.OK() {
		t.Fatal("expected a duplicate pack name to be flagged")
	}
}

func TestLintFileMissingPath(t *testing.T) {
	if _, err := lintFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
