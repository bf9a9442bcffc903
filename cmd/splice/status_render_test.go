package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"splice/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Splice", statusError, "Not ready", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Splice:", "[ERROR] Not ready")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestCheckLines(t *testing.T) {
	results := []preflight.Result{
		{Name: "FFmpeg", Passed: true, Detail: "ready"},
		{Name: "Data directory", Passed: false, Detail: "does not exist"},
	}
	lines := checkLines(results, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[ERROR]") || !strings.Contains(lines[0], "1 of 2 checks failed") {
		t.Fatalf("expected failing summary first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK] ready") {
		t.Fatalf("expected passing detail in second line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[ERROR] does not exist") {
		t.Fatalf("expected failing detail in third line, got %q", lines[2])
	}
}

func TestCheckLinesAllPassing(t *testing.T) {
	results := []preflight.Result{
		{Name: "FFmpeg", Passed: true, Detail: "ready"},
		{Name: "FFprobe", Passed: true, Detail: "ready"},
	}
	lines := checkLines(results, false)
	if !strings.Contains(lines[0], "[OK] all 2 checks passed") {
		t.Fatalf("expected passing summary, got %q", lines[0])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
