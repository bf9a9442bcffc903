package main

import (
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	trimmed := strings.TrimSpace(out)
	if !strings.HasPrefix(trimmed, "splice ") {
		t.Fatalf("unexpected version output: %q", out)
	}
	if strings.TrimPrefix(trimmed, "splice ") == "" {
		t.Fatal("expected a version identifier after the binary name")
	}
}
