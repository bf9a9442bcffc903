package main

import (
	"path/filepath"
	"testing"
)

func TestProbeReportsMediaDetails(t *testing.T) {
	env := setupCLITestEnv(t)
	media := mustWriteFile(t, filepath.Join(env.baseDir, "media", "surf.mp4"))

	out, _, err := runCLI(t, []string{"probe", media}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, "Kind:      video")
	requireContains(t, out, "Duration:  2.0s")
	requireContains(t, out, "Frame:     1280x720 @ 30 fps")
	requireContains(t, out, "Streams:   1 video, 1 audio")
}

func TestProbeEmitsRawJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	media := mustWriteFile(t, filepath.Join(env.baseDir, "media", "surf.mp4"))

	out, _, err := runCLI(t, []string{"probe", media, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("probe --json: %v", err)
	}
	requireContains(t, out, `"codec_name"`)
	requireContains(t, out, `"h264"`)
}

func TestProbeFailsOnUnreadableMedia(t *testing.T) {
	env := setupCLITestEnv(t)
	media := mustWriteFile(t, filepath.Join(env.baseDir, "media", "corrupt.mp4"))

	if _, _, err := runCLI(t, []string{"probe", media}, env.configPath); err == nil {
		t.Fatal("expected probe of unreadable media to fail")
	}
}
