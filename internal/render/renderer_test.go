package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splice/internal/logging"
	"splice/internal/media/ffprobe"
	"splice/internal/testsupport"
	"splice/internal/timeline"
)

func stubProbe(t *testing.T, hasAudio bool) {
	t.Helper()
	original := probeSource
	probeSource = func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		streams := []ffprobe.Stream{{CodecType: "video"}}
		if hasAudio {
			streams = append(streams, ffprobe.Stream{CodecType: "audio"})
		}
		return ffprobe.Result{Streams: streams}, nil
	}
	t.Cleanup(func() { probeSource = original })
}

func stubRun(t *testing.T, run func(ctx context.Context, binary string, args []string, progress func(progressUpdate)) error) {
	t.Helper()
	original := renderRun
	renderRun = run
	t.Cleanup(func() { renderRun = original })
}

func exportProject(t *testing.T) *timeline.Project {
	t.Helper()
	project := timeline.NewProject("Road Trip")
	project.TrackFor(timeline.TrackVideo).AddClip(videoClip("surf.mp4", 0, 2))
	return project
}

func TestExportDeliversVerifiedOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	stubProbe(t, true)
	var captured []string
	stubRun(t, func(ctx context.Context, binary string, args []string, progress func(progressUpdate)) error {
		captured = append([]string(nil), args...)
		if err := os.WriteFile(args[len(args)-1], []byte("encoded media"), 0o644); err != nil {
			return err
		}
		progress(progressUpdate{Seconds: 1, Speed: 2.5})
		progress(progressUpdate{Seconds: 2, Done: true})
		return nil
	})

	renderer := New(cfg, logging.NewNop())
	result, err := renderer.Export(context.Background(), exportProject(t), Options{})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	wantPath := filepath.Join(cfg.Render.OutputDir, "Road Trip.mp4")
	if result.OutputPath != wantPath {
		t.Fatalf("expected output at %q, got %q", wantPath, result.OutputPath)
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil || string(data) != "encoded media" {
		t.Fatalf("delivered file unreadable or wrong: %v %q", err, data)
	}
	if result.Duration != 2 {
		t.Fatalf("expected program duration 2, got %v", result.Duration)
	}

	if len(captured) == 0 {
		t.Fatal("ffmpeg was never invoked")
	}
	staged := captured[len(captured)-1]
	if !strings.HasPrefix(staged, cfg.Paths.StagingDir) {
		t.Fatalf("encode should target staging, got %q", staged)
	}
	if _, err := os.Stat(staged); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("staged file should be removed after delivery: %v", err)
	}
	joined := strings.Join(captured, " ")
	if !strings.Contains(joined, "-c:v libx264") {
		t.Fatalf("expected default h264 encode, got %q", joined)
	}
}

func TestExportNamesNeverOverwrite(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	stubProbe(t, true)
	stubRun(t, func(ctx context.Context, binary string, args []string, progress func(progressUpdate)) error {
		return os.WriteFile(args[len(args)-1], []byte("take"), 0o644)
	})
	if err := os.MkdirAll(cfg.Render.OutputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(cfg.Render.OutputDir, "Road Trip.mp4")
	if err := os.WriteFile(existing, []byte("previous render"), 0o644); err != nil {
		t.Fatal(err)
	}

	renderer := New(cfg, logging.NewNop())
	result, err := renderer.Export(context.Background(), exportProject(t), Options{})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if result.OutputPath != filepath.Join(cfg.Render.OutputDir, "Road Trip-2.mp4") {
		t.Fatalf("expected suffixed output path, got %q", result.OutputPath)
	}
	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "previous render" {
		t.Fatalf("earlier render was disturbed: %v %q", err, data)
	}
}

func TestExportHonorsOutputNameOverride(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	stubProbe(t, true)
	stubRun(t, func(ctx context.Context, binary string, args []string, progress func(progressUpdate)) error {
		return os.WriteFile(args[len(args)-1], []byte("take"), 0o644)
	})

	renderer := New(cfg, logging.NewNop())
	result, err := renderer.Export(context.Background(), exportProject(t), Options{OutputName: "Final Cut: v2"})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if filepath.Base(result.OutputPath) != "Final Cut- v2.mp4" {
		t.Fatalf("expected sanitized override name, got %q", filepath.Base(result.OutputPath))
	}
}

func TestExportCleansStagingOnEncodeFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	stubProbe(t, true)
	stubRun(t, func(ctx context.Context, binary string, args []string, progress func(progressUpdate)) error {
		if err := os.WriteFile(args[len(args)-1], []byte("partial"), 0o644); err != nil {
			return err
		}
		return errors.New("ffmpeg failed: exit status 1")
	})

	renderer := New(cfg, logging.NewNop())
	if _, err := renderer.Export(context.Background(), exportProject(t), Options{}); err == nil {
		t.Fatal("expected encode failure to surface")
	}
	entries, err := os.ReadDir(cfg.Paths.StagingDir)
	if err != nil {
		t.Fatalf("read staging dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("staging should be empty after failure, found %d entries", len(entries))
	}
}

func TestExportFailsWhenSourceUnreadable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	original := probeSource
	probeSource = func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		return ffprobe.Result{}, errors.New("no such file")
	}
	t.Cleanup(func() { probeSource = original })
	stubRun(t, func(ctx context.Context, binary string, args []string, progress func(progressUpdate)) error {
		t.Fatal("ffmpeg must not run when a source is unreadable")
		return nil
	})

	renderer := New(cfg, logging.NewNop())
	_, err := renderer.Export(context.Background(), exportProject(t), Options{})
	if err == nil || !strings.Contains(err.Error(), "surf.mp4") {
		t.Fatalf("expected clip name in probe error, got %v", err)
	}
}

func TestExportRejectsEmptyTimeline(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	stubProbe(t, true)

	renderer := New(cfg, logging.NewNop())
	_, err := renderer.Export(context.Background(), timeline.NewProject("Empty"), Options{})
	if err == nil || !strings.Contains(err.Error(), "no video clips") {
		t.Fatalf("expected empty-timeline error, got %v", err)
	}
}
