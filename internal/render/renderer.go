package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"splice/internal/config"
	"splice/internal/fileutil"
	"splice/internal/logging"
	"splice/internal/media/ffprobe"
	"splice/internal/textutil"
	"splice/internal/timeline"
)

var (
	probeSource = ffprobe.Inspect
	renderRun   = runFFmpeg
)

// Renderer exports projects through ffmpeg using the configured codec,
// quality, and output directory.
type Renderer struct {
	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Renderer {
	return &Renderer{cfg: cfg, logger: logging.NewComponentLogger(logger, "render")}
}

// Options shape a single export.
type Options struct {
	// OutputName overrides the output base name; the project name is used
	// when empty. The container extension always follows the codec.
	OutputName string
}

// Result describes a finished export.
type Result struct {
	OutputPath string
	Duration   float64
	Elapsed    time.Duration
}

// Export renders the project into the configured output directory. The file
// is encoded into the staging directory first and only moved into place once
// ffmpeg finishes and the copy verifies, so a failed or cancelled export
// never leaves a partial file next to good ones.
func (r *Renderer) Export(ctx context.Context, project *timeline.Project, opts Options) (*Result, error) {
	start := time.Now()

	sources, err := r.inspectSources(ctx, project)
	if err != nil {
		return nil, err
	}
	graph, err := BuildGraph(project, sources)
	if err != nil {
		return nil, err
	}
	encoder, err := encoderArgs(r.cfg.Render)
	if err != nil {
		return nil, err
	}
	spec, err := codecFor(r.cfg.Render.Codec)
	if err != nil {
		return nil, err
	}

	name := opts.OutputName
	if name == "" {
		name = project.Name
	}
	base := textutil.SanitizeFileName(name)
	if base == "" {
		base = "export"
	}

	if err := os.MkdirAll(r.cfg.Paths.StagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	stagingPath := filepath.Join(r.cfg.Paths.StagingDir,
		textutil.SanitizeToken(name)+"-"+uuid.NewString()+spec.Extension)

	logger := r.logger.With(logging.String(logging.FieldProjectID, project.ID))
	logger.Info("starting export",
		logging.String("codec", r.cfg.Render.Codec),
		logging.String("quality", r.cfg.Render.Quality),
		logging.Float64("duration_sec", graph.Duration),
		logging.Int("inputs", len(graph.Inputs)),
		logging.String("output_name", base+spec.Extension),
	)

	sampler := logging.NewProgressSampler(10)
	progress := func(update progressUpdate) {
		percent := 0.0
		if graph.Duration > 0 {
			percent = update.Seconds / graph.Duration * 100
			if percent > 100 {
				percent = 100
			}
		}
		if update.Done {
			percent = 100
		}
		if !sampler.ShouldLog(percent, "encode") {
			return
		}
		attrs := []logging.Attr{logging.Float64("progress_percent", percent)}
		if update.Speed > 0 {
			attrs = append(attrs, logging.Float64("encode_speed", update.Speed))
		}
		logger.Info("export progress", logging.Args(attrs...)...)
	}

	args := buildArgs(graph, project.FrameRate, encoder, stagingPath)
	if err := renderRun(ctx, r.cfg.FFmpegBinary(), args, progress); err != nil {
		_ = os.Remove(stagingPath)
		return nil, err
	}

	if err := os.MkdirAll(r.cfg.Render.OutputDir, 0o755); err != nil {
		_ = os.Remove(stagingPath)
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	finalPath, err := fileutil.UniquePath(filepath.Join(r.cfg.Render.OutputDir, base+spec.Extension))
	if err != nil {
		_ = os.Remove(stagingPath)
		return nil, fmt.Errorf("resolve output path: %w", err)
	}
	if err := fileutil.CopyFileVerified(stagingPath, finalPath); err != nil {
		_ = os.Remove(stagingPath)
		return nil, fmt.Errorf("deliver export: %w", err)
	}
	_ = os.Remove(stagingPath)

	elapsed := time.Since(start)
	logger.Info("export complete",
		logging.String("output", finalPath),
		logging.Float64("duration_sec", graph.Duration),
		logging.Duration("elapsed", elapsed),
	)
	return &Result{OutputPath: finalPath, Duration: graph.Duration, Elapsed: elapsed}, nil
}

// inspectSources probes every distinct source file the timeline references,
// both to fail early on missing media and to learn which sources carry audio.
func (r *Renderer) inspectSources(ctx context.Context, project *timeline.Project) (map[string]SourceInfo, error) {
	if project == nil {
		return nil, nil
	}
	sources := make(map[string]SourceInfo)
	for _, track := range project.Tracks {
		for _, clip := range track.Clips {
			if _, seen := sources[clip.SourcePath]; seen {
				continue
			}
			result, err := probeSource(ctx, r.cfg.FFprobeBinary(), clip.SourcePath)
			if err != nil {
				return nil, fmt.Errorf("source media for clip %q: %w", clip.Name, err)
			}
			sources[clip.SourcePath] = SourceInfo{HasAudio: hasAudioStream(result)}
		}
	}
	return sources, nil
}

func hasAudioStream(result ffprobe.Result) bool {
	for _, stream := range result.Streams {
		if stream.CodecType == "audio" {
			return true
		}
	}
	return false
}
