// Package importer turns media files into timeline clips. Each import probes
// the file with ffprobe, classifies it, and appends a clip covering the whole
// source to the end of the matching track.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/google/uuid"

	"splice/internal/logging"
	"splice/internal/media/ffprobe"
	"splice/internal/timeline"
)

// probeMedia is the ffprobe function used by the importer.
// It is a package-level variable so tests can override it.
var probeMedia = ffprobe.Inspect

// SetProbeForTests overrides the ffprobe runner during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := probeMedia
	probeMedia = fn
	return func() {
		probeMedia = previous
	}
}

// DefaultImageDuration is how long a still image holds on the timeline when
// the file itself carries no duration.
const DefaultImageDuration = 5.0

// Importer inspects media files and places clips for them.
type Importer struct {
	binary string
	logger *slog.Logger
}

// New returns an importer that shells out to the given ffprobe binary.
func New(binary string, logger *slog.Logger) *Importer {
	return &Importer{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "importer"),
	}
}

// Probe inspects a file without touching any project.
func (i *Importer) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	return probeMedia(ctx, i.binary, path)
}

// Import probes path and appends a clip covering the whole source to the end
// of the project's matching track.
func (i *Importer) Import(ctx context.Context, project *timeline.Project, path string) (*timeline.Clip, error) {
	result, err := probeMedia(ctx, i.binary, path)
	if err != nil {
		return nil, err
	}

	kind := result.MediaKind()
	if kind == "" {
		return nil, fmt.Errorf("import %s: no usable audio or video streams", filepath.Base(path))
	}
	mediaType, err := timeline.ParseMediaType(kind)
	if err != nil {
		return nil, err
	}

	duration := result.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		if mediaType != timeline.MediaImage {
			return nil, fmt.Errorf("import %s: media reports no duration", filepath.Base(path))
		}
		duration = DefaultImageDuration
	}

	track := project.TrackFor(mediaType.Kind())
	clip := &timeline.Clip{
		ID:            uuid.NewString(),
		Name:          filepath.Base(path),
		MediaType:     mediaType,
		SourcePath:    path,
		SourceEnd:     duration,
		TimelineStart: track.End(),
		Transform:     timeline.DefaultTransform(),
	}
	track.AddClip(clip)

	i.logger.Info("imported media",
		logging.String(logging.FieldClipID, clip.ID),
		logging.String("path", path),
		logging.String("kind", kind),
		logging.Float64("duration_sec", duration))
	return clip, nil
}
