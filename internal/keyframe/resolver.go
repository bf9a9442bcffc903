package keyframe

import (
	"context"
	"fmt"
	"log/slog"

	"splice/internal/host"
	"splice/internal/logging"
	"splice/internal/timeline"
)

// Request describes one parameter change to realize on a clip. EndValue is the
// target value; StartValue only matters when Animated is set. StartTime and
// Duration are seconds relative to the owning clip's start, with zero meaning
// "from the clip start" and "to the clip end" respectively.
type Request struct {
	Component     host.ComponentRef
	Parameter     string
	StartValue    float64
	EndValue      float64
	StartTime     float64
	Duration      float64
	Interpolation timeline.Interpolation
	Animated      bool
}

// static reports whether the request collapses to a single pinned value.
func (r Request) static() bool {
	return !r.Animated || r.StartValue == r.EndValue
}

// Resolver places parameter changes through the host surface. Each placement
// issues its surface writes in one transaction, so a clip never ends up with
// half an animation.
type Resolver struct {
	surface host.Host
	logger  *slog.Logger
}

// NewResolver returns a resolver bound to the given surface.
func NewResolver(surface host.Host, logger *slog.Logger) *Resolver {
	return &Resolver{
		surface: surface,
		logger:  logging.NewComponentLogger(logger, "keyframes"),
	}
}

// Apply realizes one request against the clip that owns the target component.
// A component reference without a clip ID is scoped to the given clip. Errors
// are per-clip: the caller decides whether they fail a batch entry or the
// whole operation.
func (r *Resolver) Apply(ctx context.Context, clip *timeline.Clip, req Request) error {
	if req.Parameter == "" {
		return fmt.Errorf("clip %s: keyframe request needs a parameter name", clip.ID)
	}
	if req.Component.ClipID == "" {
		req.Component.ClipID = clip.ID
	}
	interp, err := timeline.ParseInterpolation(string(req.Interpolation))
	if err != nil {
		return fmt.Errorf("clip %s: %w", clip.ID, err)
	}
	param, err := r.surface.ResolveParameter(ctx, req.Component, req.Parameter)
	if err != nil {
		return err
	}

	if req.static() {
		err := r.surface.Tx(ctx, func(tx host.Tx) error {
			if err := tx.SetTimeVarying(param, false); err != nil {
				return err
			}
			if err := tx.ClearKeyframes(param); err != nil {
				return err
			}
			return tx.SetStaticValue(param, req.EndValue)
		})
		if err != nil {
			return err
		}
		r.logger.Debug("pinned static value",
			logging.String(logging.FieldClipID, clip.ID),
			logging.String(logging.FieldParameter, req.Parameter),
			logging.Float64("value", req.EndValue))
		return nil
	}

	if req.StartTime < 0 {
		return fmt.Errorf("clip %s: animation start %.3fs precedes the clip", clip.ID, req.StartTime)
	}
	remaining := clip.Duration() - req.StartTime
	if remaining <= 0 {
		return fmt.Errorf("clip %s: animation start %.3fs is past the end of the clip", clip.ID, req.StartTime)
	}
	duration := req.Duration
	if duration < 0 {
		return fmt.Errorf("clip %s: animation duration %.3fs is negative", clip.ID, duration)
	}
	if duration == 0 {
		duration = remaining
	}

	start := clip.TimelineStart + req.StartTime
	end := start + duration
	err = r.surface.Tx(ctx, func(tx host.Tx) error {
		if err := tx.SetTimeVarying(param, true); err != nil {
			return err
		}
		if err := tx.AddKeyframe(param, timeline.Keyframe{Time: start, Value: req.StartValue, Interpolation: interp}); err != nil {
			return err
		}
		if err := tx.AddKeyframe(param, timeline.Keyframe{Time: end, Value: req.EndValue, Interpolation: interp}); err != nil {
			return err
		}
		// The resting value after the ramp completes.
		return tx.SetStaticValue(param, req.EndValue)
	})
	if err != nil {
		return err
	}
	r.logger.Debug("placed animation ramp",
		logging.String(logging.FieldClipID, clip.ID),
		logging.String(logging.FieldParameter, req.Parameter),
		logging.Float64("from", req.StartValue),
		logging.Float64("to", req.EndValue),
		logging.Float64("start", start),
		logging.Float64("end", end),
		logging.String("interpolation", string(interp)))
	return nil
}
