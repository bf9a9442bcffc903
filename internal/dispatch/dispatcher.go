package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"splice/internal/host"
	"splice/internal/keyframe"
	"splice/internal/logging"
	"splice/internal/timeline"
	"splice/internal/transformsync"
)

// handler pairs an action tag's validator with its per-clip apply function.
// Validation runs once per dispatch before any clip is touched; apply runs per
// target clip. Handlers with absorb set mutate the effect list, so the
// transform is re-derived from the entries before the lockstep pass.
type handler struct {
	validate func(d *Dispatcher, act *Action) error
	apply    func(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error
	absorb   bool
}

// Dispatcher routes actions to handlers and owns all AppliedEffect/transform
// mutation. It serves one project at a time; host calls for one clip complete
// before the next clip starts, which the undo snapshot model depends on.
type Dispatcher struct {
	project  *timeline.Project
	surface  host.Host
	resolver *keyframe.Resolver
	logger   *slog.Logger
	handlers map[Tag]handler
}

// New returns a dispatcher for the given project and editing surface.
func New(project *timeline.Project, surface host.Host, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		project:  project,
		surface:  surface,
		resolver: keyframe.NewResolver(surface, logger),
		logger:   logging.NewComponentLogger(logger, "dispatcher"),
	}
	d.handlers = map[Tag]handler{
		TagZoom:         {validate: validateZoom, apply: applyZoom},
		TagPosition:     {validate: validatePosition, apply: applyPosition},
		TagRotation:     {validate: validateRotation, apply: applyRotation},
		TagOpacity:      {validate: validateOpacity, apply: applyOpacity},
		TagFilter:       {validate: validateFilter, apply: applyFilter},
		TagVolume:       {validate: validateVolume, apply: applyVolume},
		TagSpeed:        {validate: validateSpeed, apply: applySpeed},
		TagCut:          {validate: validateCut, apply: applyCut},
		TagTrim:         {validate: validateTrim, apply: applyTrim},
		TagDeleteClip:   {validate: validateNone, apply: applyDeleteClip},
		TagApplyEffect:  {validate: validateApplyEffect, apply: applyApplyEffect, absorb: true},
		TagRemoveEffect: {validate: validateEffectRef, apply: applyRemoveEffect, absorb: true},
		TagUpdateEffect: {validate: validateEffectRef, apply: applyUpdateEffect, absorb: true},
		TagToggleEffect: {validate: validateEffectRef, apply: applyToggleEffect, absorb: true},
		TagReset:        {validate: validateNone, apply: applyReset},
	}
	return d
}

// Rebind points the dispatcher at a different project tree. The editor uses
// this after undo and redo replace the working copy.
func (d *Dispatcher) Rebind(project *timeline.Project) {
	d.project = project
}

// Tags returns every registered action tag.
func (d *Dispatcher) Tags() []Tag {
	tags := make([]Tag, 0, len(d.handlers))
	for tag := range d.handlers {
		tags = append(tags, tag)
	}
	return tags
}

// Dispatch validates an action and applies it to each target clip in order.
// Validation and unknown-tag errors are fatal and leave every clip untouched;
// per-clip failures during execution are counted in the result while the
// remaining clips still run.
func (d *Dispatcher) Dispatch(ctx context.Context, act Action) (Result, error) {
	h, ok := d.handlers[act.Tag]
	if !ok {
		return Result{}, &UnknownActionError{Tag: act.Tag}
	}
	act.Parameters = cloneParams(act.Parameters)
	if err := h.validate(d, &act); err != nil {
		return Result{}, err
	}

	result := Result{Tag: act.Tag}
	for _, clipID := range d.targets(act) {
		if err := d.applyToClip(ctx, h, clipID, act); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, Failure{ClipID: clipID, Reason: err.Error()})
			d.logger.Warn("edit failed for clip",
				logging.String(logging.FieldAction, string(act.Tag)),
				logging.String(logging.FieldClipID, clipID),
				logging.Error(err))
			continue
		}
		result.Successful++
	}
	d.logger.Info("dispatched edit",
		logging.String(logging.FieldAction, string(act.Tag)),
		logging.Int("successful", result.Successful),
		logging.Int("failed", result.Failed))
	return result, nil
}

// DispatchMany validates every action up front, then runs them in order
// against their targets. One action failing on every clip does not stop the
// actions after it.
func (d *Dispatcher) DispatchMany(ctx context.Context, actions []Action) (BatchResult, error) {
	prepared := make([]Action, len(actions))
	for i, act := range actions {
		h, ok := d.handlers[act.Tag]
		if !ok {
			return BatchResult{}, &UnknownActionError{Tag: act.Tag}
		}
		act.Parameters = cloneParams(act.Parameters)
		if err := h.validate(d, &act); err != nil {
			return BatchResult{}, err
		}
		prepared[i] = act
	}

	var batch BatchResult
	for _, act := range prepared {
		result, err := d.Dispatch(ctx, act)
		if err != nil {
			// Tags and parameters were validated above; a failure here means
			// the registry changed mid-batch.
			return batch, err
		}
		batch.Results = append(batch.Results, result)
		batch.Successful += result.Successful
		batch.Failed += result.Failed
	}
	return batch, nil
}

func (d *Dispatcher) targets(act Action) []string {
	if len(act.ClipIDs) > 0 {
		return act.ClipIDs
	}
	clips := d.project.Clips()
	ids := make([]string, len(clips))
	for i, clip := range clips {
		ids[i] = clip.ID
	}
	return ids
}

func (d *Dispatcher) applyToClip(ctx context.Context, h handler, clipID string, act Action) error {
	clip, _ := d.project.FindClip(clipID)
	if clip == nil {
		return fmt.Errorf("clip %s: %w", clipID, host.ErrClipNotFound)
	}
	if err := h.apply(ctx, d, clip, act); err != nil {
		return err
	}
	return d.resync(clipID, h)
}

// resync restores the transform/effect-list lockstep after a handler ran.
// Handlers that edited the effect list absorb it into the transform first;
// the forward pass then prunes entries left resting at their neutral values.
func (d *Dispatcher) resync(clipID string, h handler) error {
	clip, _ := d.project.FindClip(clipID)
	if clip == nil {
		// The handler removed the clip (delete, or a cut that replaced it).
		return nil
	}
	if h.absorb {
		if err := transformsync.Absorb(clip); err != nil {
			return err
		}
	}
	return transformsync.Apply(clip)
}
