package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"splice/internal/effects"
	"splice/internal/host"
	"splice/internal/keyframe"
	"splice/internal/timeline"
	"splice/internal/transformsync"
)

// paramChange records one transform parameter moving from its prior value to
// a target, feeding the keyframe placement that follows the lockstep pass.
type paramChange struct {
	name  string
	prior float64
	value float64
}

// placeTransformParams runs the forward lockstep pass and then realizes each
// changed parameter through the resolver, honoring the action's animated,
// start_time, duration, and interpolation fields.
func (d *Dispatcher) placeTransformParams(ctx context.Context, clip *timeline.Clip, act Action, effectID string, changes ...paramChange) error {
	if err := transformsync.Apply(clip); err != nil {
		return err
	}
	animated := boolOr(act.Parameters, "animated", false)
	entry := clip.FindEffect(transformsync.BuiltinEntryID(effectID))
	if entry == nil {
		if !animated {
			// Fully reset: the lockstep pass dropped the entry, and with no
			// entry there are no keyframes left to clear.
			return nil
		}
		var err error
		entry, err = transformsync.Ensure(clip, effectID)
		if err != nil {
			return err
		}
	}
	interpolation, _ := stringParam(act.Parameters, "interpolation")
	for _, change := range changes {
		req := keyframe.Request{
			Component:     host.ComponentRef{ClipID: clip.ID, EntryID: entry.ID},
			Parameter:     change.name,
			StartValue:    change.prior,
			EndValue:      change.value,
			StartTime:     numberOr(act.Parameters, "start_time", 0),
			Duration:      numberOr(act.Parameters, "duration", 0),
			Interpolation: timeline.Interpolation(interpolation),
			Animated:      animated,
		}
		if err := d.resolver.Apply(ctx, clip, req); err != nil {
			return err
		}
	}
	return nil
}

// validateAnimationFields normalizes the optional fields shared by every
// parameter-placing action.
func validateAnimationFields(act *Action) error {
	if raw, exists := act.Parameters["animated"]; exists {
		if _, ok := raw.(bool); !ok {
			return invalidParam(act.Tag, "animated", "must be a boolean")
		}
	}
	if raw, exists := act.Parameters["interpolation"]; exists {
		s, ok := raw.(string)
		if !ok {
			return invalidParam(act.Tag, "interpolation", "must be a string")
		}
		interpolation, err := timeline.ParseInterpolation(s)
		if err != nil {
			return invalidParam(act.Tag, "interpolation", err.Error())
		}
		act.Parameters["interpolation"] = string(interpolation)
	}
	for _, key := range []string{"start_time", "duration"} {
		raw, exists := act.Parameters[key]
		if !exists {
			continue
		}
		value, ok := anyNumber(raw)
		if !ok {
			return invalidParam(act.Tag, key, "must be a number")
		}
		if value < 0 {
			return invalidParam(act.Tag, key, "must not be negative")
		}
		act.Parameters[key] = value
	}
	return nil
}

func anyNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// validateClampedNumber requires a numeric parameter and clamps it into the
// catalog range for the given effect parameter.
func validateClampedNumber(act *Action, effectID, field string) error {
	value, ok := numberParam(act.Parameters, field)
	if !ok {
		return requiredParam(act.Tag, field)
	}
	desc, err := effects.Describe(effectID)
	if err != nil {
		return invalidParam(act.Tag, field, err.Error())
	}
	param, ok := desc.Parameter(field)
	if !ok {
		return invalidParam(act.Tag, field, "has no catalog definition")
	}
	act.Parameters[field] = effects.Clamp(param, value)
	return nil
}

func validateNone(*Dispatcher, *Action) error { return nil }

func validateZoom(_ *Dispatcher, act *Action) error {
	if err := validateClampedNumber(act, effects.IDScale, effects.ParamScale); err != nil {
		return err
	}
	return validateAnimationFields(act)
}

func applyZoom(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	target, _ := numberParam(act.Parameters, effects.ParamScale)
	prior := clip.Transform.Scale
	clip.Transform.Scale = target
	return d.placeTransformParams(ctx, clip, act, effects.IDScale,
		paramChange{effects.ParamScale, prior, target})
}

func validatePosition(_ *Dispatcher, act *Action) error {
	desc, _ := effects.Describe(effects.IDPosition)
	for _, field := range []string{"x", "y"} {
		value, ok := numberParam(act.Parameters, field)
		if !ok {
			return requiredParam(act.Tag, field)
		}
		param, _ := desc.Parameter(effects.ParamPositionX)
		act.Parameters[field] = effects.Clamp(param, value)
	}
	return validateAnimationFields(act)
}

func applyPosition(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	x, _ := numberParam(act.Parameters, "x")
	y, _ := numberParam(act.Parameters, "y")
	priorX, priorY := clip.Transform.PositionX, clip.Transform.PositionY
	clip.Transform.PositionX, clip.Transform.PositionY = x, y
	return d.placeTransformParams(ctx, clip, act, effects.IDPosition,
		paramChange{effects.ParamPositionX, priorX, x},
		paramChange{effects.ParamPositionY, priorY, y})
}

func validateRotation(_ *Dispatcher, act *Action) error {
	if err := validateClampedNumber(act, effects.IDRotation, effects.ParamDegrees); err != nil {
		return err
	}
	return validateAnimationFields(act)
}

func applyRotation(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	target, _ := numberParam(act.Parameters, effects.ParamDegrees)
	prior := clip.Transform.Rotation
	clip.Transform.Rotation = target
	return d.placeTransformParams(ctx, clip, act, effects.IDRotation,
		paramChange{effects.ParamDegrees, prior, target})
}

func validateOpacity(_ *Dispatcher, act *Action) error {
	if err := validateClampedNumber(act, effects.IDOpacity, effects.ParamOpacity); err != nil {
		return err
	}
	return validateAnimationFields(act)
}

func applyOpacity(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	target, _ := numberParam(act.Parameters, effects.ParamOpacity)
	prior := clip.Transform.Opacity
	clip.Transform.Opacity = target
	return d.placeTransformParams(ctx, clip, act, effects.IDOpacity,
		paramChange{effects.ParamOpacity, prior, target})
}

func validateFilter(_ *Dispatcher, act *Action) error {
	name, ok := stringParam(act.Parameters, "filter")
	if !ok || strings.TrimSpace(name) == "" {
		return requiredParam(act.Tag, "filter")
	}
	name = strings.ToLower(strings.TrimSpace(name))
	desc, err := effects.Describe(name)
	if err != nil {
		return invalidParam(act.Tag, "filter", fmt.Sprintf("unknown filter %q", name))
	}
	switch name {
	case effects.IDScale, effects.IDPosition, effects.IDRotation, effects.IDOpacity:
		return invalidParam(act.Tag, "filter", "has a dedicated action")
	}
	if !transformsync.Mappable(name) {
		return invalidParam(act.Tag, "filter", "is not a named filter")
	}
	value, ok := numberParam(act.Parameters, "value")
	if !ok {
		return requiredParam(act.Tag, "value")
	}
	act.Parameters["filter"] = name
	act.Parameters["value"] = effects.Clamp(desc.Parameters[0], value)
	return validateAnimationFields(act)
}

func applyFilter(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	name, _ := stringParam(act.Parameters, "filter")
	value, _ := numberParam(act.Parameters, "value")
	desc, err := effects.Describe(name)
	if err != nil {
		return err
	}
	primary := desc.Parameters[0]
	prior := primary.Neutral
	if v, ok := clip.Transform.FilterValue(name); ok {
		prior = v
	}
	clip.Transform.SetFilter(name, value)
	return d.placeTransformParams(ctx, clip, act, name,
		paramChange{primary.Name, prior, value})
}

func validateVolume(_ *Dispatcher, act *Action) error {
	if err := validateClampedNumber(act, effects.IDVolume, effects.ParamVolume); err != nil {
		return err
	}
	return validateAnimationFields(act)
}

func applyVolume(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	target, _ := numberParam(act.Parameters, effects.ParamVolume)
	desc, err := effects.Describe(effects.IDVolume)
	if err != nil {
		return err
	}
	prior := desc.Parameters[0].Neutral
	if v, ok := clip.Transform.FilterValue(effects.IDVolume); ok {
		prior = v
	}
	clip.Transform.SetFilter(effects.IDVolume, target)
	return d.placeTransformParams(ctx, clip, act, effects.IDVolume,
		paramChange{effects.ParamVolume, prior, target})
}

func validateSpeed(_ *Dispatcher, act *Action) error {
	return validateClampedNumber(act, effects.IDPlaybackSpeed, effects.ParamRate)
}

func applySpeed(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	rate, _ := numberParam(act.Parameters, effects.ParamRate)
	entry := clip.FindEffectByEffectID(effects.IDPlaybackSpeed)
	if rate == 1 {
		if entry == nil {
			return nil
		}
		return d.surface.RemoveEffect(ctx, host.ComponentRef{ClipID: clip.ID, EntryID: entry.ID})
	}
	var ref host.ComponentRef
	if entry == nil {
		var err error
		ref, err = d.surface.AppendEffect(ctx, clip.ID, effects.IDPlaybackSpeed)
		if err != nil {
			return err
		}
	} else {
		entry.Enabled = true
		ref = host.ComponentRef{ClipID: clip.ID, EntryID: entry.ID}
	}
	param, err := d.surface.ResolveParameter(ctx, ref, effects.ParamRate)
	if err != nil {
		return err
	}
	return d.surface.SetStaticValue(ctx, param, rate)
}

func validateCut(_ *Dispatcher, act *Action) error {
	value, ok := numberParam(act.Parameters, "time")
	if !ok {
		return requiredParam(act.Tag, "time")
	}
	if value < 0 {
		return invalidParam(act.Tag, "time", "must not be negative")
	}
	act.Parameters["time"] = value
	return nil
}

func applyCut(_ context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	cutAt, _ := numberParam(act.Parameters, "time")
	if cutAt <= clip.TimelineStart || cutAt >= clip.TimelineEnd() {
		return fmt.Errorf("clip %s: cut time %.3fs falls outside [%.3fs, %.3fs]",
			clip.ID, cutAt, clip.TimelineStart, clip.TimelineEnd())
	}
	offset := cutAt - clip.TimelineStart

	second := clip.Clone()
	second.ID = uuid.NewString()
	second.SourceStart = clip.SourceStart + offset
	second.TimelineStart = cutAt
	clip.SourceEnd = clip.SourceStart + offset

	_, track := d.project.FindClip(clip.ID)
	if track == nil {
		return fmt.Errorf("clip %s: %w", clip.ID, host.ErrClipNotFound)
	}
	track.AddClip(second)
	return nil
}

func validateTrim(_ *Dispatcher, act *Action) error {
	head, headOK := numberParam(act.Parameters, "start")
	tail, tailOK := numberParam(act.Parameters, "end")
	if !headOK && !tailOK {
		return invalidParam(act.Tag, "start", "or \"end\" is required")
	}
	if headOK && head < 0 {
		return invalidParam(act.Tag, "start", "must not be negative")
	}
	if tailOK && tail < 0 {
		return invalidParam(act.Tag, "end", "must not be negative")
	}
	return nil
}

// applyTrim removes seconds from the head and tail of each clip. Trimming the
// head keeps the remaining content anchored where it played before, so the
// clip starts later on the timeline rather than shifting earlier.
func applyTrim(_ context.Context, _ *Dispatcher, clip *timeline.Clip, act Action) error {
	head := numberOr(act.Parameters, "start", 0)
	tail := numberOr(act.Parameters, "end", 0)
	if head+tail >= clip.Duration() {
		return fmt.Errorf("clip %s: trimming %.3fs would remove the whole %.3fs clip",
			clip.ID, head+tail, clip.Duration())
	}
	clip.SourceStart += head
	clip.TimelineStart += head
	clip.SourceEnd -= tail
	return nil
}

func applyDeleteClip(_ context.Context, d *Dispatcher, clip *timeline.Clip, _ Action) error {
	_, track := d.project.FindClip(clip.ID)
	if track == nil {
		return fmt.Errorf("clip %s: %w", clip.ID, host.ErrClipNotFound)
	}
	track.RemoveClip(clip.ID)
	return nil
}

func validateApplyEffect(_ *Dispatcher, act *Action) error {
	key, ok := stringParam(act.Parameters, "effect")
	if !ok || strings.TrimSpace(key) == "" {
		return requiredParam(act.Tag, "effect")
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if !effects.Known(key) {
		return invalidParam(act.Tag, "effect", fmt.Sprintf("unknown effect %q", key))
	}
	act.Parameters["effect"] = key
	return nil
}

func applyApplyEffect(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	effectID, _ := stringParam(act.Parameters, "effect")
	desc, err := effects.Describe(effectID)
	if err != nil {
		return err
	}
	supplied := collectEffectParams(desc, act.Parameters)

	var ref host.ComponentRef
	if transformsync.Mappable(effectID) {
		// Transform-backed effects share their single reserved entry instead
		// of stacking duplicates.
		entry, err := transformsync.Ensure(clip, effectID)
		if err != nil {
			return err
		}
		if len(supplied) == 0 {
			for _, param := range desc.Parameters {
				supplied[param.Name] = param.Default
			}
		}
		ref = host.ComponentRef{ClipID: clip.ID, EntryID: entry.ID}
	} else {
		ref, err = d.surface.AppendEffect(ctx, clip.ID, effectID)
		if err != nil {
			return err
		}
	}
	if len(supplied) == 0 {
		return nil
	}
	return d.surface.Tx(ctx, func(tx host.Tx) error {
		for _, param := range desc.Parameters {
			value, ok := supplied[param.Name]
			if !ok {
				continue
			}
			p, err := d.surface.ResolveParameter(ctx, ref, param.Name)
			if err != nil {
				return err
			}
			if err := tx.SetStaticValue(p, effects.Clamp(param, value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func validateEffectRef(_ *Dispatcher, act *Action) error {
	key, ok := stringParam(act.Parameters, "effect")
	if !ok || strings.TrimSpace(key) == "" {
		return requiredParam(act.Tag, "effect")
	}
	if raw, exists := act.Parameters["enabled"]; exists {
		if _, ok := raw.(bool); !ok {
			return invalidParam(act.Tag, "enabled", "must be a boolean")
		}
	}
	act.Parameters["effect"] = strings.TrimSpace(key)
	return nil
}

// findEffectEntry resolves an action's "effect" key against a clip: an entry
// ID first, then the reserved entry for an effect ID, then the first entry
// referencing the effect ID.
func findEffectEntry(clip *timeline.Clip, key string) *timeline.AppliedEffect {
	if entry := clip.FindEffect(key); entry != nil {
		return entry
	}
	if entry := clip.FindEffect(transformsync.BuiltinEntryID(key)); entry != nil {
		return entry
	}
	return clip.FindEffectByEffectID(key)
}

func applyRemoveEffect(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	key, _ := stringParam(act.Parameters, "effect")
	entry := findEffectEntry(clip, key)
	if entry == nil {
		return fmt.Errorf("clip %s: effect %q: %w", clip.ID, key, host.ErrComponentNotFound)
	}
	return d.surface.RemoveEffect(ctx, host.ComponentRef{ClipID: clip.ID, EntryID: entry.ID})
}

func applyUpdateEffect(ctx context.Context, d *Dispatcher, clip *timeline.Clip, act Action) error {
	key, _ := stringParam(act.Parameters, "effect")
	entry := findEffectEntry(clip, key)
	if entry == nil {
		return fmt.Errorf("clip %s: effect %q: %w", clip.ID, key, host.ErrComponentNotFound)
	}
	desc, err := effects.Describe(entry.EffectID)
	if err != nil {
		return err
	}
	supplied := collectEffectParams(desc, act.Parameters)
	enabled, hasEnabled := boolParam(act.Parameters, "enabled")
	if len(supplied) == 0 && !hasEnabled {
		return fmt.Errorf("clip %s: effect %q: no parameter updates supplied", clip.ID, key)
	}
	if len(supplied) > 0 {
		ref := host.ComponentRef{ClipID: clip.ID, EntryID: entry.ID}
		err := d.surface.Tx(ctx, func(tx host.Tx) error {
			for _, param := range desc.Parameters {
				value, ok := supplied[param.Name]
				if !ok {
					continue
				}
				p, err := d.surface.ResolveParameter(ctx, ref, param.Name)
				if err != nil {
					return err
				}
				if err := tx.SetStaticValue(p, effects.Clamp(param, value)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	if hasEnabled {
		entry.Enabled = enabled
	}
	return nil
}

func applyToggleEffect(_ context.Context, _ *Dispatcher, clip *timeline.Clip, act Action) error {
	key, _ := stringParam(act.Parameters, "effect")
	entry := findEffectEntry(clip, key)
	if entry == nil {
		return fmt.Errorf("clip %s: effect %q: %w", clip.ID, key, host.ErrComponentNotFound)
	}
	if enabled, ok := boolParam(act.Parameters, "enabled"); ok {
		entry.Enabled = enabled
	} else {
		entry.Enabled = !entry.Enabled
	}
	return nil
}

// applyReset returns the transform to defaults and drops every reserved entry,
// including disabled and keyframed ones. User-applied entries survive.
func applyReset(_ context.Context, _ *Dispatcher, clip *timeline.Clip, _ Action) error {
	clip.Transform = timeline.DefaultTransform()
	for _, entry := range append([]*timeline.AppliedEffect(nil), clip.Effects...) {
		if _, ok := transformsync.BuiltinField(entry.ID); ok {
			clip.RemoveEffect(entry.ID)
		}
	}
	return nil
}

func collectEffectParams(desc effects.Descriptor, params map[string]any) map[string]float64 {
	supplied := make(map[string]float64)
	for _, param := range desc.Parameters {
		if value, ok := numberParam(params, param.Name); ok {
			supplied[param.Name] = value
		}
	}
	return supplied
}
