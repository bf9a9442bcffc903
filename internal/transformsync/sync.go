package transformsync

import (
	"fmt"
	"sort"
	"strings"

	"splice/internal/effects"
	"splice/internal/timeline"
)

// Reserved entry IDs use a stable "builtin:" prefix so the synchronizer can
// recognize its own entries across project loads. User-applied entries carry
// generated IDs and are never touched here.
const builtinPrefix = "builtin:"

// BuiltinEntryID returns the reserved effect-list entry ID for a
// transform-backed effect.
func BuiltinEntryID(effectID string) string {
	return builtinPrefix + effectID
}

// BuiltinField extracts the effect ID behind a reserved entry ID.
func BuiltinField(entryID string) (string, bool) {
	if !strings.HasPrefix(entryID, builtinPrefix) {
		return "", false
	}
	return strings.TrimPrefix(entryID, builtinPrefix), true
}

// Mappable reports whether an effect ID is kept in lockstep with the clip
// transform. The four core transform effects and every single-value filter
// qualify; multi-parameter and time-based effects (crop, transitions, playback
// speed) live only in the effect list.
func Mappable(effectID string) bool {
	switch effectID {
	case effects.IDScale, effects.IDPosition, effects.IDRotation, effects.IDOpacity:
		return true
	}
	desc, err := effects.Describe(effectID)
	if err != nil {
		return false
	}
	switch desc.Category {
	case effects.CategoryColor, effects.CategoryStylize, effects.CategoryAudio:
		return len(desc.Parameters) == 1
	}
	return false
}

// Apply pushes the clip's transform into its effect list. Entries for fields
// at their defaults are removed unless they are disabled (a stashed value the
// user may re-enable) or still carry keyframes (an animation resting at the
// default is not a no-op).
func Apply(clip *timeline.Clip) error {
	t := &clip.Transform
	syncScalar(clip, effects.IDScale, effects.ParamScale, t.Scale, timeline.DefaultScale)
	syncPosition(clip)
	syncScalar(clip, effects.IDRotation, effects.ParamDegrees, t.Rotation, 0)
	syncScalar(clip, effects.IDOpacity, effects.ParamOpacity, t.Opacity, timeline.DefaultOpacity)
	return syncFilters(clip)
}

// Absorb pulls the effect list back into the clip's transform. Disabled
// entries read as their field's default; missing entries mean the field sits
// at its default.
func Absorb(clip *timeline.Clip) error {
	t := &clip.Transform
	t.Scale = absorbScalar(clip, effects.IDScale, effects.ParamScale, timeline.DefaultScale)
	t.PositionX, t.PositionY = absorbPosition(clip)
	t.Rotation = absorbScalar(clip, effects.IDRotation, effects.ParamDegrees, 0)
	t.Opacity = absorbScalar(clip, effects.IDOpacity, effects.ParamOpacity, timeline.DefaultOpacity)
	return absorbFilters(clip)
}

// Ensure returns the reserved entry for a transform-backed effect, creating it
// from the current transform values when the field sits at its default and no
// entry exists yet. Animated edits use this so a ramp that ends at the default
// value still has an entry to carry its keyframes.
func Ensure(clip *timeline.Clip, effectID string) (*timeline.AppliedEffect, error) {
	if !Mappable(effectID) {
		return nil, fmt.Errorf("effect %q is not transform-backed", effectID)
	}
	if entry := clip.FindEffect(BuiltinEntryID(effectID)); entry != nil {
		entry.Enabled = true
		return entry, nil
	}
	params, err := builtinParams(&clip.Transform, effectID)
	if err != nil {
		return nil, err
	}
	entry := &timeline.AppliedEffect{
		ID:         BuiltinEntryID(effectID),
		EffectID:   effectID,
		Parameters: params,
		Enabled:    true,
	}
	clip.AppendEffect(entry)
	return entry, nil
}

func builtinParams(t *timeline.Transform, effectID string) (map[string]float64, error) {
	switch effectID {
	case effects.IDScale:
		return map[string]float64{effects.ParamScale: t.Scale}, nil
	case effects.IDPosition:
		return map[string]float64{effects.ParamPositionX: t.PositionX, effects.ParamPositionY: t.PositionY}, nil
	case effects.IDRotation:
		return map[string]float64{effects.ParamDegrees: t.Rotation}, nil
	case effects.IDOpacity:
		return map[string]float64{effects.ParamOpacity: t.Opacity}, nil
	}
	desc, err := effects.Describe(effectID)
	if err != nil {
		return nil, err
	}
	primary := desc.Parameters[0]
	value := primary.Neutral
	if v, ok := t.FilterValue(effectID); ok {
		value = v
	}
	return map[string]float64{primary.Name: value}, nil
}

func syncScalar(clip *timeline.Clip, effectID, param string, value, def float64) {
	entry := clip.FindEffect(BuiltinEntryID(effectID))
	if value == def {
		retireBuiltin(clip, entry, param, value)
		return
	}
	if entry == nil {
		entry = &timeline.AppliedEffect{ID: BuiltinEntryID(effectID), EffectID: effectID, Enabled: true}
		clip.AppendEffect(entry)
	}
	entry.Enabled = true
	entry.SetParameter(param, value)
}

func syncPosition(clip *timeline.Clip) {
	t := &clip.Transform
	entry := clip.FindEffect(BuiltinEntryID(effects.IDPosition))
	if t.PositionX == 0 && t.PositionY == 0 {
		if entry != nil && entry.Enabled {
			if len(entry.Keyframes) == 0 {
				clip.RemoveEffect(entry.ID)
				return
			}
			entry.SetParameter(effects.ParamPositionX, 0)
			entry.SetParameter(effects.ParamPositionY, 0)
		}
		return
	}
	if entry == nil {
		entry = &timeline.AppliedEffect{ID: BuiltinEntryID(effects.IDPosition), EffectID: effects.IDPosition, Enabled: true}
		clip.AppendEffect(entry)
	}
	entry.Enabled = true
	entry.SetParameter(effects.ParamPositionX, t.PositionX)
	entry.SetParameter(effects.ParamPositionY, t.PositionY)
}

func syncFilters(clip *timeline.Clip) error {
	t := &clip.Transform
	names := make([]string, 0, len(t.Filters))
	for name := range t.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		desc, err := effects.Describe(name)
		if err != nil {
			return fmt.Errorf("clip %s: filter %q: %w", clip.ID, name, err)
		}
		primary := desc.Parameters[0]
		value := t.Filters[name]
		entry := clip.FindEffect(BuiltinEntryID(name))
		if value == primary.Neutral {
			t.ClearFilter(name)
			retireBuiltin(clip, entry, primary.Name, value)
			continue
		}
		if entry == nil {
			entry = &timeline.AppliedEffect{ID: BuiltinEntryID(name), EffectID: name, Enabled: true}
			clip.AppendEffect(entry)
		}
		entry.Enabled = true
		entry.SetParameter(primary.Name, value)
	}

	// Reserved filter entries whose field left the map entirely.
	for _, entry := range builtinEntries(clip) {
		field, _ := BuiltinField(entry.ID)
		switch field {
		case effects.IDScale, effects.IDPosition, effects.IDRotation, effects.IDOpacity:
			continue
		}
		if _, active := t.Filters[field]; active {
			continue
		}
		if entry.Enabled && len(entry.Keyframes) == 0 {
			clip.RemoveEffect(entry.ID)
		}
	}
	return nil
}

// retireBuiltin handles an entry whose field returned to default: enabled
// static entries are dropped, keyframed entries keep their animation with the
// resting value updated, disabled entries stay as stashed state.
func retireBuiltin(clip *timeline.Clip, entry *timeline.AppliedEffect, param string, value float64) {
	if entry == nil || !entry.Enabled {
		return
	}
	if len(entry.Keyframes) == 0 {
		clip.RemoveEffect(entry.ID)
		return
	}
	entry.SetParameter(param, value)
}

func absorbScalar(clip *timeline.Clip, effectID, param string, def float64) float64 {
	entry := clip.FindEffect(BuiltinEntryID(effectID))
	if entry == nil || !entry.Enabled {
		return def
	}
	if value, ok := entry.Parameter(param); ok {
		return value
	}
	return def
}

func absorbPosition(clip *timeline.Clip) (float64, float64) {
	entry := clip.FindEffect(BuiltinEntryID(effects.IDPosition))
	if entry == nil || !entry.Enabled {
		return 0, 0
	}
	x, _ := entry.Parameter(effects.ParamPositionX)
	y, _ := entry.Parameter(effects.ParamPositionY)
	return x, y
}

func absorbFilters(clip *timeline.Clip) error {
	var filters map[string]float64
	for _, entry := range builtinEntries(clip) {
		field, _ := BuiltinField(entry.ID)
		switch field {
		case effects.IDScale, effects.IDPosition, effects.IDRotation, effects.IDOpacity:
			continue
		}
		if !entry.Enabled {
			continue
		}
		desc, err := effects.Describe(field)
		if err != nil {
			return fmt.Errorf("clip %s: filter %q: %w", clip.ID, field, err)
		}
		primary := desc.Parameters[0]
		value := primary.Neutral
		if v, ok := entry.Parameter(primary.Name); ok {
			value = v
		}
		if value == primary.Neutral {
			continue
		}
		if filters == nil {
			filters = make(map[string]float64)
		}
		filters[field] = value
	}
	clip.Transform.Filters = filters
	return nil
}

func builtinEntries(clip *timeline.Clip) []*timeline.AppliedEffect {
	var out []*timeline.AppliedEffect
	for _, entry := range clip.Effects {
		if _, ok := BuiltinField(entry.ID); ok {
			out = append(out, entry)
		}
	}
	return out
}
