package dispatch

import (
	"fmt"

	"splice/internal/effects"
	"splice/internal/transformsync"
)

// Tag names one supported edit.
type Tag string

const (
	TagZoom         Tag = "zoom"
	TagPosition     Tag = "position"
	TagRotation     Tag = "rotation"
	TagOpacity      Tag = "opacity"
	TagFilter       Tag = "filter"
	TagVolume       Tag = "volume"
	TagSpeed        Tag = "speed"
	TagCut          Tag = "cut"
	TagTrim         Tag = "trim"
	TagDeleteClip   Tag = "delete_clip"
	TagApplyEffect  Tag = "apply_effect"
	TagRemoveEffect Tag = "remove_effect"
	TagUpdateEffect Tag = "update_effect"
	TagToggleEffect Tag = "toggle_effect"
	TagReset        Tag = "reset"
)

// Action is one requested edit: a tag, the clips it targets, and the
// tag-specific parameters. An empty target list addresses every clip on the
// timeline. Message carries optional free text from the interpretation layer
// for display; the engine never acts on it.
type Action struct {
	Tag        Tag            `json:"action"`
	ClipIDs    []string       `json:"clip_ids,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// Describe renders a short human-readable summary of the action, used as the
// history entry description.
func Describe(act Action) string {
	p := act.Parameters
	switch act.Tag {
	case TagZoom:
		if v, ok := numberParam(p, effects.ParamScale); ok {
			return fmt.Sprintf("Zoom to %g%%", v)
		}
		return "Zoom"
	case TagPosition:
		x, _ := numberParam(p, "x")
		y, _ := numberParam(p, "y")
		return fmt.Sprintf("Move to (%g, %g)", x, y)
	case TagRotation:
		if v, ok := numberParam(p, effects.ParamDegrees); ok {
			return fmt.Sprintf("Rotate to %g°", v)
		}
		return "Rotate"
	case TagOpacity:
		if v, ok := numberParam(p, effects.ParamOpacity); ok {
			return fmt.Sprintf("Set opacity to %g%%", v)
		}
		return "Set opacity"
	case TagFilter:
		name, _ := stringParam(p, "filter")
		if v, ok := numberParam(p, "value"); ok {
			return fmt.Sprintf("Set %s to %g", effects.DisplayName(name), v)
		}
		return "Set " + effects.DisplayName(name)
	case TagVolume:
		if v, ok := numberParam(p, effects.ParamVolume); ok {
			return fmt.Sprintf("Set volume to %g%%", v)
		}
		return "Set volume"
	case TagSpeed:
		if v, ok := numberParam(p, effects.ParamRate); ok {
			return fmt.Sprintf("Set playback speed to %gx", v)
		}
		return "Set playback speed"
	case TagCut:
		if v, ok := numberParam(p, "time"); ok {
			return fmt.Sprintf("Cut at %gs", v)
		}
		return "Cut"
	case TagTrim:
		return "Trim clip"
	case TagDeleteClip:
		return "Delete clip"
	case TagApplyEffect:
		return "Apply " + describeEffectTarget(p)
	case TagRemoveEffect:
		return "Remove " + describeEffectTarget(p)
	case TagUpdateEffect:
		return "Update " + describeEffectTarget(p)
	case TagToggleEffect:
		return "Toggle " + describeEffectTarget(p)
	case TagReset:
		return "Reset transform"
	}
	return string(act.Tag)
}

func describeEffectTarget(p map[string]any) string {
	key, _ := stringParam(p, "effect")
	if effects.Known(key) {
		return effects.DisplayName(key)
	}
	if field, ok := transformsync.BuiltinField(key); ok && effects.Known(field) {
		return effects.DisplayName(field)
	}
	return "effect"
}

// numberParam reads a numeric parameter, accepting the numeric shapes JSON
// decoding and flag parsing produce.
func numberParam(p map[string]any, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func numberOr(p map[string]any, key string, fallback float64) float64 {
	if v, ok := numberParam(p, key); ok {
		return v
	}
	return fallback
}

func stringParam(p map[string]any, key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

func boolParam(p map[string]any, key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

func boolOr(p map[string]any, key string, fallback bool) bool {
	if v, ok := boolParam(p, key); ok {
		return v
	}
	return fallback
}

func cloneParams(p map[string]any) map[string]any {
	out := make(map[string]any, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}
