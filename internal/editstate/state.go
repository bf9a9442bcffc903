package editstate

import (
	"context"

	"splice/internal/host"
	"splice/internal/timeline"
)

// ParameterState is the uniform undo record for one numeric parameter: the
// full keyframe list when animated, or just the static value. An empty
// keyframe list means the parameter was static.
type ParameterState struct {
	Keyframes   []timeline.Keyframe `json:"keyframes"`
	StaticValue float64             `json:"static_value"`
}

// Animated reports whether the captured parameter carried keyframes.
func (s ParameterState) Animated() bool {
	return len(s.Keyframes) > 0
}

// Clone returns an independent copy of the state.
func (s ParameterState) Clone() ParameterState {
	return ParameterState{
		Keyframes:   timeline.CloneKeyframes(s.Keyframes),
		StaticValue: s.StaticValue,
	}
}

// Equal compares two states by value.
func (s ParameterState) Equal(other ParameterState) bool {
	return s.StaticValue == other.StaticValue && timeline.KeyframesEqual(s.Keyframes, other.Keyframes)
}

// Capture reads the current state of a named parameter through the surface.
func Capture(ctx context.Context, surface host.Host, ref host.ComponentRef, name string) (ParameterState, error) {
	param, err := surface.ResolveParameter(ctx, ref, name)
	if err != nil {
		return ParameterState{}, err
	}
	current, err := surface.ParameterState(ctx, param)
	if err != nil {
		return ParameterState{}, err
	}
	return ParameterState{Keyframes: current.Keyframes, StaticValue: current.StaticValue}, nil
}

// Restore re-establishes a captured state: all current keyframes are cleared,
// then either the exact prior keyframe list is replayed or the prior static
// value is pinned with animation disabled. The writes run in one transaction
// so a failed restore leaves the current state in place.
func Restore(ctx context.Context, surface host.Host, ref host.ComponentRef, name string, state ParameterState) error {
	param, err := surface.ResolveParameter(ctx, ref, name)
	if err != nil {
		return err
	}
	return surface.Tx(ctx, func(tx host.Tx) error {
		if err := tx.ClearKeyframes(param); err != nil {
			return err
		}
		if !state.Animated() {
			if err := tx.SetTimeVarying(param, false); err != nil {
				return err
			}
			return tx.SetStaticValue(param, state.StaticValue)
		}
		if err := tx.SetTimeVarying(param, true); err != nil {
			return err
		}
		for _, kf := range state.Keyframes {
			if err := tx.AddKeyframe(param, kf); err != nil {
				return err
			}
		}
		return tx.SetStaticValue(param, state.StaticValue)
	})
}
