package host

import (
	"context"
	"strings"

	"splice/internal/timeline"
)

// ComponentRef addresses one parameter-bearing component on a clip: an applied
// effect entry, or a built-in entry materialized by the transform
// synchronizer. EntryID takes precedence when set; otherwise the first entry
// whose registry effect ID matches EffectID is used.
type ComponentRef struct {
	ClipID   string
	EffectID string
	EntryID  string
}

func (r ComponentRef) String() string {
	parts := make([]string, 0, 3)
	if r.ClipID != "" {
		parts = append(parts, "clip "+r.ClipID)
	}
	if r.EffectID != "" {
		parts = append(parts, "effect "+r.EffectID)
	}
	if r.EntryID != "" {
		parts = append(parts, "entry "+r.EntryID)
	}
	if len(parts) == 0 {
		return "unaddressed component"
	}
	return strings.Join(parts, " ")
}

// ParameterRef is a resolved handle to one scalar parameter on a component.
// Handles come from ResolveParameter and stay valid until the entry they point
// at is removed.
type ParameterRef struct {
	ClipID  string
	EntryID string
	Name    string
}

func (p ParameterRef) String() string {
	return "clip " + p.ClipID + " entry " + p.EntryID + " parameter " + p.Name
}

// State reports everything needed to capture or later restore one parameter:
// its static value, its keyframes if any, and whether it currently animates.
type State struct {
	StaticValue float64
	Keyframes   []timeline.Keyframe
	TimeVarying bool
}

// Tx stages parameter writes that are applied together when the transaction
// function returns nil. A rejected operation leaves the surface untouched, so
// a parameter is never left with half of an animation placed.
type Tx interface {
	SetTimeVarying(p ParameterRef, animated bool) error
	AddKeyframe(p ParameterRef, kf timeline.Keyframe) error
	ClearKeyframes(p ParameterRef) error
	SetStaticValue(p ParameterRef, value float64) error
}

// Host is the capability surface the edit engine runs against.
type Host interface {
	ResolveParameter(ctx context.Context, ref ComponentRef, name string) (ParameterRef, error)
	ParameterState(ctx context.Context, p ParameterRef) (State, error)
	SetTimeVarying(ctx context.Context, p ParameterRef, animated bool) error
	AddKeyframe(ctx context.Context, p ParameterRef, kf timeline.Keyframe) error
	ClearKeyframes(ctx context.Context, p ParameterRef) error
	SetStaticValue(ctx context.Context, p ParameterRef, value float64) error
	AppendEffect(ctx context.Context, clipID, effectID string) (ComponentRef, error)
	RemoveEffect(ctx context.Context, ref ComponentRef) error
	Tx(ctx context.Context, fn func(Tx) error) error
}
