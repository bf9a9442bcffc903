package host_test

import (
	"context"
	"errors"
	"testing"

	"splice/internal/effects"
	"splice/internal/host"
	"splice/internal/timeline"
)

func newSurface(t *testing.T) (*host.Memory, *timeline.Clip) {
	t.Helper()
	project := timeline.NewProject("Beach Cut")
	clip := &timeline.Clip{
		ID:          "clip-1",
		Name:        "beach.mp4",
		MediaType:   timeline.MediaVideo,
		SourcePath:  "/media/beach.mp4",
		SourceStart: 0,
		SourceEnd:   8,
		Transform:   timeline.DefaultTransform(),
	}
	project.TrackFor(timeline.TrackVideo).AddClip(clip)
	return host.NewMemory(project), clip
}

func TestAppendEffectPopulatesDefaults(t *testing.T) {
	surface, clip := newSurface(t)
	ctx := context.Background()

	ref, err := surface.AppendEffect(ctx, clip.ID, "gaussian_blur")
	if err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}
	if ref.EntryID == "" {
		t.Fatal("expected entry ID on returned reference")
	}
	entry := clip.FindEffect(ref.EntryID)
	if entry == nil {
		t.Fatal("entry not attached to clip")
	}
	if !entry.Enabled {
		t.Error("new entry should be enabled")
	}
	if got, ok := entry.Parameter("sigma"); !ok || got != 5 {
		t.Errorf("sigma default = %v (present %v), want 5", got, ok)
	}
}

func TestAppendEffectRejectsUnknownID(t *testing.T) {
	surface, clip := newSurface(t)

	_, err := surface.AppendEffect(context.Background(), clip.ID, "lens_flare")
	if !errors.Is(err, effects.ErrUnknownEffect) {
		t.Fatalf("expected ErrUnknownEffect, got %v", err)
	}
	var opErr *host.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OpError, got %T", err)
	}
	if opErr.Op != "append effect" {
		t.Errorf("op = %q, want %q", opErr.Op, "append effect")
	}
	if len(clip.Effects) != 0 {
		t.Error("failed append must not attach an entry")
	}
}

func TestResolveParameterByEffectID(t *testing.T) {
	surface, clip := newSurface(t)
	ctx := context.Background()

	appended, err := surface.AppendEffect(ctx, clip.ID, "gaussian_blur")
	if err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}

	param, err := surface.ResolveParameter(ctx, host.ComponentRef{ClipID: clip.ID, EffectID: "gaussian_blur"}, "sigma")
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}
	if param.EntryID != appended.EntryID {
		t.Errorf("resolved entry %s, want %s", param.EntryID, appended.EntryID)
	}
	if param.Name != "sigma" {
		t.Errorf("resolved name %q, want sigma", param.Name)
	}
}

func TestResolveParameterFailures(t *testing.T) {
	surface, clip := newSurface(t)
	ctx := context.Background()
	if _, err := surface.AppendEffect(ctx, clip.ID, "gaussian_blur"); err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}

	tests := []struct {
		name string
		ref  host.ComponentRef
		prm  string
		want error
	}{
		{"missing clip", host.ComponentRef{ClipID: "clip-404", EffectID: "gaussian_blur"}, "sigma", host.ErrClipNotFound},
		{"missing component", host.ComponentRef{ClipID: clip.ID, EffectID: "sepia"}, "amount", host.ErrComponentNotFound},
		{"missing parameter", host.ComponentRef{ClipID: clip.ID, EffectID: "gaussian_blur"}, "radius", host.ErrParameterNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := surface.ResolveParameter(ctx, tc.ref, tc.prm)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParameterStateReflectsWrites(t *testing.T) {
	surface, clip := newSurface(t)
	ctx := context.Background()

	ref, err := surface.AppendEffect(ctx, clip.ID, effects.IDScale)
	if err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}
	param, err := surface.ResolveParameter(ctx, ref, "scale")
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}

	state, err := surface.ParameterState(ctx, param)
	if err != nil {
		t.Fatalf("ParameterState: %v", err)
	}
	if state.StaticValue != 100 || state.TimeVarying {
		t.Fatalf("fresh state = %+v, want static 100", state)
	}

	if err := surface.SetStaticValue(ctx, param, 150); err != nil {
		t.Fatalf("SetStaticValue: %v", err)
	}
	if err := surface.AddKeyframe(ctx, param, timeline.Keyframe{Time: 2, Value: 150, Interpolation: timeline.InterpBezier}); err != nil {
		t.Fatalf("AddKeyframe: %v", err)
	}
	if err := surface.AddKeyframe(ctx, param, timeline.Keyframe{Time: 0, Value: 100, Interpolation: timeline.InterpBezier}); err != nil {
		t.Fatalf("AddKeyframe: %v", err)
	}

	state, err = surface.ParameterState(ctx, param)
	if err != nil {
		t.Fatalf("ParameterState: %v", err)
	}
	if state.StaticValue != 150 {
		t.Errorf("static value = %v, want 150", state.StaticValue)
	}
	if !state.TimeVarying || len(state.Keyframes) != 2 {
		t.Fatalf("expected two keyframes, got %+v", state)
	}
	if state.Keyframes[0].Time != 0 || state.Keyframes[1].Time != 2 {
		t.Errorf("keyframes out of order: %+v", state.Keyframes)
	}

	if err := surface.ClearKeyframes(ctx, param); err != nil {
		t.Fatalf("ClearKeyframes: %v", err)
	}
	state, err = surface.ParameterState(ctx, param)
	if err != nil {
		t.Fatalf("ParameterState: %v", err)
	}
	if state.TimeVarying || len(state.Keyframes) != 0 {
		t.Errorf("keyframes survived clear: %+v", state)
	}
}

func TestSetTimeVaryingFalseDropsKeyframes(t *testing.T) {
	surface, clip := newSurface(t)
	ctx := context.Background()

	ref, err := surface.AppendEffect(ctx, clip.ID, effects.IDOpacity)
	if err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}
	param, err := surface.ResolveParameter(ctx, ref, "opacity")
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}
	if err := surface.AddKeyframe(ctx, param, timeline.Keyframe{Time: 1, Value: 50}); err != nil {
		t.Fatalf("AddKeyframe: %v", err)
	}

	if err := surface.SetTimeVarying(ctx, param, false); err != nil {
		t.Fatalf("SetTimeVarying: %v", err)
	}
	state, err := surface.ParameterState(ctx, param)
	if err != nil {
		t.Fatalf("ParameterState: %v", err)
	}
	if state.TimeVarying {
		t.Errorf("parameter still animated: %+v", state)
	}
}

func TestRemoveEffect(t *testing.T) {
	surface, clip := newSurface(t)
	ctx := context.Background()

	ref, err := surface.AppendEffect(ctx, clip.ID, "sepia")
	if err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}
	if err := surface.RemoveEffect(ctx, ref); err != nil {
		t.Fatalf("RemoveEffect: %v", err)
	}
	if len(clip.Effects) != 0 {
		t.Fatalf("expected empty effect list, got %d entries", len(clip.Effects))
	}
	if err := surface.RemoveEffect(ctx, ref); !errors.Is(err, host.ErrComponentNotFound) {
		t.Fatalf("second removal error = %v, want ErrComponentNotFound", err)
	}
}

func TestTxAppliesAllOrNothing(t *testing.T) {
	surface, clip := newSurface(t)
	ctx := context.Background()

	ref, err := surface.AppendEffect(ctx, clip.ID, effects.IDScale)
	if err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}
	param, err := surface.ResolveParameter(ctx, ref, "scale")
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}
	bogus := host.ParameterRef{ClipID: clip.ID, EntryID: ref.EntryID, Name: "radius"}

	err = surface.Tx(ctx, func(tx host.Tx) error {
		if err := tx.AddKeyframe(param, timeline.Keyframe{Time: 0, Value: 100}); err != nil {
			return err
		}
		return tx.SetStaticValue(bogus, 7)
	})
	if !errors.Is(err, host.ErrParameterNotFound) {
		t.Fatalf("transaction error = %v, want ErrParameterNotFound", err)
	}
	state, err := surface.ParameterState(ctx, param)
	if err != nil {
		t.Fatalf("ParameterState: %v", err)
	}
	if len(state.Keyframes) != 0 {
		t.Fatalf("failed transaction leaked a keyframe: %+v", state.Keyframes)
	}

	err = surface.Tx(ctx, func(tx host.Tx) error {
		if err := tx.SetTimeVarying(param, true); err != nil {
			return err
		}
		if err := tx.AddKeyframe(param, timeline.Keyframe{Time: 0, Value: 100, Interpolation: timeline.InterpBezier}); err != nil {
			return err
		}
		if err := tx.AddKeyframe(param, timeline.Keyframe{Time: 2, Value: 150, Interpolation: timeline.InterpBezier}); err != nil {
			return err
		}
		return tx.SetStaticValue(param, 150)
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	state, err = surface.ParameterState(ctx, param)
	if err != nil {
		t.Fatalf("ParameterState: %v", err)
	}
	if len(state.Keyframes) != 2 || state.StaticValue != 150 {
		t.Fatalf("committed state = %+v, want two keyframes and static 150", state)
	}
}

func TestFaultInjection(t *testing.T) {
	surface, clip := newSurface(t)
	ctx := context.Background()

	ref, err := surface.AppendEffect(ctx, clip.ID, effects.IDScale)
	if err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}
	param, err := surface.ResolveParameter(ctx, ref, "scale")
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}

	boom := errors.New("surface offline")
	surface.Fault = func(op, clipID string) error {
		if clipID == clip.ID {
			return boom
		}
		return nil
	}

	err = surface.SetStaticValue(ctx, param, 120)
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected fault, got %v", err)
	}
	var opErr *host.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OpError, got %T", err)
	}
	if opErr.Op != "set static value" {
		t.Errorf("op = %q, want %q", opErr.Op, "set static value")
	}

	surface.Fault = nil
	state, err := surface.ParameterState(ctx, param)
	if err != nil {
		t.Fatalf("ParameterState: %v", err)
	}
	if state.StaticValue != 100 {
		t.Errorf("faulted write landed: scale = %v", state.StaticValue)
	}
}

func TestContextCancellationStopsOperations(t *testing.T) {
	surface, clip := newSurface(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := surface.AppendEffect(ctx, clip.ID, "sepia"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := surface.Tx(ctx, func(host.Tx) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from Tx, got %v", err)
	}
}
