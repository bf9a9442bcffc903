package keyframe_test

import (
	"context"
	"errors"
	"testing"

	"splice/internal/host"
	"splice/internal/keyframe"
	"splice/internal/timeline"
)

// fixture returns a surface with one 8 second clip placed at 4s, carrying a
// scale effect entry at its default value.
func fixture(t *testing.T) (*host.Memory, *timeline.Clip, *timeline.AppliedEffect) {
	t.Helper()
	project := timeline.NewProject("Ramp Tests")
	clip := &timeline.Clip{
		ID:            "clip-1",
		Name:          "drone.mp4",
		MediaType:     timeline.MediaVideo,
		SourcePath:    "/media/drone.mp4",
		SourceStart:   10,
		SourceEnd:     18,
		TimelineStart: 4,
		Transform:     timeline.DefaultTransform(),
	}
	project.TrackFor(timeline.TrackVideo).AddClip(clip)
	surface := host.NewMemory(project)
	ref, err := surface.AppendEffect(context.Background(), clip.ID, "scale")
	if err != nil {
		t.Fatalf("AppendEffect: %v", err)
	}
	return surface, clip, clip.FindEffect(ref.EntryID)
}

func TestStaticPlacementClearsPriorAnimation(t *testing.T) {
	surface, clip, entry := fixture(t)
	entry.SetParameterKeyframes("scale", []timeline.Keyframe{
		{Time: 4, Value: 100, Interpolation: timeline.InterpLinear},
		{Time: 8, Value: 200, Interpolation: timeline.InterpLinear},
	})

	resolver := keyframe.NewResolver(surface, nil)
	err := resolver.Apply(context.Background(), clip, keyframe.Request{
		Component: host.ComponentRef{EffectID: "scale"},
		Parameter: "scale",
		EndValue:  150,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if kfs := entry.ParameterKeyframes("scale"); len(kfs) != 0 {
		t.Fatalf("keyframes survived static placement: %+v", kfs)
	}
	if got, _ := entry.Parameter("scale"); got != 150 {
		t.Errorf("scale = %v, want 150", got)
	}
}

func TestAnimatedPlacementSpansClipByDefault(t *testing.T) {
	surface, clip, entry := fixture(t)

	resolver := keyframe.NewResolver(surface, nil)
	err := resolver.Apply(context.Background(), clip, keyframe.Request{
		Component:  host.ComponentRef{EffectID: "scale"},
		Parameter:  "scale",
		StartValue: 100,
		EndValue:   150,
		Animated:   true,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	kfs := entry.ParameterKeyframes("scale")
	if len(kfs) != 2 {
		t.Fatalf("keyframe count = %d, want 2", len(kfs))
	}
	if kfs[0].Time != clip.TimelineStart || kfs[0].Value != 100 {
		t.Errorf("first keyframe = %+v, want value 100 at %.1fs", kfs[0], clip.TimelineStart)
	}
	if kfs[1].Time != clip.TimelineEnd() || kfs[1].Value != 150 {
		t.Errorf("second keyframe = %+v, want value 150 at %.1fs", kfs[1], clip.TimelineEnd())
	}
	for i, kf := range kfs {
		if kf.Interpolation != timeline.InterpBezier {
			t.Errorf("keyframe %d interpolation = %q, want bezier default", i, kf.Interpolation)
		}
	}
	if got, _ := entry.Parameter("scale"); got != 150 {
		t.Errorf("resting value = %v, want 150", got)
	}
}

func TestAnimatedPlacementHonorsWindowAndCurve(t *testing.T) {
	surface, clip, entry := fixture(t)

	resolver := keyframe.NewResolver(surface, nil)
	err := resolver.Apply(context.Background(), clip, keyframe.Request{
		Component:     host.ComponentRef{EffectID: "scale"},
		Parameter:     "scale",
		StartValue:    100,
		EndValue:      300,
		StartTime:     1,
		Duration:      2,
		Interpolation: timeline.Interpolation("EASE_IN"),
		Animated:      true,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	kfs := entry.ParameterKeyframes("scale")
	if len(kfs) != 2 {
		t.Fatalf("keyframe count = %d, want 2", len(kfs))
	}
	if kfs[0].Time != 5 || kfs[1].Time != 7 {
		t.Errorf("keyframe times = %.1f/%.1f, want 5.0/7.0", kfs[0].Time, kfs[1].Time)
	}
	for i, kf := range kfs {
		if kf.Interpolation != timeline.InterpEaseIn {
			t.Errorf("keyframe %d interpolation = %q, want ease-in", i, kf.Interpolation)
		}
	}
}

func TestEqualEndpointsCollapseToStatic(t *testing.T) {
	surface, clip, entry := fixture(t)

	resolver := keyframe.NewResolver(surface, nil)
	err := resolver.Apply(context.Background(), clip, keyframe.Request{
		Component:  host.ComponentRef{EffectID: "scale"},
		Parameter:  "scale",
		StartValue: 150,
		EndValue:   150,
		Animated:   true,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if kfs := entry.ParameterKeyframes("scale"); len(kfs) != 0 {
		t.Fatalf("equal endpoints placed keyframes: %+v", kfs)
	}
	if got, _ := entry.Parameter("scale"); got != 150 {
		t.Errorf("scale = %v, want 150", got)
	}
}

func TestApplyRejectsWindowPastClipEnd(t *testing.T) {
	surface, clip, _ := fixture(t)

	resolver := keyframe.NewResolver(surface, nil)
	err := resolver.Apply(context.Background(), clip, keyframe.Request{
		Component:  host.ComponentRef{EffectID: "scale"},
		Parameter:  "scale",
		StartValue: 100,
		EndValue:   150,
		StartTime:  9,
		Animated:   true,
	})
	if err == nil {
		t.Fatal("expected error for start past clip end")
	}
}

func TestApplyPropagatesUnresolvableParameter(t *testing.T) {
	surface, clip, _ := fixture(t)

	resolver := keyframe.NewResolver(surface, nil)
	err := resolver.Apply(context.Background(), clip, keyframe.Request{
		Component: host.ComponentRef{EffectID: "scale"},
		Parameter: "wobble",
		EndValue:  1,
	})
	if !errors.Is(err, host.ErrParameterNotFound) {
		t.Fatalf("error = %v, want ErrParameterNotFound", err)
	}
}

func TestFailedPlacementLeavesParameterUntouched(t *testing.T) {
	surface, clip, entry := fixture(t)
	surface.Fault = func(op, clipID string) error {
		if op == "add keyframe" {
			return errors.New("surface rejected keyframe")
		}
		return nil
	}

	resolver := keyframe.NewResolver(surface, nil)
	err := resolver.Apply(context.Background(), clip, keyframe.Request{
		Component:  host.ComponentRef{EffectID: "scale"},
		Parameter:  "scale",
		StartValue: 100,
		EndValue:   150,
		Animated:   true,
	})
	if err == nil {
		t.Fatal("expected placement failure")
	}
	if kfs := entry.ParameterKeyframes("scale"); len(kfs) != 0 {
		t.Fatalf("failed placement left keyframes behind: %+v", kfs)
	}
	if got, _ := entry.Parameter("scale"); got != 100 {
		t.Errorf("failed placement changed resting value to %v", got)
	}
}
