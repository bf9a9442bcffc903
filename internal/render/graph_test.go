package render

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"splice/internal/effects"
	"splice/internal/timeline"
)

func videoClip(name string, start, duration float64) *timeline.Clip {
	return &timeline.Clip{
		ID:            uuid.NewString(),
		Name:          name,
		MediaType:     timeline.MediaVideo,
		SourcePath:    "/media/" + name,
		SourceEnd:     duration,
		TimelineStart: start,
		Transform:     timeline.DefaultTransform(),
	}
}

func withEffect(clip *timeline.Clip, effectID string, params map[string]float64) *timeline.Clip {
	clip.Effects = append(clip.Effects, &timeline.AppliedEffect{
		ID:         uuid.NewString(),
		EffectID:   effectID,
		Parameters: params,
		Enabled:    true,
	})
	return clip
}

func requireScript(t *testing.T, graph *Graph, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(graph.Script, want) {
			t.Fatalf("script missing %q:\n%s", want, graph.Script)
		}
	}
}

func TestBuildGraphSingleClip(t *testing.T) {
	project := timeline.NewProject("Demo")
	project.TrackFor(timeline.TrackVideo).AddClip(videoClip("surf.mp4", 0, 12.5))

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	if len(graph.Inputs) != 1 || graph.Inputs[0].Path != "/media/surf.mp4" {
		t.Fatalf("unexpected inputs: %+v", graph.Inputs)
	}
	if graph.VideoLabel != "v0" || graph.AudioLabel != "a0" {
		t.Fatalf("unexpected labels %q/%q", graph.VideoLabel, graph.AudioLabel)
	}
	if graph.Duration != 12.5 {
		t.Fatalf("expected duration 12.5, got %v", graph.Duration)
	}
	requireScript(t, graph,
		"[0:v]trim=start=0:end=12.5",
		"fps=30",
		"scale=w=1920:h=1080:force_original_aspect_ratio=decrease",
		"pad=1920:1080:(ow-iw)/2:(oh-ih)/2",
		"format=yuv420p[v0]",
		"[0:a]atrim=start=0:end=12.5",
		"apad=whole_dur=12.5[a0]",
	)
}

func TestBuildGraphConcatsClips(t *testing.T) {
	project := timeline.NewProject("Demo")
	track := project.TrackFor(timeline.TrackVideo)
	track.AddClip(videoClip("one.mp4", 0, 10))
	track.AddClip(videoClip("two.mp4", 10, 8))

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	if graph.Duration != 18 {
		t.Fatalf("expected duration 18, got %v", graph.Duration)
	}
	if graph.VideoLabel != "vx1" || graph.AudioLabel != "ax1" {
		t.Fatalf("unexpected labels %q/%q", graph.VideoLabel, graph.AudioLabel)
	}
	requireScript(t, graph,
		"[v0][v1]concat=n=2:v=1:a=0[vx1]",
		"[a0][a1]concat=n=2:v=0:a=1[ax1]",
	)
}

func TestBuildGraphCrossDissolveShortensProgram(t *testing.T) {
	project := timeline.NewProject("Demo")
	track := project.TrackFor(timeline.TrackVideo)
	track.AddClip(videoClip("one.mp4", 0, 10))
	track.AddClip(withEffect(videoClip("two.mp4", 10, 8), effects.IDCrossDissolve,
		map[string]float64{effects.ParamDuration: 1}))

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	if graph.Duration != 17 {
		t.Fatalf("expected overlapped duration 17, got %v", graph.Duration)
	}
	requireScript(t, graph,
		"xfade=transition=fade:duration=1:offset=9[vx1]",
		"acrossfade=d=1[ax1]",
	)
}

func TestBuildGraphStillImageSynthesizesSilence(t *testing.T) {
	project := timeline.NewProject("Demo")
	clip := videoClip("vacation.png", 0, 5)
	clip.MediaType = timeline.MediaImage
	project.TrackFor(timeline.TrackVideo).AddClip(clip)

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	if !graph.Inputs[0].Image || graph.Inputs[0].Duration != 5 {
		t.Fatalf("expected looped 5s image input, got %+v", graph.Inputs[0])
	}
	if strings.Contains(graph.Script, "[0:v]trim=") {
		t.Fatalf("image chain should not trim the looped source:\n%s", graph.Script)
	}
	requireScript(t, graph, "aevalsrc=0:d=5:s=48000")
}

func TestBuildGraphCompositesNonDefaultTransform(t *testing.T) {
	project := timeline.NewProject("Demo")
	clip := videoClip("pip.mp4", 0, 10)
	clip.Transform.Scale = 50
	clip.Transform.PositionX = 10
	clip.Transform.Opacity = 80
	project.TrackFor(timeline.TrackVideo).AddClip(clip)

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	requireScript(t, graph,
		"color=c=black:s=1920x1080:r=30:d=10[b0]",
		"scale=w=960:h=540:force_original_aspect_ratio=decrease",
		"format=yuva420p",
		"colorchannelmixer=aa=0.8",
		"[b0][c0]overlay=x=(main_w-overlay_w)/2+192:y=(main_h-overlay_h)/2:shortest=1",
	)
}

func TestBuildGraphRotationExpandsCanvas(t *testing.T) {
	project := timeline.NewProject("Demo")
	clip := videoClip("tilt.mp4", 0, 4)
	clip.Transform.Rotation = 45
	project.TrackFor(timeline.TrackVideo).AddClip(clip)

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	requireScript(t, graph, "rotate=a=45*PI/180:ow=rotw(a):oh=roth(a):c=none")
}

func TestBuildGraphMixesAudioTrackClips(t *testing.T) {
	project := timeline.NewProject("Demo")
	project.TrackFor(timeline.TrackVideo).AddClip(videoClip("main.mp4", 0, 10))

	song := videoClip("song.mp3", 2, 6)
	song.MediaType = timeline.MediaAudio
	project.TrackFor(timeline.TrackAudio).AddClip(song)

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	if len(graph.Inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(graph.Inputs))
	}
	if graph.AudioLabel != "aout" {
		t.Fatalf("expected mixed audio label, got %q", graph.AudioLabel)
	}
	requireScript(t, graph,
		"adelay=2000:all=1",
		"amix=inputs=2:duration=first:normalize=0[aout]",
	)
}

func TestBuildGraphSkipsMutedAudioTracks(t *testing.T) {
	project := timeline.NewProject("Demo")
	project.TrackFor(timeline.TrackVideo).AddClip(videoClip("main.mp4", 0, 10))

	song := videoClip("song.mp3", 0, 6)
	song.MediaType = timeline.MediaAudio
	audioTrack := project.TrackFor(timeline.TrackAudio)
	audioTrack.AddClip(song)
	audioTrack.Muted = true

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	if graph.AudioLabel != "a0" {
		t.Fatalf("muted track should not join the mix, got label %q", graph.AudioLabel)
	}
	if strings.Contains(graph.Script, "amix") {
		t.Fatalf("muted track should not be mixed:\n%s", graph.Script)
	}
}

func TestBuildGraphSilencesMutedProgramAudio(t *testing.T) {
	project := timeline.NewProject("Demo")
	track := project.TrackFor(timeline.TrackVideo)
	track.AddClip(videoClip("main.mp4", 0, 10))
	track.Muted = true

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	requireScript(t, graph, "aevalsrc=0:d=10:s=48000")
	if strings.Contains(graph.Script, "[0:a]") {
		t.Fatalf("muted program should not read source audio:\n%s", graph.Script)
	}
}

func TestBuildGraphUsesProbedAudioAbsence(t *testing.T) {
	project := timeline.NewProject("Demo")
	project.TrackFor(timeline.TrackVideo).AddClip(videoClip("silent.mp4", 0, 10))

	sources := map[string]SourceInfo{"/media/silent.mp4": {HasAudio: false}}
	graph, err := BuildGraph(project, sources)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	requireScript(t, graph, "aevalsrc=0:d=10:s=48000")
}

func TestBuildGraphPlaybackSpeed(t *testing.T) {
	project := timeline.NewProject("Demo")
	clip := withEffect(videoClip("chase.mp4", 0, 10), effects.IDPlaybackSpeed,
		map[string]float64{effects.ParamRate: 2})
	project.TrackFor(timeline.TrackVideo).AddClip(clip)

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	if graph.Duration != 5 {
		t.Fatalf("expected sped-up duration 5, got %v", graph.Duration)
	}
	requireScript(t, graph, "setpts=PTS/2", "atempo=2", "apad=whole_dur=5")
}

func TestBuildGraphSkipsHiddenVideoTrack(t *testing.T) {
	project := timeline.NewProject("Demo")
	hidden := project.TrackFor(timeline.TrackVideo)
	hidden.AddClip(videoClip("draft.mp4", 0, 10))
	hidden.Hidden = true
	visible := &timeline.Track{ID: uuid.NewString(), Kind: timeline.TrackVideo, Name: "Video 2"}
	visible.AddClip(videoClip("final.mp4", 0, 8))
	project.Tracks = append(project.Tracks, visible)

	graph, err := BuildGraph(project, nil)
	if err != nil {
		t.Fatalf("BuildGraph returned error: %v", err)
	}
	if len(graph.Inputs) != 1 || graph.Inputs[0].Path != "/media/final.mp4" {
		t.Fatalf("expected only the visible track to render, got %+v", graph.Inputs)
	}
}

func TestBuildGraphRejectsEmptyTimeline(t *testing.T) {
	if _, err := BuildGraph(nil, nil); err == nil {
		t.Fatal("expected error for nil project")
	}
	_, err := BuildGraph(timeline.NewProject("Empty"), nil)
	if err == nil || !strings.Contains(err.Error(), "no video clips") {
		t.Fatalf("expected no-video-clips error, got %v", err)
	}
}
