package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"splice/internal/effects"
	"splice/internal/timeline"
)

// Exported audio is normalized before mixing so concat and crossfade inputs
// always agree on format.
const (
	audioSampleRate = 48000
	audioFormat     = "aformat=sample_fmts=fltp:sample_rates=48000:channel_layouts=stereo"
)

// SourceInfo records what a probed source file can feed the graph.
type SourceInfo struct {
	HasAudio bool
}

// Input is one -i argument of the assembled ffmpeg command, in order.
type Input struct {
	Path     string
	Image    bool
	Duration float64
}

// Graph is a fully assembled filter_complex script together with the inputs
// and final output labels it references.
type Graph struct {
	Inputs     []Input
	Script     string
	VideoLabel string
	AudioLabel string
	Duration   float64
}

type clipPlan struct {
	clip     *timeline.Clip
	input    int
	duration float64
	silent   bool
}

// BuildGraph assembles the filter graph for a project. Video comes from the
// first visible video track; clips are conformed to the project frame and
// joined end to end, with cross dissolves shortening the program by their
// overlap. Clips on audio tracks are delayed to their nominal timeline
// position and mixed on top of the program audio.
//
// sources maps a clip source path to what probing found there; paths missing
// from the map are assumed to carry audio unless the clip is a still image.
func BuildGraph(project *timeline.Project, sources map[string]SourceInfo) (*Graph, error) {
	if project == nil {
		return nil, errors.New("render: nil project")
	}
	videoTrack := programTrack(project)
	if videoTrack == nil || len(videoTrack.Clips) == 0 {
		return nil, errors.New("render: project has no video clips to render")
	}

	graph := &Graph{}
	var script []string

	plans := make([]clipPlan, 0, len(videoTrack.Clips))
	for _, clip := range videoTrack.Clips {
		plans = append(plans, graph.planClip(clip, videoTrack.Muted, sources))
	}

	for i, plan := range plans {
		script = append(script, videoChain(plan, project, i)...)
		script = append(script, audioChain(plan, i))
	}

	videoLabel := "v0"
	audioLabel := "a0"
	total := plans[0].duration
	for i := 1; i < len(plans); i++ {
		cur := plans[i]
		vOut := fmt.Sprintf("vx%d", i)
		aOut := fmt.Sprintf("ax%d", i)
		if d := dissolveDuration(cur.clip, total, cur.duration); d > 0 {
			script = append(script, fmt.Sprintf(
				"[%s][v%d]xfade=transition=fade:duration=%s:offset=%s[%s]",
				videoLabel, i, num(d), num(total-d), vOut))
			script = append(script, fmt.Sprintf(
				"[%s][a%d]acrossfade=d=%s[%s]", audioLabel, i, num(d), aOut))
			total += cur.duration - d
		} else {
			script = append(script, fmt.Sprintf(
				"[%s][v%d]concat=n=2:v=1:a=0[%s]", videoLabel, i, vOut))
			script = append(script, fmt.Sprintf(
				"[%s][a%d]concat=n=2:v=0:a=1[%s]", audioLabel, i, aOut))
			total += cur.duration
		}
		videoLabel, audioLabel = vOut, aOut
	}

	overlays := graph.overlayChains(project, sources, &script)
	if len(overlays) > 0 {
		mix := "[" + audioLabel + "][" + strings.Join(overlays, "][") + "]"
		script = append(script, fmt.Sprintf(
			"%samix=inputs=%d:duration=first:normalize=0[aout]", mix, len(overlays)+1))
		audioLabel = "aout"
	}

	graph.Script = strings.Join(script, ";")
	graph.VideoLabel = videoLabel
	graph.AudioLabel = audioLabel
	graph.Duration = total
	return graph, nil
}

// programTrack picks the video track the export plays: the first one that is
// not hidden.
func programTrack(project *timeline.Project) *timeline.Track {
	for _, track := range project.Tracks {
		if track.Kind == timeline.TrackVideo && !track.Hidden {
			return track
		}
	}
	return nil
}

func (g *Graph) planClip(clip *timeline.Clip, muted bool, sources map[string]SourceInfo) clipPlan {
	index := len(g.Inputs)
	g.Inputs = append(g.Inputs, Input{
		Path:     clip.SourcePath,
		Image:    clip.MediaType == timeline.MediaImage,
		Duration: clip.Duration(),
	})
	return clipPlan{
		clip:     clip,
		input:    index,
		duration: clip.Duration() / clipSpeed(clip),
		silent:   muted || !sourceHasAudio(clip, sources),
	}
}

func sourceHasAudio(clip *timeline.Clip, sources map[string]SourceInfo) bool {
	if clip.MediaType == timeline.MediaImage {
		return false
	}
	if info, ok := sources[clip.SourcePath]; ok {
		return info.HasAudio
	}
	return true
}

// videoChain conforms one clip to the project frame. A clip with a default
// transform gets the plain fit-and-pad chain; otherwise the clip is scaled,
// rotated, and faded to its transform and composited over black so it can
// sit anywhere, including partly off canvas.
func videoChain(plan clipPlan, project *timeline.Project, index int) []string {
	clip := plan.clip
	speed := clipSpeed(clip)

	var filters []string
	if clip.MediaType != timeline.MediaImage {
		filters = append(filters, fmt.Sprintf(
			"trim=start=%s:end=%s", num(clip.SourceStart), num(clip.SourceEnd)))
	}
	filters = append(filters, "setpts=PTS-STARTPTS")
	if speed != 1 {
		filters = append(filters, fmt.Sprintf("setpts=PTS/%s", num(speed)))
	}
	filters = append(filters, fmt.Sprintf("fps=%s", num(project.FrameRate)))

	transform := clip.Transform
	if defaultPlacement(transform) {
		filters = append(filters, fmt.Sprintf(
			"scale=w=%d:h=%d:force_original_aspect_ratio=decrease", project.Width, project.Height))
		filters = append(filters, fmt.Sprintf(
			"pad=%d:%d:(ow-iw)/2:(oh-ih)/2", project.Width, project.Height))
		filters = append(filters, clipVideoFilters(clip, plan.duration)...)
		filters = append(filters, "setsar=1", "format=yuv420p")
		return []string{fmt.Sprintf("[%d:v]%s[v%d]", plan.input, strings.Join(filters, ","), index)}
	}

	boxW := evenDim(float64(project.Width) * transform.Scale / 100)
	boxH := evenDim(float64(project.Height) * transform.Scale / 100)
	filters = append(filters, fmt.Sprintf(
		"scale=w=%d:h=%d:force_original_aspect_ratio=decrease", boxW, boxH))
	filters = append(filters, clipVideoFilters(clip, plan.duration)...)
	filters = append(filters, "format=yuva420p")
	if transform.Rotation != 0 {
		angle := num(transform.Rotation) + "*PI/180"
		filters = append(filters, fmt.Sprintf(
			"rotate=a=%s:ow=rotw(a):oh=roth(a):c=none", angle))
	}
	if transform.Opacity != timeline.DefaultOpacity {
		filters = append(filters, fmt.Sprintf("colorchannelmixer=aa=%s", num(transform.Opacity/100)))
	}

	base := fmt.Sprintf("color=c=black:s=%dx%d:r=%s:d=%s[b%d]",
		project.Width, project.Height, num(project.FrameRate), num(plan.duration), index)
	layer := fmt.Sprintf("[%d:v]%s[c%d]", plan.input, strings.Join(filters, ","), index)
	composite := fmt.Sprintf("[b%d][c%d]overlay=x=(main_w-overlay_w)/2%s:y=(main_h-overlay_h)/2%s:shortest=1,setsar=1,format=yuv420p[v%d]",
		index, index,
		signedOffset(float64(project.Width)*transform.PositionX/100),
		signedOffset(float64(project.Height)*transform.PositionY/100),
		index)
	return []string{base, layer, composite}
}

// audioChain produces one normalized audio segment per program clip. Silent
// clips synthesize stereo silence so concat inputs stay paired.
func audioChain(plan clipPlan, index int) string {
	if plan.silent {
		return fmt.Sprintf("aevalsrc=0:d=%s:s=%d,%s[a%d]",
			num(plan.duration), audioSampleRate, audioFormat, index)
	}

	clip := plan.clip
	filters := []string{
		fmt.Sprintf("atrim=start=%s:end=%s", num(clip.SourceStart), num(clip.SourceEnd)),
		"asetpts=PTS-STARTPTS",
	}
	filters = append(filters, atempoChain(clipSpeed(clip))...)
	filters = append(filters, clipAudioFilters(clip, plan.duration)...)
	filters = append(filters, audioFormat)
	filters = append(filters, fmt.Sprintf("apad=whole_dur=%s", num(plan.duration)))
	return fmt.Sprintf("[%d:a]%s[a%d]", plan.input, strings.Join(filters, ","), index)
}

// overlayChains plans every clip on unmuted audio tracks: trimmed, shifted to
// its timeline position with adelay, and returned as extra amix inputs.
func (g *Graph) overlayChains(project *timeline.Project, sources map[string]SourceInfo, script *[]string) []string {
	var labels []string
	for _, track := range project.Tracks {
		if track.Kind != timeline.TrackAudio || track.Muted {
			continue
		}
		for _, clip := range track.Clips {
			plan := g.planClip(clip, false, sources)
			if plan.silent {
				continue
			}
			label := fmt.Sprintf("o%d", len(labels))
			filters := []string{
				fmt.Sprintf("atrim=start=%s:end=%s", num(clip.SourceStart), num(clip.SourceEnd)),
				"asetpts=PTS-STARTPTS",
			}
			filters = append(filters, atempoChain(clipSpeed(clip))...)
			filters = append(filters, clipAudioFilters(clip, plan.duration)...)
			filters = append(filters, audioFormat)
			if ms := int(math.Round(clip.TimelineStart * 1000)); ms > 0 {
				filters = append(filters, fmt.Sprintf("adelay=%d:all=1", ms))
			}
			*script = append(*script, fmt.Sprintf("[%d:a]%s[%s]", plan.input, strings.Join(filters, ","), label))
			labels = append(labels, label)
		}
	}
	return labels
}

// dissolveDuration returns the effective cross dissolve length for a clip
// joining the program, clamped to what the neighbors can absorb.
func dissolveDuration(clip *timeline.Clip, programBefore, clipDuration float64) float64 {
	entry := enabledEntry(clip, effects.IDCrossDissolve)
	if entry == nil {
		return 0
	}
	desc, err := effects.Describe(effects.IDCrossDissolve)
	if err != nil {
		return 0
	}
	d := restingValue(entry, desc, effects.ParamDuration)
	if d <= 0 {
		return 0
	}
	if d > programBefore {
		d = programBefore
	}
	if d > clipDuration {
		d = clipDuration
	}
	return d
}

func defaultPlacement(t timeline.Transform) bool {
	return t.Scale == timeline.DefaultScale && t.PositionX == 0 && t.PositionY == 0 &&
		t.Rotation == 0 && t.Opacity == timeline.DefaultOpacity
}

// evenDim rounds a pixel dimension to the nearest even value, the minimum
// yuv420 chroma subsampling allows.
func evenDim(value float64) int {
	n := int(math.Round(value))
	if n < 2 {
		return 2
	}
	if n%2 != 0 {
		n++
	}
	return n
}

func signedOffset(value float64) string {
	if value == 0 {
		return ""
	}
	if value > 0 {
		return "+" + num(value)
	}
	return num(value)
}
