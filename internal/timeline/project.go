package timeline

import (
	"fmt"

	"github.com/google/uuid"
)

// Default project settings applied when media probing does not dictate them.
const (
	DefaultFrameRate = 30.0
	DefaultWidth     = 1920
	DefaultHeight    = 1080
)

// Project is the root of the timeline model: ordered tracks plus the playback
// fields recorded in undo snapshots.
type Project struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	FrameRate float64  `json:"frame_rate"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Tracks    []*Track `json:"tracks,omitempty"`

	PlayheadSeconds float64 `json:"playhead_seconds"`
	ZoomLevel       float64 `json:"zoom_level"`
}

// NewProject creates an empty project with one video and one audio track.
func NewProject(name string) *Project {
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		FrameRate: DefaultFrameRate,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		ZoomLevel: 1,
		Tracks: []*Track{
			{ID: uuid.NewString(), Kind: TrackVideo, Name: "Video 1"},
			{ID: uuid.NewString(), Kind: TrackAudio, Name: "Audio 1"},
		},
	}
}

// FindTrack returns the track with the given ID, or nil.
func (p *Project) FindTrack(id string) *Track {
	for _, track := range p.Tracks {
		if track.ID == id {
			return track
		}
	}
	return nil
}

// TrackFor returns the first track of the given kind, creating one when the
// project has none.
func (p *Project) TrackFor(kind TrackKind) *Track {
	for _, track := range p.Tracks {
		if track.Kind == kind {
			return track
		}
	}
	name := fmt.Sprintf("Video %d", len(p.Tracks)+1)
	if kind == TrackAudio {
		name = fmt.Sprintf("Audio %d", len(p.Tracks)+1)
	}
	track := &Track{ID: uuid.NewString(), Kind: kind, Name: name}
	p.Tracks = append(p.Tracks, track)
	return track
}

// FindClip locates a clip by ID across all tracks. Returns the clip and its
// owning track, or nils when absent.
func (p *Project) FindClip(id string) (*Clip, *Track) {
	for _, track := range p.Tracks {
		if clip := track.FindClip(id); clip != nil {
			return clip, track
		}
	}
	return nil, nil
}

// Clips returns every clip across all tracks in track order.
func (p *Project) Clips() []*Clip {
	var out []*Clip
	for _, track := range p.Tracks {
		out = append(out, track.Clips...)
	}
	return out
}

// Duration returns the timeline position where the last clip ends.
func (p *Project) Duration() float64 {
	var end float64
	for _, track := range p.Tracks {
		if trackEnd := track.End(); trackEnd > end {
			end = trackEnd
		}
	}
	return end
}

// Clone returns an independent deep copy of the whole project tree.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := &Project{
		ID:              p.ID,
		Name:            p.Name,
		FrameRate:       p.FrameRate,
		Width:           p.Width,
		Height:          p.Height,
		PlayheadSeconds: p.PlayheadSeconds,
		ZoomLevel:       p.ZoomLevel,
	}
	if len(p.Tracks) > 0 {
		out.Tracks = make([]*Track, len(p.Tracks))
		for i, track := range p.Tracks {
			out.Tracks[i] = track.Clone()
		}
	}
	return out
}

// Equal compares two projects structurally. This is the comparison that
// decides whether an edit changed anything worth recording in history.
func (p *Project) Equal(other *Project) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.ID != other.ID || p.Name != other.Name {
		return false
	}
	if p.FrameRate != other.FrameRate || p.Width != other.Width || p.Height != other.Height {
		return false
	}
	if p.PlayheadSeconds != other.PlayheadSeconds || p.ZoomLevel != other.ZoomLevel {
		return false
	}
	if len(p.Tracks) != len(other.Tracks) {
		return false
	}
	for i := range p.Tracks {
		if !p.Tracks[i].Equal(other.Tracks[i]) {
			return false
		}
	}
	return true
}
