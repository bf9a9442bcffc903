package timeline

import "sort"

// Track is an ordered sequence of clips of one kind. Clips are kept sorted by
// timeline start; overlap prevention is a convention of the editing surface,
// not enforced here.
type Track struct {
	ID     string    `json:"id"`
	Kind   TrackKind `json:"kind"`
	Name   string    `json:"name"`
	Clips  []*Clip   `json:"clips,omitempty"`
	Muted  bool      `json:"muted"`
	Locked bool      `json:"locked"`
	Hidden bool      `json:"hidden"`
}

// FindClip returns the clip with the given ID, or nil.
func (t *Track) FindClip(id string) *Clip {
	for _, clip := range t.Clips {
		if clip.ID == id {
			return clip
		}
	}
	return nil
}

// AddClip inserts a clip and restores timeline ordering.
func (t *Track) AddClip(clip *Clip) {
	t.Clips = append(t.Clips, clip)
	t.sortClips()
}

// RemoveClip deletes the clip with the given ID, preserving the order of the
// remaining clips. Returns whether a clip was removed.
func (t *Track) RemoveClip(id string) bool {
	for i, clip := range t.Clips {
		if clip.ID == id {
			t.Clips = append(t.Clips[:i], t.Clips[i+1:]...)
			return true
		}
	}
	return false
}

// End returns the exclusive end position of the last clip on the track.
func (t *Track) End() float64 {
	var end float64
	for _, clip := range t.Clips {
		if clipEnd := clip.TimelineEnd(); clipEnd > end {
			end = clipEnd
		}
	}
	return end
}

func (t *Track) sortClips() {
	sort.SliceStable(t.Clips, func(i, j int) bool {
		return t.Clips[i].TimelineStart < t.Clips[j].TimelineStart
	})
}

// Clone returns an independent deep copy of the track.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	out := &Track{
		ID:     t.ID,
		Kind:   t.Kind,
		Name:   t.Name,
		Muted:  t.Muted,
		Locked: t.Locked,
		Hidden: t.Hidden,
	}
	if len(t.Clips) > 0 {
		out.Clips = make([]*Clip, len(t.Clips))
		for i, clip := range t.Clips {
			out.Clips[i] = clip.Clone()
		}
	}
	return out
}

// Equal compares two tracks structurally, including clip order.
func (t *Track) Equal(other *Track) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.ID != other.ID || t.Kind != other.Kind || t.Name != other.Name {
		return false
	}
	if t.Muted != other.Muted || t.Locked != other.Locked || t.Hidden != other.Hidden {
		return false
	}
	if len(t.Clips) != len(other.Clips) {
		return false
	}
	for i := range t.Clips {
		if !t.Clips[i].Equal(other.Clips[i]) {
			return false
		}
	}
	return true
}
