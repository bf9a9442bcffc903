package timeline

import (
	"errors"
	"fmt"
	"sort"
)

// Default values for built-in transform fields. Scale and opacity are
// expressed in percent.
const (
	DefaultScale   = 100.0
	DefaultOpacity = 100.0
)

// Transform is the continuous view of a clip's built-in adjustments. Filters
// holds named filter strengths (brightness, saturation, ...) keyed by filter
// name; a filter at its default value is removed from the map entirely.
type Transform struct {
	Scale     float64            `json:"scale"`
	PositionX float64            `json:"position_x"`
	PositionY float64            `json:"position_y"`
	Rotation  float64            `json:"rotation"`
	Opacity   float64            `json:"opacity"`
	Filters   map[string]float64 `json:"filters,omitempty"`
}

// DefaultTransform returns the neutral transform applied to new clips.
func DefaultTransform() Transform {
	return Transform{Scale: DefaultScale, Opacity: DefaultOpacity}
}

// FilterValue returns the strength of a named filter and whether it is active.
func (t *Transform) FilterValue(name string) (float64, bool) {
	value, ok := t.Filters[name]
	return value, ok
}

// SetFilter records a named filter strength, allocating the map on first use.
func (t *Transform) SetFilter(name string, value float64) {
	if t.Filters == nil {
		t.Filters = make(map[string]float64, 1)
	}
	t.Filters[name] = value
}

// ClearFilter removes a named filter, returning whether it was present.
func (t *Transform) ClearFilter(name string) bool {
	if _, ok := t.Filters[name]; !ok {
		return false
	}
	delete(t.Filters, name)
	return true
}

// Clone returns an independent copy of the transform.
func (t Transform) Clone() Transform {
	out := t
	if len(t.Filters) > 0 {
		out.Filters = make(map[string]float64, len(t.Filters))
		for name, value := range t.Filters {
			out.Filters[name] = value
		}
	} else {
		out.Filters = nil
	}
	return out
}

// Equal compares two transforms structurally. Empty and nil filter maps are
// considered equal.
func (t Transform) Equal(other Transform) bool {
	if t.Scale != other.Scale || t.PositionX != other.PositionX || t.PositionY != other.PositionY {
		return false
	}
	if t.Rotation != other.Rotation || t.Opacity != other.Opacity {
		return false
	}
	if len(t.Filters) != len(other.Filters) {
		return false
	}
	for name, value := range t.Filters {
		if otherValue, ok := other.Filters[name]; !ok || otherValue != value {
			return false
		}
	}
	return true
}

// AppliedEffect is one discrete entry in a clip's effect list. Keyframes maps
// parameter names to ordered keyframe lists; a parameter with no entry is
// static at its value in Parameters.
type AppliedEffect struct {
	ID         string                `json:"id"`
	EffectID   string                `json:"effect_id"`
	Parameters map[string]float64    `json:"parameters,omitempty"`
	Keyframes  map[string][]Keyframe `json:"keyframes,omitempty"`
	Enabled    bool                  `json:"enabled"`
}

// Parameter returns the static value recorded for a parameter name.
func (e *AppliedEffect) Parameter(name string) (float64, bool) {
	value, ok := e.Parameters[name]
	return value, ok
}

// SetParameter records a static parameter value, allocating the map on first use.
func (e *AppliedEffect) SetParameter(name string, value float64) {
	if e.Parameters == nil {
		e.Parameters = make(map[string]float64, 1)
	}
	e.Parameters[name] = value
}

// ParameterKeyframes returns the ordered keyframes driving a parameter, or nil
// when the parameter is static.
func (e *AppliedEffect) ParameterKeyframes(name string) []Keyframe {
	return e.Keyframes[name]
}

// SetParameterKeyframes replaces the keyframes driving a parameter. An empty
// list clears the entry, returning the parameter to static.
func (e *AppliedEffect) SetParameterKeyframes(name string, list []Keyframe) {
	if len(list) == 0 {
		delete(e.Keyframes, name)
		return
	}
	if e.Keyframes == nil {
		e.Keyframes = make(map[string][]Keyframe, 1)
	}
	e.Keyframes[name] = list
}

// Clone returns an independent copy of the applied effect.
func (e *AppliedEffect) Clone() *AppliedEffect {
	if e == nil {
		return nil
	}
	out := &AppliedEffect{ID: e.ID, EffectID: e.EffectID, Enabled: e.Enabled}
	if len(e.Parameters) > 0 {
		out.Parameters = make(map[string]float64, len(e.Parameters))
		for name, value := range e.Parameters {
			out.Parameters[name] = value
		}
	}
	if len(e.Keyframes) > 0 {
		out.Keyframes = make(map[string][]Keyframe, len(e.Keyframes))
		for name, list := range e.Keyframes {
			out.Keyframes[name] = CloneKeyframes(list)
		}
	}
	return out
}

// Equal compares two applied effects structurally.
func (e *AppliedEffect) Equal(other *AppliedEffect) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.ID != other.ID || e.EffectID != other.EffectID || e.Enabled != other.Enabled {
		return false
	}
	if len(e.Parameters) != len(other.Parameters) {
		return false
	}
	for name, value := range e.Parameters {
		if otherValue, ok := other.Parameters[name]; !ok || otherValue != value {
			return false
		}
	}
	if len(e.Keyframes) != len(other.Keyframes) {
		return false
	}
	for name, list := range e.Keyframes {
		otherList, ok := other.Keyframes[name]
		if !ok || !KeyframesEqual(list, otherList) {
			return false
		}
	}
	return true
}

// Clip is a placed instance of media on a track: a source range, a timeline
// position, a transform, and an ordered effect list. A clip is owned by
// exactly one track.
type Clip struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	MediaType     MediaType        `json:"media_type"`
	SourcePath    string           `json:"source_path"`
	SourceStart   float64          `json:"source_start"`
	SourceEnd     float64          `json:"source_end"`
	TimelineStart float64          `json:"timeline_start"`
	Transform     Transform        `json:"transform"`
	Effects       []*AppliedEffect `json:"effects,omitempty"`
}

// Duration returns the portion of source media the clip plays, in seconds.
func (c *Clip) Duration() float64 {
	return c.SourceEnd - c.SourceStart
}

// TimelineEnd returns the clip's exclusive end position on the timeline.
func (c *Clip) TimelineEnd() float64 {
	return c.TimelineStart + c.Duration()
}

// Validate checks the clip's range invariants.
func (c *Clip) Validate() error {
	if c.SourceStart >= c.SourceEnd {
		return fmt.Errorf("clip %s: source start %.3f must precede source end %.3f", c.ID, c.SourceStart, c.SourceEnd)
	}
	if c.TimelineStart < 0 {
		return errors.New("clip " + c.ID + ": timeline start must not be negative")
	}
	return nil
}

// FindEffect returns the applied effect with the given entry ID, or nil.
func (c *Clip) FindEffect(id string) *AppliedEffect {
	for _, effect := range c.Effects {
		if effect.ID == id {
			return effect
		}
	}
	return nil
}

// FindEffectByEffectID returns the first applied effect referencing the given
// registry effect ID, or nil.
func (c *Clip) FindEffectByEffectID(effectID string) *AppliedEffect {
	for _, effect := range c.Effects {
		if effect.EffectID == effectID {
			return effect
		}
	}
	return nil
}

// AppendEffect adds an effect entry at the end of the clip's effect list.
func (c *Clip) AppendEffect(effect *AppliedEffect) {
	c.Effects = append(c.Effects, effect)
}

// RemoveEffect deletes the applied effect with the given entry ID, preserving
// the order of the remaining entries. Returns whether an entry was removed.
func (c *Clip) RemoveEffect(id string) bool {
	for i, effect := range c.Effects {
		if effect.ID == id {
			c.Effects = append(c.Effects[:i], c.Effects[i+1:]...)
			return true
		}
	}
	return false
}

// SortEffectKeyframes re-sorts every keyframe list on the clip. Callers that
// bypass InsertKeyframe can use this to restore the ordering invariant.
func (c *Clip) SortEffectKeyframes() {
	for _, effect := range c.Effects {
		for name, list := range effect.Keyframes {
			sort.Slice(list, func(i, j int) bool { return list[i].Time < list[j].Time })
			effect.Keyframes[name] = list
		}
	}
}

// Clone returns an independent deep copy of the clip.
func (c *Clip) Clone() *Clip {
	if c == nil {
		return nil
	}
	out := &Clip{
		ID:            c.ID,
		Name:          c.Name,
		MediaType:     c.MediaType,
		SourcePath:    c.SourcePath,
		SourceStart:   c.SourceStart,
		SourceEnd:     c.SourceEnd,
		TimelineStart: c.TimelineStart,
		Transform:     c.Transform.Clone(),
	}
	if len(c.Effects) > 0 {
		out.Effects = make([]*AppliedEffect, len(c.Effects))
		for i, effect := range c.Effects {
			out.Effects[i] = effect.Clone()
		}
	}
	return out
}

// Equal compares two clips structurally, including effect order.
func (c *Clip) Equal(other *Clip) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.ID != other.ID || c.Name != other.Name || c.MediaType != other.MediaType {
		return false
	}
	if c.SourcePath != other.SourcePath {
		return false
	}
	if c.SourceStart != other.SourceStart || c.SourceEnd != other.SourceEnd || c.TimelineStart != other.TimelineStart {
		return false
	}
	if !c.Transform.Equal(other.Transform) {
		return false
	}
	if len(c.Effects) != len(other.Effects) {
		return false
	}
	for i := range c.Effects {
		if !c.Effects[i].Equal(other.Effects[i]) {
			return false
		}
	}
	return true
}
