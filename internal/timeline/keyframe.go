package timeline

import "sort"

// Keyframe pins a parameter to a value at a point in time. Time is expressed
// in seconds from the project origin, not relative to the owning clip.
type Keyframe struct {
	Time          float64       `json:"time"`
	Value         float64       `json:"value"`
	Interpolation Interpolation `json:"interpolation"`
}

// InsertKeyframe adds k to an ordered keyframe list, keeping the list sorted
// by time. A keyframe at an already-occupied time replaces the existing one,
// so a parameter never carries two keyframes at the same instant.
func InsertKeyframe(list []Keyframe, k Keyframe) []Keyframe {
	for i := range list {
		if list[i].Time == k.Time {
			list[i] = k
			return list
		}
	}
	list = append(list, k)
	sort.Slice(list, func(i, j int) bool { return list[i].Time < list[j].Time })
	return list
}

// CloneKeyframes returns an independent copy of a keyframe list.
func CloneKeyframes(list []Keyframe) []Keyframe {
	if len(list) == 0 {
		return nil
	}
	out := make([]Keyframe, len(list))
	copy(out, list)
	return out
}

// KeyframesEqual compares two ordered keyframe lists for exact equality of
// times, values, and interpolation curves.
func KeyframesEqual(a, b []Keyframe) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
