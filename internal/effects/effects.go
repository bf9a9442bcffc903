package effects

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownEffect marks lookups for effect IDs absent from the catalog.
var ErrUnknownEffect = errors.New("unknown effect")

// Category groups effects for presentation and export planning.
type Category string

const (
	CategoryTransform  Category = "transform"
	CategoryColor      Category = "color"
	CategoryStylize    Category = "stylize"
	CategoryTransition Category = "transition"
	CategoryPlayback   Category = "playback"
	CategoryAudio      Category = "audio"
)

// Parameter describes one numeric effect parameter. Default is the value the
// parameter takes when the effect is first applied; Neutral is the value at
// which the parameter has no visible influence. The two coincide for transform
// fields (scale 100 means unscaled) but differ for strength-style filters,
// where a freshly applied grayscale starts at 100 and 0 means off. Min and Max
// are only meaningful when Clamped is set.
type Parameter struct {
	Name    string
	Default float64
	Neutral float64
	Min     float64
	Max     float64
	Clamped bool
}

// Descriptor describes one effect in the catalog.
type Descriptor struct {
	ID         string
	Name       string
	Category   Category
	Parameters []Parameter
}

// Parameter returns the named parameter definition.
func (d Descriptor) Parameter(name string) (Parameter, bool) {
	for _, param := range d.Parameters {
		if param.Name == name {
			return param, true
		}
	}
	return Parameter{}, false
}

// Describe returns the descriptor for an effect ID.
func Describe(effectID string) (Descriptor, error) {
	descriptor, ok := catalogIndex[effectID]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownEffect, effectID)
	}
	return descriptor, nil
}

// Known reports whether the catalog carries the effect ID.
func Known(effectID string) bool {
	_, ok := catalogIndex[effectID]
	return ok
}

// All returns every descriptor in stable catalog order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Defaults returns a fresh parameter map populated with the effect's default
// values.
func Defaults(effectID string) (map[string]float64, error) {
	descriptor, err := Describe(effectID)
	if err != nil {
		return nil, err
	}
	defaults := make(map[string]float64, len(descriptor.Parameters))
	for _, param := range descriptor.Parameters {
		defaults[param.Name] = param.Default
	}
	return defaults, nil
}

// ClampParameters merges supplied values over the effect's defaults, clamping
// each into its valid range. Unknown parameter names are skipped rather than
// rejected, so callers can pass through upstream maps untouched.
func ClampParameters(effectID string, supplied map[string]float64) (map[string]float64, error) {
	descriptor, err := Describe(effectID)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]float64, len(descriptor.Parameters))
	for _, param := range descriptor.Parameters {
		value, ok := supplied[param.Name]
		if !ok {
			merged[param.Name] = param.Default
			continue
		}
		merged[param.Name] = Clamp(param, value)
	}
	return merged, nil
}

// Clamp forces a value into the parameter's valid range.
func Clamp(param Parameter, value float64) float64 {
	if !param.Clamped {
		return value
	}
	if value < param.Min {
		return param.Min
	}
	if value > param.Max {
		return param.Max
	}
	return value
}

var titleCaser = cases.Title(language.Und)

// DisplayName derives a human-readable name from an effect or parameter ID.
func DisplayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
