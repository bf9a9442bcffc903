package timeline

import (
	"fmt"
	"strings"
)

// MediaType categorizes the source media backing a clip.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
	MediaImage MediaType = "image"
)

// ParseMediaType converts free-form input into a MediaType.
func ParseMediaType(value string) (MediaType, error) {
	switch MediaType(strings.ToLower(strings.TrimSpace(value))) {
	case MediaVideo:
		return MediaVideo, nil
	case MediaAudio:
		return MediaAudio, nil
	case MediaImage:
		return MediaImage, nil
	default:
		return "", fmt.Errorf("unknown media type %q", value)
	}
}

// TrackKind categorizes a track. Image clips live on video tracks.
type TrackKind string

const (
	TrackVideo TrackKind = "video"
	TrackAudio TrackKind = "audio"
)

// Kind returns the track kind a clip of this media type belongs on.
func (m MediaType) Kind() TrackKind {
	if m == MediaAudio {
		return TrackAudio
	}
	return TrackVideo
}

// Interpolation names the curve applied between two keyframes.
type Interpolation string

const (
	InterpLinear  Interpolation = "linear"
	InterpBezier  Interpolation = "bezier"
	InterpHold    Interpolation = "hold"
	InterpEaseIn  Interpolation = "ease-in"
	InterpEaseOut Interpolation = "ease-out"
)

// DefaultInterpolation is applied when an action does not request a curve.
const DefaultInterpolation = InterpBezier

// ParseInterpolation converts free-form input into an Interpolation. Upstream
// action producers spell the curves in upper case with underscores
// (EASE_IN); both spellings are accepted.
func ParseInterpolation(value string) (Interpolation, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", "-")
	switch Interpolation(normalized) {
	case InterpLinear:
		return InterpLinear, nil
	case InterpBezier:
		return InterpBezier, nil
	case InterpHold:
		return InterpHold, nil
	case InterpEaseIn:
		return InterpEaseIn, nil
	case InterpEaseOut:
		return InterpEaseOut, nil
	case "":
		return DefaultInterpolation, nil
	default:
		return "", fmt.Errorf("unknown interpolation %q", value)
	}
}
