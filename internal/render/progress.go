package render

import (
	"strconv"
	"strings"
)

// progressUpdate is one completed block of ffmpeg's -progress stream.
type progressUpdate struct {
	Seconds float64
	Speed   float64
	Done    bool
}

// progressParser folds the key=value lines ffmpeg writes to the progress
// pipe into updates. A block is complete when the progress key arrives.
type progressParser struct {
	current progressUpdate
}

func (p *progressParser) Feed(line string) (progressUpdate, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return progressUpdate{}, false
	}
	switch key {
	case "out_time_us":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n >= 0 {
			p.current.Seconds = float64(n) / 1e6
		}
	case "speed":
		trimmed := strings.TrimSuffix(strings.TrimSpace(value), "x")
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			p.current.Speed = f
		}
	case "progress":
		update := p.current
		update.Done = value == "end"
		return update, true
	}
	return progressUpdate{}, false
}

var progressKeys = map[string]bool{
	"frame":       true,
	"fps":         true,
	"bitrate":     true,
	"total_size":  true,
	"out_time_us": true,
	"out_time_ms": true,
	"out_time":    true,
	"dup_frames":  true,
	"drop_frames": true,
	"speed":       true,
	"progress":    true,
}

// progressNoise reports whether a line belongs to the machine progress
// stream rather than ffmpeg's log output.
func progressNoise(line string) bool {
	key, _, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return false
	}
	if strings.HasPrefix(key, "stream_") {
		return true
	}
	return progressKeys[key]
}
