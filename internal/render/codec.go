package render

import (
	"fmt"

	"splice/internal/config"
)

// codecSpec ties a configured codec name to an ffmpeg encoder and the
// container and audio codec that go with it.
type codecSpec struct {
	Encoder    string
	Extension  string
	AudioCodec string
	AudioArgs  []string
	ExtraArgs  []string
	UsesPreset bool
	Faststart  bool
}

var codecSpecs = map[string]codecSpec{
	"h264": {
		Encoder:    "libx264",
		Extension:  ".mp4",
		AudioCodec: "aac",
		AudioArgs:  []string{"-b:a", "192k"},
		UsesPreset: true,
		Faststart:  true,
	},
	"h265": {
		Encoder:    "libx265",
		Extension:  ".mp4",
		AudioCodec: "aac",
		AudioArgs:  []string{"-b:a", "192k"},
		ExtraArgs:  []string{"-tag:v", "hvc1"},
		UsesPreset: true,
		Faststart:  true,
	},
	"vp9": {
		Encoder:    "libvpx-vp9",
		Extension:  ".webm",
		AudioCodec: "libopus",
		AudioArgs:  []string{"-b:a", "128k"},
		ExtraArgs:  []string{"-row-mt", "1"},
	},
	"prores": {
		Encoder:    "prores_ks",
		Extension:  ".mov",
		AudioCodec: "pcm_s16le",
		Faststart:  true,
	},
}

// rateControl maps codec and quality tier onto the encoder's own rate
// control arguments. ProRes grades through profiles instead of CRF, and its
// ten-bit pixel formats ride along with the profile.
var rateControl = map[string]map[string][]string{
	"h264": {
		"low":      {"-crf", "28"},
		"medium":   {"-crf", "23"},
		"high":     {"-crf", "18"},
		"lossless": {"-crf", "0"},
	},
	"h265": {
		"low":      {"-crf", "32"},
		"medium":   {"-crf", "28"},
		"high":     {"-crf", "22"},
		"lossless": {"-x265-params", "lossless=1"},
	},
	"vp9": {
		"low":      {"-b:v", "0", "-crf", "40"},
		"medium":   {"-b:v", "0", "-crf", "33"},
		"high":     {"-b:v", "0", "-crf", "24"},
		"lossless": {"-lossless", "1"},
	},
	"prores": {
		"low":      {"-profile:v", "0", "-pix_fmt", "yuv422p10le"},
		"medium":   {"-profile:v", "2", "-pix_fmt", "yuv422p10le"},
		"high":     {"-profile:v", "3", "-pix_fmt", "yuv422p10le"},
		"lossless": {"-profile:v", "4", "-pix_fmt", "yuv444p10le"},
	},
}

func codecFor(name string) (codecSpec, error) {
	spec, ok := codecSpecs[name]
	if !ok {
		return codecSpec{}, fmt.Errorf("unsupported render codec %q", name)
	}
	return spec, nil
}

// encoderArgs assembles the encoding half of the ffmpeg command line for the
// configured codec, quality tier, and speed preset.
func encoderArgs(render config.Render) ([]string, error) {
	spec, err := codecFor(render.Codec)
	if err != nil {
		return nil, err
	}
	control, ok := rateControl[render.Codec][render.Quality]
	if !ok {
		return nil, fmt.Errorf("unsupported render quality %q for codec %q", render.Quality, render.Codec)
	}

	args := []string{"-c:v", spec.Encoder}
	if spec.UsesPreset {
		args = append(args, "-preset", render.Preset)
	}
	args = append(args, control...)
	args = append(args, spec.ExtraArgs...)
	args = append(args, "-c:a", spec.AudioCodec)
	args = append(args, spec.AudioArgs...)
	if spec.Faststart {
		args = append(args, "-movflags", "+faststart")
	}
	return args, nil
}
