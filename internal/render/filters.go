package render

import (
	"fmt"
	"strconv"

	"splice/internal/effects"
	"splice/internal/timeline"
)

// num renders a float without trailing zeros so filter scripts stay stable
// and readable.
func num(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// restingValue returns the value a parameter settles at: the last keyframe
// when the parameter is animated, otherwise the stored static value, falling
// back to the catalog default.
func restingValue(entry *timeline.AppliedEffect, desc effects.Descriptor, name string) float64 {
	if kfs := entry.ParameterKeyframes(name); len(kfs) > 0 {
		return kfs[len(kfs)-1].Value
	}
	if value, ok := entry.Parameter(name); ok {
		return value
	}
	if param, ok := desc.Parameter(name); ok {
		return param.Default
	}
	return 0
}

func enabledEntry(clip *timeline.Clip, effectID string) *timeline.AppliedEffect {
	for _, entry := range clip.Effects {
		if entry != nil && entry.Enabled && entry.EffectID == effectID {
			return entry
		}
	}
	return nil
}

// clipSpeed returns the playback rate for a clip, defaulting to 1.
func clipSpeed(clip *timeline.Clip) float64 {
	entry := enabledEntry(clip, effects.IDPlaybackSpeed)
	if entry == nil {
		return 1
	}
	desc, err := effects.Describe(effects.IDPlaybackSpeed)
	if err != nil {
		return 1
	}
	rate := restingValue(entry, desc, effects.ParamRate)
	if rate <= 0 {
		return 1
	}
	return rate
}

// clipVideoFilters maps a clip's enabled effects onto ffmpeg video filters in
// applied order. Transform built-ins, audio effects, and transitions are
// handled elsewhere; parameters at their neutral value emit nothing.
func clipVideoFilters(clip *timeline.Clip, outDuration float64) []string {
	var filters []string
	for _, entry := range clip.Effects {
		if entry == nil || !entry.Enabled {
			continue
		}
		desc, err := effects.Describe(entry.EffectID)
		if err != nil {
			continue
		}
		switch entry.EffectID {
		case effects.IDScale, effects.IDPosition, effects.IDRotation, effects.IDOpacity:
			// Composited from the clip transform.
		case effects.IDVolume, effects.IDPlaybackSpeed, effects.IDCrossDissolve:
			// Volume is audio-only; speed and dissolves shape the chain itself.
		case effects.IDFadeIn:
			if d := restingValue(entry, desc, effects.ParamDuration); d > 0 {
				filters = append(filters, fmt.Sprintf("fade=t=in:st=0:d=%s", num(d)))
			}
		case effects.IDFadeOut:
			if d := restingValue(entry, desc, effects.ParamDuration); d > 0 {
				st := restingValue(entry, desc, effects.ParamStart)
				if st <= 0 {
					st = outDuration - d
					if st < 0 {
						st = 0
					}
				}
				filters = append(filters, fmt.Sprintf("fade=t=out:st=%s:d=%s", num(st), num(d)))
			}
		case "crop":
			w := restingValue(entry, desc, "width")
			h := restingValue(entry, desc, "height")
			x := restingValue(entry, desc, "x")
			y := restingValue(entry, desc, "y")
			if w < 100 || h < 100 || x > 0 || y > 0 {
				filters = append(filters, fmt.Sprintf(
					"crop=iw*%s/100:ih*%s/100:iw*%s/100:ih*%s/100",
					num(w), num(h), num(x), num(y)))
			}
		case "brightness":
			if v := restingValue(entry, desc, "brightness"); v != 0 {
				filters = append(filters, fmt.Sprintf("eq=brightness=%s", num(v/100)))
			}
		case "contrast":
			if v := restingValue(entry, desc, "contrast"); v != 0 {
				filters = append(filters, fmt.Sprintf("eq=contrast=%s", num(1+v/100)))
			}
		case "saturation":
			if v := restingValue(entry, desc, "saturation"); v != 0 {
				filters = append(filters, fmt.Sprintf("eq=saturation=%s", num(1+v/100)))
			}
		case "exposure":
			if v := restingValue(entry, desc, "exposure"); v != 0 {
				filters = append(filters, fmt.Sprintf("exposure=exposure=%s", num(v)))
			}
		case "color_temperature":
			if v := restingValue(entry, desc, "temperature"); v != 6500 {
				filters = append(filters, fmt.Sprintf("colortemperature=temperature=%s", num(v)))
			}
		case "hue_rotate":
			if v := restingValue(entry, desc, effects.ParamDegrees); v != 0 {
				filters = append(filters, fmt.Sprintf("hue=h=%s", num(v)))
			}
		case "grayscale":
			if v := restingValue(entry, desc, effects.ParamAmount); v > 0 {
				filters = append(filters, fmt.Sprintf("hue=s=%s", num(1-v/100)))
			}
		case "gaussian_blur":
			if v := restingValue(entry, desc, "sigma"); v > 0 {
				filters = append(filters, fmt.Sprintf("gblur=sigma=%s", num(v)))
			}
		case "sharpen":
			if v := restingValue(entry, desc, effects.ParamAmount); v > 0 {
				filters = append(filters, fmt.Sprintf("unsharp=5:5:%s", num(v)))
			}
		case "sepia":
			if v := restingValue(entry, desc, effects.ParamAmount); v > 0 {
				filters = append(filters, sepiaMix(v/100))
			}
		case "vignette":
			if v := restingValue(entry, desc, "angle"); v > 0 {
				filters = append(filters, fmt.Sprintf("vignette=angle=%s", num(v)))
			}
		}
	}
	return filters
}

// sepiaMix blends the identity matrix toward the classic sepia matrix.
func sepiaMix(amount float64) string {
	blend := func(target, identity float64) string {
		return num(identity*(1-amount) + target*amount)
	}
	return fmt.Sprintf(
		"colorchannelmixer=rr=%s:rg=%s:rb=%s:gr=%s:gg=%s:gb=%s:br=%s:bg=%s:bb=%s",
		blend(0.393, 1), blend(0.769, 0), blend(0.189, 0),
		blend(0.349, 0), blend(0.686, 1), blend(0.168, 0),
		blend(0.272, 0), blend(0.534, 0), blend(0.131, 1))
}

// clipAudioFilters maps a clip's enabled audio-facing effects onto ffmpeg
// audio filters.
func clipAudioFilters(clip *timeline.Clip, outDuration float64) []string {
	var filters []string
	for _, entry := range clip.Effects {
		if entry == nil || !entry.Enabled {
			continue
		}
		desc, err := effects.Describe(entry.EffectID)
		if err != nil {
			continue
		}
		switch entry.EffectID {
		case effects.IDVolume:
			if v := restingValue(entry, desc, effects.ParamVolume); v != 100 {
				filters = append(filters, fmt.Sprintf("volume=%s", num(v/100)))
			}
		case effects.IDFadeIn:
			if d := restingValue(entry, desc, effects.ParamDuration); d > 0 {
				filters = append(filters, fmt.Sprintf("afade=t=in:st=0:d=%s", num(d)))
			}
		case effects.IDFadeOut:
			if d := restingValue(entry, desc, effects.ParamDuration); d > 0 {
				st := restingValue(entry, desc, effects.ParamStart)
				if st <= 0 {
					st = outDuration - d
					if st < 0 {
						st = 0
					}
				}
				filters = append(filters, fmt.Sprintf("afade=t=out:st=%s:d=%s", num(st), num(d)))
			}
		}
	}
	return filters
}

// atempoChain expresses an arbitrary playback rate as a chain of atempo
// filters, each within the filter's supported 0.5..2 range.
func atempoChain(rate float64) []string {
	if rate <= 0 || rate == 1 {
		return nil
	}
	var chain []string
	remaining := rate
	for remaining > 2 {
		chain = append(chain, "atempo=2")
		remaining /= 2
	}
	for remaining < 0.5 {
		chain = append(chain, "atempo=0.5")
		remaining *= 2
	}
	if remaining != 1 {
		chain = append(chain, "atempo="+num(remaining))
	}
	return chain
}
