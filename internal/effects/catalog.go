package effects

// Effect IDs referenced programmatically by the synchronizer, dispatcher, and
// renderer. Filter-family effects not listed here are still addressed by
// their catalog ID.
const (
	IDScale         = "scale"
	IDPosition      = "position"
	IDRotation      = "rotation"
	IDOpacity       = "opacity"
	IDVolume        = "volume"
	IDPlaybackSpeed = "playback_speed"
	IDFadeIn        = "fade_in"
	IDFadeOut       = "fade_out"
	IDCrossDissolve = "cross_dissolve"
)

// Canonical parameter names shared across packages.
const (
	ParamScale     = "scale"
	ParamPositionX = "positionX"
	ParamPositionY = "positionY"
	ParamDegrees   = "degrees"
	ParamOpacity   = "opacity"
	ParamRate      = "rate"
	ParamVolume    = "volume"
	ParamDuration  = "duration"
	ParamStart     = "start"
	ParamAmount    = "amount"
)

// catalog lists every effect in stable presentation order: transforms first,
// then color, stylize, transitions, playback, audio.
var catalog = []Descriptor{
	{
		ID: IDScale, Name: "Scale", Category: CategoryTransform,
		Parameters: []Parameter{
			{Name: ParamScale, Default: 100, Neutral: 100, Min: 1, Max: 1000, Clamped: true},
		},
	},
	{
		ID: IDPosition, Name: "Position", Category: CategoryTransform,
		Parameters: []Parameter{
			{Name: ParamPositionX, Default: 0, Neutral: 0, Min: -10000, Max: 10000, Clamped: true},
			{Name: ParamPositionY, Default: 0, Neutral: 0, Min: -10000, Max: 10000, Clamped: true},
		},
	},
	{
		ID: IDRotation, Name: "Rotation", Category: CategoryTransform,
		Parameters: []Parameter{
			{Name: ParamDegrees, Default: 0, Neutral: 0, Min: -360, Max: 360, Clamped: true},
		},
	},
	{
		ID: IDOpacity, Name: "Opacity", Category: CategoryTransform,
		Parameters: []Parameter{
			{Name: ParamOpacity, Default: 100, Neutral: 100, Min: 0, Max: 100, Clamped: true},
		},
	},
	{
		ID: "crop", Name: "Crop", Category: CategoryTransform,
		Parameters: []Parameter{
			{Name: "width", Default: 100, Neutral: 100, Min: 0, Max: 100, Clamped: true},
			{Name: "height", Default: 100, Neutral: 100, Min: 0, Max: 100, Clamped: true},
			{Name: "x", Default: 0, Neutral: 0, Min: 0, Max: 100, Clamped: true},
			{Name: "y", Default: 0, Neutral: 0, Min: 0, Max: 100, Clamped: true},
		},
	},
	{
		ID: "brightness", Name: "Brightness", Category: CategoryColor,
		Parameters: []Parameter{
			{Name: "brightness", Default: 0, Neutral: 0, Min: -100, Max: 100, Clamped: true},
		},
	},
	{
		ID: "contrast", Name: "Contrast", Category: CategoryColor,
		Parameters: []Parameter{
			{Name: "contrast", Default: 0, Neutral: 0, Min: -100, Max: 100, Clamped: true},
		},
	},
	{
		ID: "saturation", Name: "Saturation", Category: CategoryColor,
		Parameters: []Parameter{
			{Name: "saturation", Default: 0, Neutral: 0, Min: -100, Max: 100, Clamped: true},
		},
	},
	{
		ID: "exposure", Name: "Exposure", Category: CategoryColor,
		Parameters: []Parameter{
			{Name: "exposure", Default: 0, Neutral: 0, Min: -3, Max: 3, Clamped: true},
		},
	},
	{
		ID: "color_temperature", Name: "Color Temperature", Category: CategoryColor,
		Parameters: []Parameter{
			{Name: "temperature", Default: 6500, Neutral: 6500, Min: 1000, Max: 40000, Clamped: true},
		},
	},
	{
		ID: "hue_rotate", Name: "Hue Rotate", Category: CategoryColor,
		Parameters: []Parameter{
			{Name: ParamDegrees, Default: 0, Neutral: 0, Min: 0, Max: 360, Clamped: true},
		},
	},
	{
		ID: "grayscale", Name: "Grayscale", Category: CategoryStylize,
		Parameters: []Parameter{
			{Name: ParamAmount, Default: 100, Neutral: 0, Min: 0, Max: 100, Clamped: true},
		},
	},
	{
		ID: "gaussian_blur", Name: "Gaussian Blur", Category: CategoryStylize,
		Parameters: []Parameter{
			{Name: "sigma", Default: 5, Neutral: 0, Min: 0, Max: 50, Clamped: true},
		},
	},
	{
		ID: "sharpen", Name: "Sharpen", Category: CategoryStylize,
		Parameters: []Parameter{
			{Name: ParamAmount, Default: 1, Neutral: 0, Min: 0, Max: 5, Clamped: true},
		},
	},
	{
		ID: "sepia", Name: "Sepia", Category: CategoryStylize,
		Parameters: []Parameter{
			{Name: ParamAmount, Default: 100, Neutral: 0, Min: 0, Max: 100, Clamped: true},
		},
	},
	{
		ID: "vignette", Name: "Vignette", Category: CategoryStylize,
		Parameters: []Parameter{
			{Name: "angle", Default: 0.5, Neutral: 0, Min: 0, Max: 1.5708, Clamped: true},
		},
	},
	{
		ID: IDCrossDissolve, Name: "Cross Dissolve", Category: CategoryTransition,
		Parameters: []Parameter{
			{Name: ParamDuration, Default: 1, Neutral: 0, Min: 0.1, Max: 10, Clamped: true},
		},
	},
	{
		ID: IDFadeIn, Name: "Fade In", Category: CategoryTransition,
		Parameters: []Parameter{
			{Name: ParamDuration, Default: 1, Neutral: 0, Min: 0.1, Max: 10, Clamped: true},
		},
	},
	{
		ID: IDFadeOut, Name: "Fade Out", Category: CategoryTransition,
		Parameters: []Parameter{
			{Name: ParamStart, Default: 0, Neutral: 0},
			{Name: ParamDuration, Default: 1, Neutral: 0, Min: 0.1, Max: 10, Clamped: true},
		},
	},
	{
		ID: IDPlaybackSpeed, Name: "Playback Speed", Category: CategoryPlayback,
		Parameters: []Parameter{
			{Name: ParamRate, Default: 1, Neutral: 1, Min: 0.25, Max: 4, Clamped: true},
		},
	},
	{
		ID: IDVolume, Name: "Volume", Category: CategoryAudio,
		Parameters: []Parameter{
			{Name: ParamVolume, Default: 100, Neutral: 100, Min: 0, Max: 400, Clamped: true},
		},
	},
}

var catalogIndex = buildIndex()

func buildIndex() map[string]Descriptor {
	index := make(map[string]Descriptor, len(catalog))
	for _, descriptor := range catalog {
		index[descriptor.ID] = descriptor
	}
	return index
}
