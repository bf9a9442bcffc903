package config

const (
	defaultDataDir              = "~/.local/share/splice"
	defaultLogDir               = "~/.local/share/splice/logs"
	defaultStagingDir           = "~/.local/share/splice/staging"
	defaultOutputDir            = "~/exports"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultInterpolation        = "bezier"
	defaultZoomInPercent        = 150
	defaultHistoryLimit         = 0
	defaultRenderCodec          = "h264"
	defaultRenderQuality        = "high"
	defaultRenderPreset         = "medium"
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			StagingDir: defaultStagingDir,
		},
		Editing: Editing{
			DefaultInterpolation: defaultInterpolation,
			ZoomInPercent:        defaultZoomInPercent,
			HistoryLimit:         defaultHistoryLimit,
		},
		Render: Render{
			Codec:     defaultRenderCodec,
			Quality:   defaultRenderQuality,
			Preset:    defaultRenderPreset,
			OutputDir: defaultOutputDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
