package config

import (
	"errors"
	"fmt"
	"strings"
)

var validInterpolations = []string{"linear", "bezier", "hold", "ease-in", "ease-out"}

var validCodecs = []string{"h264", "h265", "vp9", "prores"}

var validQualities = []string{"low", "medium", "high", "lossless"}

var validPresets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow",
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditing(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEditing() error {
	if !containsString(validInterpolations, c.Editing.DefaultInterpolation) {
		return fmt.Errorf("editing.default_interpolation must be one of %s", strings.Join(validInterpolations, ", "))
	}
	if c.Editing.ZoomInPercent <= 0 {
		return errors.New("editing.zoom_in_percent must be greater than zero")
	}
	if c.Editing.HistoryLimit < 0 {
		return errors.New("editing.history_limit must be zero (unlimited) or positive")
	}
	return nil
}

func (c *Config) validateRender() error {
	if !containsString(validCodecs, c.Render.Codec) {
		return fmt.Errorf("render.codec must be one of %s", strings.Join(validCodecs, ", "))
	}
	if !containsString(validQualities, c.Render.Quality) {
		return fmt.Errorf("render.quality must be one of %s", strings.Join(validQualities, ", "))
	}
	if !containsString(validPresets, c.Render.Preset) {
		return fmt.Errorf("render.preset must be one of %s", strings.Join(validPresets, ", "))
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if !c.Notifications.Enabled {
		return nil
	}
	topic := c.Notifications.TopicURL
	if topic == "" {
		return errors.New("notifications.topic_url must be set when notifications are enabled")
	}
	if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return errors.New("notifications.topic_url must start with http:// or https://")
	}
	return nil
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
