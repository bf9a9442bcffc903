// Package notifications delivers editing and render milestones via ntfy.
//
// The default implementation publishes to the topic configured in config.toml
// and gracefully degrades to a no-op when notifications are disabled or no
// topic is set. Long-running operations such as exports emit through the
// Service interface so callers never carry HTTP glue themselves.
package notifications
