// Package preflight provides the readiness checks behind "splice doctor":
// whether ffmpeg and ffprobe resolve, whether the data, log, staging, and
// output directories exist and are writable, whether the project store opens
// and passes its integrity check, and whether the staging volume has room to
// encode into.
//
// Each check returns a Result the CLI renders as one status line; nothing
// here mutates state beyond opening the store (which applies pending
// migrations the same way every other store consumer does).
package preflight
