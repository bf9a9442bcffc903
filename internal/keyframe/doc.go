// Package keyframe realizes requested parameter changes on clips, either as a
// single static value or as a two-keyframe animation ramp. Both shapes run
// through one code path: a request whose start and end values match collapses
// to the static form.
package keyframe
