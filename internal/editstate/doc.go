// Package editstate captures and restores per-parameter edit state. A capture
// taken before a mutating edit holds either the full ordered keyframe list or
// the single static value, and restoring it reproduces the earlier state
// exactly: same times, values, interpolation curves, and animation flag.
package editstate
