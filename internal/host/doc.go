// Package host exposes the editing surface that edit operations go through.
// The engine addresses parameters by component and name instead of reaching
// into the timeline model directly, so keyframe placement and effect insertion
// can be validated, staged transactionally, and reported per clip when a batch
// partially fails.
package host
