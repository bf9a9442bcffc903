// Package effects is the static catalog of effect descriptors: every effect
// the engine can apply, with its canonical parameter names, defaults, and
// valid ranges.
//
// The catalog is consulted by the synchronizer (to materialize built-in
// transform entries) and by the apply-effect path (to fill in defaults for
// omitted parameters and clamp supplied ones). Registering a new effect is
// purely additive; the dispatcher never switches on effect IDs.
package effects
