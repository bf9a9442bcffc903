// Package transformsync keeps a clip's transform fields and its effect list in
// lockstep. Each transform-backed field owns exactly one reserved entry in the
// effect list, created when the field first leaves its default, updated in
// place afterward, and removed once the field returns to default. The mapping
// runs in both directions so transform queries stay correct no matter which
// edit path mutated the clip.
package transformsync
