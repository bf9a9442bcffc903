// Package timeline defines the project data model mutated by the edit engine:
// projects, tracks, clips, transforms, applied effects, and keyframes.
//
// The model is a plain object tree with value semantics at its edges: Clone
// produces a fully independent deep copy and Equal compares two trees
// structurally. Those two operations underpin undo/redo, which snapshots the
// tree before and after every edit and only records commands that changed it.
//
// Nothing in this package talks to the editing host; host-visible state is
// projected from this model by the synchronizer and the dispatcher.
package timeline
