// Package editor owns one editing session: the live project, the editing
// surface bound to it, the action dispatcher, and the undo/redo stacks.
// Every edit runs on a single logical thread; the engine serializes callers
// so actions never interleave.
package editor
