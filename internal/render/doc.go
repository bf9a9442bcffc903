// Package render exports a timeline through ffmpeg.
//
// The filter-graph builder turns each video clip into a trimmed, effected,
// and conformed chain, folds the chains with concat or xfade, and mixes the
// audio track on top. Codec tables translate the configured codec, quality,
// and preset into encoder arguments. The renderer stages output in the
// staging directory, parses ffmpeg progress, and verify-copies the finished
// file into the export directory under a sanitized, collision-free name.
//
// Animated parameters render at their resting value; fades, dissolves, and
// speed are expressed natively as time-based filters.
package render
