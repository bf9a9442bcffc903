// Package main hosts the Splice CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into project
// store operations, edit dispatches, ffmpeg exports, media inspection, and
// configuration scaffolding. It centralizes configuration resolution, the
// per-database editor lock, and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
// That separation keeps the CLI declarative while the heavy lifting lives in
// the engine packages.
package main
