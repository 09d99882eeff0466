// Package main hosts the cuesync CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the logger and
// the optional run history store, and hands work to the internal packages:
// align and batch drive the pipeline, transcribe runs WhisperX, transcript
// inspects and imports recognizer output, history lists past runs, and
// config scaffolds and checks the configuration file.
//
// Keep this package lean: add behavior to the internal packages first, then
// surface it here through commands or flags.
package main
