// Package services defines shared utilities consumed by the alignment pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and batch job names
//     for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent run statuses (failed vs review).
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform.
package services
