// Package ffprobe runs ffprobe against a media file and decodes its JSON
// stream listing.
//
// The transcribe command uses Result.AudioStreams to pick which audio track
// WhisperX hears; Stream.Tag reads language and title tags regardless of key
// case.
package ffprobe
