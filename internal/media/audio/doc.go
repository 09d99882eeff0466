// Package audio picks the audio stream to transcribe from a media container.
//
// Selection prefers tracks tagged with the requested language (falling back
// to every audio track when none match), skips commentary and audio
// description tracks when a regular track exists, and then ranks by the
// default disposition flag, channel count, and container order.
//
// Primary entry point:
//   - Select: analyzes streams and returns the chosen stream with the
//     ordinal ffmpeg expects in "-map 0:a:N"
package audio
