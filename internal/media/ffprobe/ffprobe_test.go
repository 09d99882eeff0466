package ffprobe

import (
	"math"
	"testing"
)

func TestParseAndHelpers(t *testing.T) {
	data := []byte(`{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "ac3", "channels": 6, "tags": {"LANGUAGE": "jpn", "title": "Main"}, "disposition": {"default": 1}},
    {"index": 2, "codec_type": "audio", "codec_name": "aac", "channels": 2, "tags": {"language": "eng"}}
  ],
  "format": {"duration": "123.45", "format_name": "matroska,webm"}
}`)
	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	audio := result.AudioStreams()
	if len(audio) != 2 || audio[0].Index != 1 || audio[1].Index != 2 {
		t.Fatalf("audio streams = %+v", audio)
	}
	if got := audio[0].Tag("language"); got != "jpn" {
		t.Fatalf("Tag(language) = %q", got)
	}
	if got := audio[1].Tag("title", "handler_name"); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
	if audio[0].Disposition["default"] != 1 {
		t.Fatalf("disposition = %v", audio[0].Disposition)
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestDurationHandlesInvalidNumbers(t *testing.T) {
	if got := (Result{Format: Format{Duration: "bad"}}).DurationSeconds(); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
	if got := (Result{}).DurationSeconds(); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}
