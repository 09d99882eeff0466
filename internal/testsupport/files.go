package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"cuesync/internal/transcript"
)

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTranscript saves a transcription as JSON at path.
func WriteTranscript(t testing.TB, path string, tr transcript.Transcription) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := transcript.Save(path, tr); err != nil {
		t.Fatalf("save transcript %s: %v", path, err)
	}
}

// Words builds a single-segment transcription from words laid out back to
// back, each lasting span time units starting at 0. Words after the first
// get a leading space.
func Words(language string, span int64, words ...string) transcript.Transcription {
	tokens := make([]transcript.Token, 0, len(words))
	var at int64
	for i, word := range words {
		text := word
		if i > 0 {
			text = " " + word
		}
		tokens = append(tokens, transcript.Token{Probability: 1, Start: at, End: at + span, Text: text})
		at += span
	}
	return transcript.Transcription{Language: language, Segments: [][]transcript.Token{tokens}}
}
