package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"cuesync/internal/fileutil"
	"cuesync/internal/services"
)

// Token is one recognizer token. Start and End are in 10 ms units.
type Token struct {
	Probability float32 `json:"probability"`
	Start       int64   `json:"start"`
	End         int64   `json:"end"`
	Text        string  `json:"text"`
}

// Transcription is the recognizer output for one media file.
type Transcription struct {
	Language string    `json:"language"`
	Segments [][]Token `json:"segments"`
}

// TokenCount returns the number of tokens across all segments.
func (t Transcription) TokenCount() int {
	n := 0
	for _, segment := range t.Segments {
		n += len(segment)
	}
	return n
}

// Text joins all token texts, one line per segment.
func (t Transcription) Text() string {
	var buf bytes.Buffer
	for _, segment := range t.Segments {
		for _, token := range segment {
			buf.WriteString(token.Text)
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Load reads a transcription JSON file.
func Load(path string) (Transcription, error) {
	var t Transcription
	data, err := os.ReadFile(path)
	if err != nil {
		return t, services.Wrap(services.ErrNotFound, "transcript", "read", "Failed to read transcript", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, services.Wrap(services.ErrValidation, "transcript", "decode", fmt.Sprintf("Transcript %s is not valid JSON", path), err)
	}
	if err := t.Validate(); err != nil {
		return t, services.Wrap(services.ErrValidation, "transcript", "validate", fmt.Sprintf("Transcript %s is malformed", path), err)
	}
	return t, nil
}

// Save writes t as JSON to path.
func Save(path string, t Transcription) error {
	if t.Segments == nil {
		t.Segments = [][]Token{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := fileutil.ReplaceFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Validate rejects tokens with negative or inverted time spans.
func (t Transcription) Validate() error {
	for si, segment := range t.Segments {
		for ti, token := range segment {
			if token.Start < 0 || token.End < token.Start {
				return fmt.Errorf("segment %d token %d: invalid span %d..%d", si, ti, token.Start, token.End)
			}
		}
	}
	return nil
}
