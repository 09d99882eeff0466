package whisperx

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	langpkg "cuesync/internal/language"
	"cuesync/internal/services"
	"cuesync/internal/transcript"
)

// Word represents a single word with timing from WhisperX output. WhisperX
// omits timing for words it could not align (digits, symbols).
type Word struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
	Score *float64 `json:"score,omitempty"`
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

// Payload is the JSON document WhisperX writes.
type Payload struct {
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// unscriptedLanguages do not separate words with spaces.
var unscriptedLanguages = map[string]bool{"ja": true, "zh": true, "th": true}

// LoadTranscription reads a WhisperX JSON file and converts it. fallbackLanguage
// is used when the file does not name a language.
func LoadTranscription(path, fallbackLanguage string) (transcript.Transcription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return transcript.Transcription{}, services.Wrap(services.ErrNotFound, "whisperx", "read", "WhisperX output missing", err)
	}
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return transcript.Transcription{}, services.Wrap(services.ErrValidation, "whisperx", "decode", fmt.Sprintf("WhisperX output %s is not valid JSON", path), err)
	}
	if payload.Language == "" {
		payload.Language = fallbackLanguage
	}
	return Convert(payload), nil
}

// Convert maps WhisperX segments onto a Transcription in 10 ms units. Words
// without timing inherit the previous word's end and the next timed word's
// start. Segments without words become a single token.
func Convert(payload Payload) transcript.Transcription {
	lang := langpkg.ToISO2(payload.Language)
	if lang == "" {
		lang = payload.Language
	}
	spaced := !unscriptedLanguages[lang]

	out := transcript.Transcription{Language: lang, Segments: make([][]transcript.Token, 0, len(payload.Segments))}
	for _, segment := range payload.Segments {
		segStart, segEnd := toUnits(segment.Start), toUnits(segment.End)
		if len(segment.Words) == 0 {
			if segment.Text == "" {
				continue
			}
			out.Segments = append(out.Segments, []transcript.Token{{
				Probability: 1,
				Start:       segStart,
				End:         max(segEnd, segStart),
				Text:        segment.Text,
			}})
			continue
		}

		tokens := make([]transcript.Token, 0, len(segment.Words))
		previousEnd := segStart
		for i, word := range segment.Words {
			start := previousEnd
			if word.Start != nil {
				start = toUnits(*word.Start)
			}
			end := nextTimedStart(segment.Words[i+1:], segEnd)
			if word.End != nil {
				end = toUnits(*word.End)
			}
			end = max(end, start)

			text := word.Word
			if spaced && i > 0 {
				text = " " + text
			}
			var probability float32
			if word.Score != nil {
				probability = float32(*word.Score)
			}
			tokens = append(tokens, transcript.Token{Probability: probability, Start: start, End: end, Text: text})
			previousEnd = end
		}
		out.Segments = append(out.Segments, tokens)
	}
	return out
}

func nextTimedStart(words []Word, fallback int64) int64 {
	for _, word := range words {
		if word.Start != nil {
			return toUnits(*word.Start)
		}
	}
	return fallback
}

func toUnits(seconds float64) int64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return int64(math.Round(seconds * 100))
}
