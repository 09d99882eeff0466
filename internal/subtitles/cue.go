package subtitles

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cuesync/internal/cues"
)

// TimeUnit is the duration of one resolver time step.
const TimeUnit = 10 * time.Millisecond

// Format is a cue file format.
type Format string

const (
	FormatVTT Format = "vtt"
	FormatSRT Format = "srt"
)

// Cue is one timed subtitle entry.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// FromTimedLines converts resolver output to cues.
func FromTimedLines(lines []cues.TimedLine) []Cue {
	out := make([]Cue, len(lines))
	for i, line := range lines {
		out[i] = Cue{
			Start: time.Duration(line.Start) * TimeUnit,
			End:   time.Duration(line.End) * TimeUnit,
			Text:  line.Text,
		}
	}
	return out
}

// ParseFormat validates a format name such as "vtt", ".srt", or "SRT".
func ParseFormat(value string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), ".")) {
	case FormatVTT:
		return FormatVTT, nil
	case FormatSRT:
		return FormatSRT, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format %q", value)
	}
}

// FormatForPath picks the format from the file extension, falling back to
// fallback when the extension is not a cue format.
func FormatForPath(path string, fallback Format) Format {
	if format, err := ParseFormat(filepath.Ext(path)); err == nil {
		return format
	}
	return fallback
}
