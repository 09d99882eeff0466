package subtitles

import (
	"fmt"
	"os"
	"strings"
)

// ParseCues reads an SRT or WebVTT file.
func ParseCues(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes SRT or WebVTT content. Header blocks, NOTE blocks, cue
// numbers, and cue identifiers are skipped; timing settings after the end
// timestamp are ignored.
func Parse(content string) ([]Cue, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var cues []Cue
	for block := range strings.SplitSeq(content, "\n\n") {
		lines := strings.Split(strings.Trim(block, "\n"), "\n")
		timing := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 {
			continue
		}
		startText, endText, _ := strings.Cut(lines[timing], "-->")
		if fields := strings.Fields(endText); len(fields) > 0 {
			endText = fields[0]
		}
		start, err := parseTimestamp(startText)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", len(cues)+1, err)
		}
		end, err := parseTimestamp(endText)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", len(cues)+1, err)
		}
		cues = append(cues, Cue{
			Start: start,
			End:   end,
			Text:  strings.Join(lines[timing+1:], "\n"),
		})
	}
	return cues, nil
}
