package subtitles

import (
	"bufio"
	"fmt"
	"io"

	"cuesync/internal/language"
)

// Encode writes cues in the requested format.
func Encode(w io.Writer, format Format, lang string, cues []Cue) error {
	switch format {
	case FormatSRT:
		return WriteSRT(w, cues)
	case FormatVTT, "":
		return WriteVTT(w, lang, cues)
	default:
		return fmt.Errorf("unsupported subtitle format %q", format)
	}
}

// WriteVTT writes a WebVTT document with a captions header.
func WriteVTT(w io.Writer, lang string, cues []Cue) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "WEBVTT\nKind: captions\nLanguage: %s\n", language.Tag(lang))
	for _, cue := range cues {
		fmt.Fprintf(bw, "\n%s --> %s\n%s\n",
			formatTimestamp(cue.Start, '.'), formatTimestamp(cue.End, '.'), cue.Text)
	}
	return bw.Flush()
}

// WriteSRT writes a SubRip document with 1-based cue numbers.
func WriteSRT(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	for i, cue := range cues {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n", i+1,
			formatTimestamp(cue.Start, ','), formatTimestamp(cue.End, ','), cue.Text)
	}
	return bw.Flush()
}
