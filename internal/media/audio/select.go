package audio

import (
	"strconv"
	"strings"

	"cuesync/internal/language"
	"cuesync/internal/media/ffprobe"
)

// Selection describes the audio stream chosen for transcription.
type Selection struct {
	Stream ffprobe.Stream
	// Ordinal is the stream's position among audio streams, or -1 when the
	// container has no audio.
	Ordinal int
	// Language is the stream's ISO 639-1 language, empty when untagged.
	Language string
	// Reason explains the choice for decision logs.
	Reason string
}

// Found reports whether an audio stream was selected.
func (s Selection) Found() bool {
	return s.Ordinal >= 0
}

// MapSpec returns the ffmpeg -map argument for the selected stream.
func (s Selection) MapSpec() string {
	return "0:a:" + strconv.Itoa(max(s.Ordinal, 0))
}

// Label returns a human-readable summary of the selected stream.
func (s Selection) Label() string {
	if !s.Found() {
		return ""
	}
	return formatStreamSummary(s.Stream)
}

// Select returns the audio stream that most likely carries the main dialogue
// in lang. An empty lang accepts every track.
func Select(streams []ffprobe.Stream, lang string) Selection {
	candidates := buildCandidates(streams)
	if len(candidates) == 0 {
		return Selection{Ordinal: -1, Reason: "no audio streams"}
	}

	want := language.ToISO2(lang)
	pool, reason := candidates, "first suitable track"
	if want != "" {
		if matching := candidates.withLanguage(want); len(matching) > 0 {
			pool, reason = matching, "language match"
		} else {
			reason = "no track tagged " + want
		}
	}
	if regular := pool.regular(); len(regular) > 0 {
		pool = regular
	}

	best := choosePrimary(pool)
	return Selection{
		Stream:   best.stream,
		Ordinal:  best.order,
		Language: best.language,
		Reason:   reason,
	}
}

// candidate captures the derived metadata used for audio ranking.
type candidate struct {
	stream         ffprobe.Stream
	order          int
	language       string
	title          string
	secondary      bool
	channels       int
	defaultFlagged bool
}

type candidateList []candidate

func (c candidateList) withLanguage(lang string) candidateList {
	result := make(candidateList, 0, len(c))
	for _, cand := range c {
		if cand.language == lang {
			result = append(result, cand)
		}
	}
	return result
}

func (c candidateList) regular() candidateList {
	result := make(candidateList, 0, len(c))
	for _, cand := range c {
		if !cand.secondary {
			result = append(result, cand)
		}
	}
	return result
}

func choosePrimary(candidates candidateList) candidate {
	best := candidates[0]
	bestScore := scorePrimary(best)
	for i := 1; i < len(candidates); i++ {
		score := scorePrimary(candidates[i])
		if score > bestScore {
			best = candidates[i]
			bestScore = score
		}
	}
	return best
}

func scorePrimary(cand candidate) float64 {
	score := 0.0

	if cand.defaultFlagged {
		score += 100
	}

	// Main mixes usually carry the most channels; the track is downmixed
	// to mono before recognition either way.
	switch {
	case cand.channels >= 6:
		score += 30
	case cand.channels >= 2:
		score += 20
	case cand.channels >= 1:
		score += 10
	}

	// Prefer earlier tracks when scores tie.
	score -= float64(cand.order) * 0.1

	return score
}

func buildCandidates(streams []ffprobe.Stream) candidateList {
	result := make(candidateList, 0)
	order := 0
	for _, stream := range streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		cand := candidate{
			stream:         stream,
			order:          order,
			language:       language.ToISO2(stream.Tag("language", "language_ietf", "lang")),
			title:          strings.ToLower(stream.Tag("title", "handler_name")),
			channels:       channelCount(stream),
			defaultFlagged: stream.Disposition["default"] == 1,
		}
		cand.secondary = isSecondary(stream, cand.title)
		result = append(result, cand)
		order++
	}
	return result
}

func isSecondary(stream ffprobe.Stream, normalizedTitle string) bool {
	if stream.Disposition["comment"] == 1 || stream.Disposition["visual_impaired"] == 1 {
		return true
	}
	for _, keyword := range []string{"commentary", "audio description", "descriptive"} {
		if strings.Contains(normalizedTitle, keyword) {
			return true
		}
	}
	return false
}

func channelCount(stream ffprobe.Stream) int {
	if stream.Channels > 0 {
		return stream.Channels
	}
	layout := strings.ToLower(strings.TrimSpace(stream.ChannelLayout))
	switch {
	case layout == "":
		return 0
	case strings.HasPrefix(layout, "7.1"):
		return 8
	case strings.HasPrefix(layout, "5.1"):
		return 6
	case strings.HasPrefix(layout, "stereo"), strings.HasPrefix(layout, "2.0"):
		return 2
	case strings.HasPrefix(layout, "mono"), strings.HasPrefix(layout, "1.0"):
		return 1
	}
	return 0
}

func formatStreamSummary(stream ffprobe.Stream) string {
	parts := make([]string, 0, 4)
	if lang := stream.Tag("language"); lang != "" {
		parts = append(parts, strings.ToLower(lang))
	}
	codec := stream.CodecLong
	if codec == "" {
		codec = stream.CodecName
	}
	if codec != "" {
		parts = append(parts, codec)
	}
	if stream.Channels > 0 {
		parts = append(parts, strconv.Itoa(stream.Channels)+"ch")
	}
	if title := stream.Tag("title"); title != "" {
		parts = append(parts, title)
	}
	if len(parts) == 0 {
		return "audio"
	}
	return strings.Join(parts, " | ")
}
