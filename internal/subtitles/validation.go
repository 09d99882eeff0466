package subtitles

import "fmt"

// Issue codes reported by Validate.
const (
	IssueEmpty            = "empty_subtitle_file"
	IssueNonMonotonic     = "non_monotonic"
	IssueNegativeDuration = "negative_duration"
)

// Validate checks cues for format problems. An empty result means the cues
// passed.
func Validate(cues []Cue) []string {
	if len(cues) == 0 {
		return []string{IssueEmpty}
	}
	var issues []string
	for i, cue := range cues {
		if cue.End < cue.Start {
			issues = append(issues, fmt.Sprintf("%s: cue=%d", IssueNegativeDuration, i+1))
		}
		if i > 0 && cue.Start < cues[i-1].End {
			issues = append(issues, fmt.Sprintf("%s: cue=%d", IssueNonMonotonic, i+1))
		}
	}
	return issues
}
