package night

import (
	"regexp"
	"strings"
)

// Reflection is the structured view of a night entry's reflection text.
type Reflection struct {
	Learned  string `json:"learned"`
	Grateful string `json:"grateful"`
	Mood     string `json:"mood"`
	Freeform string `json:"freeform"`
}

// Label patterns match case-insensitively and capture to the end of their
// line (`.` does not cross newlines).
var (
	learnedRe  = regexp.MustCompile(`(?i)Learned:(.*)`)
	gratefulRe = regexp.MustCompile(`(?i)Grateful:(.*)`)
	moodRe     = regexp.MustCompile(`(?i)Mood:(.*)`)
	blankGapRe = regexp.MustCompile(`\n\s*\n`)
)

// ParseReflection extracts the labeled lines from a raw reflection block.
// Everything after the first blank line is the freeform remainder. Mood
// defaults to "3" only when the label is absent; a blank labeled line keeps
// the empty value. Returns nil for empty input.
func ParseReflection(raw string) *Reflection {
	if raw == "" {
		return nil
	}

	r := &Reflection{Mood: "3"}
	if m := learnedRe.FindStringSubmatch(raw); m != nil {
		r.Learned = strings.TrimSpace(m[1])
	}
	if m := gratefulRe.FindStringSubmatch(raw); m != nil {
		r.Grateful = strings.TrimSpace(m[1])
	}
	if m := moodRe.FindStringSubmatch(raw); m != nil {
		r.Mood = strings.TrimSpace(m[1])
	}

	if parts := blankGapRe.Split(raw, -1); len(parts) > 1 {
		r.Freeform = strings.TrimSpace(strings.Join(parts[1:], "\n\n"))
	}
	return r
}
