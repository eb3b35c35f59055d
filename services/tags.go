package services

import (
	"github.com/NomadCrew/feedback-intake/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeTags returns the tags uppercased with full Unicode case mapping,
// in their original order. The input slice is not modified.
func NormalizeTags(tags []string) []string {
	// A Caser keeps state between calls and must not be shared across goroutines.
	upper := cases.Upper(language.Und)

	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = upper.String(tag)
	}
	return out
}

// ProcessFeedback returns the normalized form of a validated submission.
// Only the tags change.
func ProcessFeedback(fb types.Feedback) types.Feedback {
	fb.Tags = NormalizeTags(fb.Tags)
	return fb
}
