// Package safety provides the chat content filter. Filtered utterances
// still reach the stream, masked, preceded by a content_filtered event
// that preserves the original for moderation.
package safety

import (
	"strings"
)

// PolicyHateOrSwear is the policy tag attached to filtered content
const PolicyHateOrSwear = "hate_or_swear"

const mask = "***"

// defaultWords is the built-in block list
var defaultWords = []string{
	"damn", "shit", "fuck", "bastard",
	"시발", "씨발", "개새끼", "병신", "지랄",
}

// Result is the outcome of filtering one utterance
type Result struct {
	Filtered bool
	Shown    string
}

// Filter masks blocked words in chat text
type Filter struct {
	words []string
}

// New creates a filter with the built-in block list plus any extras
func New(extra ...string) *Filter {
	words := make([]string, 0, len(defaultWords)+len(extra))
	words = append(words, defaultWords...)
	words = append(words, extra...)
	return &Filter{words: words}
}

// Apply masks every blocked word in text, case-insensitively
func (f *Filter) Apply(text string) Result {
	shown := text
	filtered := false

	lower := strings.ToLower(shown)
	for _, word := range f.words {
		for {
			idx := strings.Index(lower, word)
			if idx < 0 {
				break
			}
			shown = shown[:idx] + mask + shown[idx+len(word):]
			lower = lower[:idx] + mask + lower[idx+len(word):]
			filtered = true
		}
	}

	return Result{Filtered: filtered, Shown: shown}
}
