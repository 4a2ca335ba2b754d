// Package metadata mines searchable capability and tag keywords out of
// parsed OpenAPI documents.
package metadata

import (
	"strings"
	"unicode/utf8"
)

// Tokenizer splits free text into the keywords worth indexing.
type Tokenizer struct {
	stop     map[string]bool
	minLen   int
	maxWords int
	trim     string
}

// NewTokenizer builds a tokenizer that keeps words longer than minLen
// runes, trims the cutset from both ends, drops stop words and caps the
// result at maxWords (0 means unlimited).
func NewTokenizer(stop map[string]bool, minLen, maxWords int, trim string) *Tokenizer {
	return &Tokenizer{stop: stop, minLen: minLen, maxWords: maxWords, trim: trim}
}

// Tokens returns the surviving words of text in order of appearance.
// The length check runs on the raw word; punctuation is trimmed before
// the stop list is consulted, and words that trim away to nothing are
// dropped.
func (t *Tokenizer) Tokens(text string) []string {
	var out []string
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) <= t.minLen {
			continue
		}
		if t.trim != "" {
			word = strings.Trim(word, t.trim)
			if word == "" {
				continue
			}
		}
		if t.stop[word] {
			continue
		}
		out = append(out, word)
		if t.maxWords > 0 && len(out) == t.maxWords {
			break
		}
	}
	return out
}

func stopSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
