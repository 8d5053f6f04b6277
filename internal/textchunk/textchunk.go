// Package textchunk splits long text into sentence-bounded segments that fit a
// character budget, for per-segment translation and summarization calls.
package textchunk

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the budget used by the translator and the summarizer.
const DefaultMaxChars = 3000

// Separator joins sentences inside a chunk and processed chunks afterwards.
const Separator = " "

// A leading punctuation run stays with the sentence that follows it.
var sentenceRe = regexp.MustCompile(`[.!?]*[^.!?]+[.!?]*`)

// Len reports the length of s in characters (runes).
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Sentences splits text on terminal punctuation, keeping the punctuation with
// its sentence and dropping blank fragments.
func Sentences(text string) []string {
	var out []string
	for _, m := range sentenceRe.FindAllString(text, -1) {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Split packs sentences greedily into chunks of at most maxChars characters.
// Text that already fits is returned as a single trimmed chunk. A sentence
// longer than maxChars becomes a chunk of its own.
func Split(text string, maxChars int) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if Len(trimmed) <= maxChars {
		return []string{trimmed}
	}

	var (
		chunks  []string
		current string
	)
	for _, sentence := range Sentences(trimmed) {
		candidate := sentence
		if current != "" {
			candidate = current + Separator + sentence
		}

		if Len(candidate) > maxChars && current != "" {
			chunks = append(chunks, current)
			current = sentence
			continue
		}
		current = candidate
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}
