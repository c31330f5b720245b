// Package chunker splits raw text into length-bounded, sentence-aligned chunks.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the chunk length bound in characters.
const DefaultMaxChars = 480

// Sentence terminators are ASCII, so byte offsets from the regexp are safe
// even in multi-byte text.
var sentenceBoundary = regexp.MustCompile(`[.!?][ \t\r\n]+`)

// Sentences splits raw text on sentence-terminator boundaries, keeping the
// terminator with its sentence. Empty sentences are dropped.
func Sentences(raw string) []string {
	var out []string
	rest := raw
	for {
		loc := sentenceBoundary.FindStringIndex(rest)
		if loc == nil {
			break
		}
		// The match starts at the terminator; the sentence ends right after it.
		if s := strings.TrimSpace(rest[:loc[0]+1]); s != "" {
			out = append(out, s)
		}
		rest = rest[loc[1]:]
	}
	if s := strings.TrimSpace(rest); s != "" {
		out = append(out, s)
	}
	return out
}

// Split greedily packs the sentences of raw into chunks of at most maxChars
// characters, joining sentences with a single space. A single sentence longer
// than the bound becomes its own oversized chunk: content is never dropped.
func Split(raw string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var chunks []string
	var buf []string
	curLen := 0

	for _, s := range Sentences(raw) {
		n := utf8.RuneCountInString(s)
		if curLen+n+1 <= maxChars {
			buf = append(buf, s)
			curLen += n + 1
			continue
		}
		if len(buf) > 0 {
			chunks = append(chunks, strings.Join(buf, " "))
		}
		buf = []string{s}
		curLen = n
	}
	if len(buf) > 0 {
		chunks = append(chunks, strings.Join(buf, " "))
	}

	return chunks
}
