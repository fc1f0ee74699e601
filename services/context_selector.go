package services

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxContextChars = 8000
	maxContextChunks       = 4
)

// SelectContext picks the text handed to the answering provider: the whole
// document when it fits in maxContextChars, otherwise the first four chunks.
// Selection is positional only.
func SelectContext(fullText string, chunks []string, maxContextChars int) string {
	if maxContextChars <= 0 {
		maxContextChars = DefaultMaxContextChars
	}
	if utf8.RuneCountInString(fullText) <= maxContextChars {
		return fullText
	}

	if len(chunks) > maxContextChunks {
		chunks = chunks[:maxContextChunks]
	}
	return strings.Join(chunks, "\n\n")
}
