package services

import "strings"

const (
	DefaultChunkSize    = 2000
	DefaultChunkOverlap = 200
)

// sentenceSeparators are tried in order when no paragraph break is usable.
var sentenceSeparators = []string{". ", "! ", "? ", "\n"}

// ChunkText splits text into overlapping chunks, preferring to end each chunk
// on a paragraph break, then a sentence end, then a hard cut at chunkSize.
// Sizes and offsets count runes.
//
// Text no longer than chunkSize comes back as a single unmodified chunk.
// Longer text yields trimmed chunks where each window starts overlap runes
// before the previous window ended, as long as that still moves forward, until
// a window would start at or past the end of the text.
func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	n := len(runes)
	if n <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < n {
		end := start + chunkSize
		if end < n {
			end = boundaryBefore(runes, start, end, start+chunkSize/2)
		}

		chunks = append(chunks, strings.TrimSpace(string(runes[start:min(end, n)])))

		// Move forward with overlap; end is left unclamped here, so a final
		// window that stops short of the text end still yields a tail chunk
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// boundaryBefore returns where a window [start, end) should stop: just after
// the last paragraph break or sentence separator that begins past mid, or end
// itself when none does.
func boundaryBefore(runes []rune, start, end, mid int) int {
	if pos := lastIndexRunes(runes, start, end, "\n\n"); pos > mid {
		return pos + 2
	}
	for _, sep := range sentenceSeparators {
		if pos := lastIndexRunes(runes, start, end, sep); pos > mid {
			return pos + len([]rune(sep))
		}
	}
	return end
}

// lastIndexRunes finds the last occurrence of sep lying entirely inside
// runes[start:end] and returns its absolute offset, or -1.
func lastIndexRunes(runes []rune, start, end int, sep string) int {
	needle := []rune(sep)
	for i := end - len(needle); i >= start; i-- {
		match := true
		for j, r := range needle {
			if runes[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
