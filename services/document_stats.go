package services

import (
	"strings"
	"unicode/utf8"

	"doc-qa-assistant/models"
)

// ComputeStats derives size metrics from extracted text. The token estimate
// is characters/4, not a real tokenization.
func ComputeStats(text string) models.DocumentStats {
	chars := utf8.RuneCountInString(text)

	paragraphs := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	return models.DocumentStats{
		Characters:      chars,
		Words:           len(strings.Fields(text)),
		Paragraphs:      paragraphs,
		EstimatedTokens: chars / 4,
	}
}
