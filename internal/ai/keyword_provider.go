package ai

import (
	"context"
	"strings"
)

const demoNote = "\n\n(Note: This is a demo response. Configure OPENAI_API_KEY for full AI capabilities.)"

const (
	matchIntro = "Based on the document, here's what I found:\n\n"
	noMatch    = "I couldn't find specific information about that in the document. " +
		"Try rephrasing your question or asking about different topics covered in the document."
)

const maxMatchedSentences = 3

var stopWords = map[string]struct{}{
	"what": {}, "is": {}, "the": {}, "a": {}, "an": {}, "how": {}, "why": {}, "when": {},
	"where": {}, "who": {}, "does": {}, "do": {}, "can": {}, "could": {}, "would": {}, "should": {},
}

// KeywordProvider answers without a remote service by quoting context
// sentences that share words with the question.
type KeywordProvider struct{}

func NewKeywordProvider() *KeywordProvider { return &KeywordProvider{} }

func (p *KeywordProvider) Name() string { return string(ModeMock) }

// AnswerQuestion returns up to three context sentences, in document order,
// containing any non-stop-word from the question as a substring.
func (p *KeywordProvider) AnswerQuestion(_ context.Context, question, docContext string) string {
	words := questionWords(question)

	var relevant []string
	for _, sentence := range strings.Split(strings.ReplaceAll(docContext, "\n", " "), ".") {
		if len(relevant) == maxMatchedSentences {
			break
		}
		lower := strings.ToLower(sentence)
		for _, w := range words {
			if strings.Contains(lower, w) {
				relevant = append(relevant, strings.TrimSpace(sentence))
				break
			}
		}
	}

	if len(relevant) == 0 {
		return noMatch + demoNote
	}
	return matchIntro + strings.Join(relevant, ". ") + "." + demoNote
}

func questionWords(question string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}
