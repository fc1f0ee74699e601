package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordProvider_AnswerQuestion(t *testing.T) {
	const paris = "Paris is the capital of France. It is known for the Eiffel Tower."

	tests := []struct {
		name     string
		question string
		context  string
		want     string
	}{
		{
			name:     "matching sentence is quoted",
			question: "What is the capital of France?",
			context:  paris,
			want: "Based on the document, here's what I found:\n\nParis is the capital of France." +
				"\n\n(Note: This is a demo response. Configure OPENAI_API_KEY for full AI capabilities.)",
		},
		{
			name:     "no shared keywords",
			question: "Who painted the Mona Lisa?",
			context:  paris,
			want: "I couldn't find specific information about that in the document. " +
				"Try rephrasing your question or asking about different topics covered in the document." +
				"\n\n(Note: This is a demo response. Configure OPENAI_API_KEY for full AI capabilities.)",
		},
		{
			name:     "only stop words never match",
			question: "What is the",
			context:  paris,
			want: "I couldn't find specific information about that in the document. " +
				"Try rephrasing your question or asking about different topics covered in the document." +
				"\n\n(Note: This is a demo response. Configure OPENAI_API_KEY for full AI capabilities.)",
		},
		{
			name:     "partial words match case-insensitively",
			question: "tower",
			context:  paris,
			want: "Based on the document, here's what I found:\n\nIt is known for the Eiffel Tower." +
				"\n\n(Note: This is a demo response. Configure OPENAI_API_KEY for full AI capabilities.)",
		},
		{
			name:     "at most three sentences in document order",
			question: "cats",
			context:  "Cats purr.\nDogs bark. Wildcats roam. Bobcats hunt. Tomcats fight.",
			want: "Based on the document, here's what I found:\n\nCats purr. Wildcats roam. Bobcats hunt." +
				"\n\n(Note: This is a demo response. Configure OPENAI_API_KEY for full AI capabilities.)",
		},
	}

	p := NewKeywordProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.AnswerQuestion(context.Background(), tt.question, tt.context))
		})
	}
}

func TestKeywordProvider_EmptyInputs(t *testing.T) {
	p := NewKeywordProvider()

	assert.Contains(t, p.AnswerQuestion(context.Background(), "", "Some text."), "couldn't find")
	assert.Contains(t, p.AnswerQuestion(context.Background(), "anything", ""), "couldn't find")
	assert.Equal(t, "mock", p.Name())
}
