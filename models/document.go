package models

import "time"

// Document is an uploaded file together with everything derived from it at
// upload time. A Document is never modified after it is stored.
type Document struct {
	ID         string        `json:"id"`
	Filename   string        `json:"filename"`
	FilePath   string        `json:"-"`
	Text       string        `json:"-"`
	Chunks     []string      `json:"-"`
	Stats      DocumentStats `json:"stats"`
	UploadedAt time.Time     `json:"uploaded_at"`
}

// DocumentStats holds size and shape metrics for a document's text
type DocumentStats struct {
	Characters      int `json:"characters"`
	Words           int `json:"words"`
	Paragraphs      int `json:"paragraphs"`
	EstimatedTokens int `json:"estimated_tokens"`
}

// Answer is one question-answer exchange. It only lives for the duration of
// the request that produced it.
type Answer struct {
	DocumentID string `json:"doc_id"`
	Question   string `json:"question"`
	Context    string `json:"-"`
	Text       string `json:"answer"`
	Provider   string `json:"-"`
}

// AskRequest is the body accepted by the ask endpoint
type AskRequest struct {
	DocID    string `json:"doc_id"`
	Question string `json:"question"`
}

// UploadResponse represents the response after a successful upload
type UploadResponse struct {
	Success  bool          `json:"success"`
	DocID    string        `json:"doc_id"`
	Filename string        `json:"filename"`
	Stats    DocumentStats `json:"stats"`
}

// AskResponse represents the response to a question
type AskResponse struct {
	Success  bool   `json:"success"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	DocID    string `json:"doc_id"`
}

// DocumentSummary is the list view of a document
type DocumentSummary struct {
	ID       string        `json:"id"`
	Filename string        `json:"filename"`
	Stats    DocumentStats `json:"stats"`
}

// DocumentDetail is the single-document view, including a short preview
type DocumentDetail struct {
	ID       string        `json:"id"`
	Filename string        `json:"filename"`
	Stats    DocumentStats `json:"stats"`
	Preview  string        `json:"preview"`
}

// ChunkingConfig defines how text should be chunked
type ChunkingConfig struct {
	ChunkSize int `json:"chunk_size"`
	Overlap   int `json:"overlap"`
}
