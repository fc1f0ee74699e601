package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"doc-qa-assistant/internal/ai"
	"doc-qa-assistant/internal/logger"
	"doc-qa-assistant/internal/telemetry"
	"doc-qa-assistant/models"

	"github.com/google/uuid"
)

const previewLength = 500

// TextExtractor reads the text out of a stored upload.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// ProviderSelector resolves the answering provider for a mode.
type ProviderSelector interface {
	Select(mode ai.Mode) (ai.Provider, error)
}

// DocumentServiceConfig holds the tunables for ingestion and answering.
type DocumentServiceConfig struct {
	Chunking        models.ChunkingConfig
	MaxContextChars int
	ProviderMode    ai.Mode
}

// DocumentService ingests uploads and answers questions about them.
type DocumentService struct {
	store     *DocumentStore
	extractor TextExtractor
	selector  ProviderSelector
	cfg       DocumentServiceConfig
	metrics   *telemetry.Metrics
}

func NewDocumentService(
	store *DocumentStore,
	extractor TextExtractor,
	selector ProviderSelector,
	cfg DocumentServiceConfig,
	metrics *telemetry.Metrics,
) *DocumentService {
	if cfg.Chunking.ChunkSize <= 0 {
		cfg.Chunking.ChunkSize = DefaultChunkSize
	}
	if cfg.MaxContextChars <= 0 {
		cfg.MaxContextChars = DefaultMaxContextChars
	}
	if cfg.ProviderMode == "" {
		cfg.ProviderMode = ai.ModeAuto
	}
	return &DocumentService{
		store:     store,
		extractor: extractor,
		selector:  selector,
		cfg:       cfg,
		metrics:   metrics,
	}
}

// ProviderMode reports the configured answering mode.
func (s *DocumentService) ProviderMode() ai.Mode {
	return s.cfg.ProviderMode
}

// NewDocumentID returns an unused 8-character id.
func (s *DocumentService) NewDocumentID() string {
	for {
		id := uuid.NewString()[:8]
		if !s.store.Exists(id) {
			return id
		}
	}
}

// Ingest extracts, chunks and measures the file at path and stores the
// resulting document under id.
func (s *DocumentService) Ingest(ctx context.Context, id, filename, path string) (*models.Document, error) {
	start := time.Now()
	ext := strings.ToLower(filepath.Ext(filename))

	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		s.metrics.RecordDocumentProcessing(time.Since(start).Seconds(), ext, "failed")
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}

	doc := &models.Document{
		ID:         id,
		Filename:   filename,
		FilePath:   path,
		Text:       text,
		Chunks:     ChunkText(text, s.cfg.Chunking.ChunkSize, s.cfg.Chunking.Overlap),
		Stats:      ComputeStats(text),
		UploadedAt: time.Now().UTC(),
	}

	if err := s.store.Save(doc); err != nil {
		s.metrics.RecordDocumentProcessing(time.Since(start).Seconds(), ext, "failed")
		return nil, fmt.Errorf("storing document %s: %w", id, err)
	}

	s.metrics.RecordDocumentProcessing(time.Since(start).Seconds(), ext, "success")
	logger.Info("Document ingested",
		"doc_id", doc.ID,
		"filename", doc.Filename,
		"chunks", len(doc.Chunks),
		"characters", doc.Stats.Characters,
	)
	return doc, nil
}

// Ask answers question from the stored document docID. A missing document is
// ErrDocumentNotFound; provider problems are reported in the answer text.
func (s *DocumentService) Ask(ctx context.Context, docID, question string) (*models.Answer, error) {
	doc, err := s.store.Get(docID)
	if err != nil {
		return nil, err
	}

	provider, err := s.selector.Select(s.cfg.ProviderMode)
	if err != nil {
		return nil, err
	}

	docContext := SelectContext(doc.Text, doc.Chunks, s.cfg.MaxContextChars)
	answer := provider.AnswerQuestion(ctx, question, docContext)

	s.metrics.RecordQuestion(provider.Name())
	logger.Debug("Question answered",
		"doc_id", docID,
		"provider", provider.Name(),
		"context_chars", len(docContext),
	)

	return &models.Answer{
		DocumentID: docID,
		Question:   question,
		Context:    docContext,
		Text:       answer,
		Provider:   provider.Name(),
	}, nil
}

func (s *DocumentService) Get(id string) (*models.Document, error) {
	return s.store.Get(id)
}

func (s *DocumentService) List() []*models.Document {
	return s.store.List()
}

// Preview returns the first 500 characters of the document text, followed
// by "..." when the text was cut.
func Preview(doc *models.Document) string {
	runes := []rune(doc.Text)
	if len(runes) <= previewLength {
		return doc.Text
	}
	return string(runes[:previewLength]) + "..."
}
