package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doc-qa-assistant/internal/logger"

	"github.com/ledongthuc/pdf"
	"github.com/tsawler/tabula/docx"
	"github.com/tsawler/tabula/model"
)

// maxExtractBytes caps files read fully into memory.
const maxExtractBytes = 200 << 20

// Extractor turns an uploaded file into plain text, choosing a reader by
// file extension.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the text of the file at path. Unknown extensions fail
// with ErrUnsupportedFormat; parser failures are wrapped and never returned
// as text.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("extraction cancelled: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() > maxExtractBytes {
		return "", fmt.Errorf("file too large for in-memory extraction")
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md":
		return e.extractPlain(path)
	case ".pdf":
		return e.extractPDF(path)
	case ".docx":
		return e.extractDOCX(path)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (e *Extractor) extractPlain(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return strings.ToValidUTF8(string(content), ""), nil
}

func (e *Extractor) extractPDF(path string) (text string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}

	// The PDF parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("reading PDF: malformed document: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Warn("Failed to extract text from PDF page", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n\n"), nil
}

func (e *Extractor) extractDOCX(path string) (string, error) {
	reader, err := docx.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading DOCX: %w", err)
	}
	defer reader.Close()

	doc, err := reader.Document()
	if err != nil {
		return "", fmt.Errorf("reading DOCX: %w", err)
	}

	// One element per paragraph; soft line breaks stay inside their paragraph
	var paragraphs []string
	for _, page := range doc.Pages {
		for _, elem := range page.Elements {
			te, ok := elem.(model.TextElement)
			if !ok {
				continue
			}
			if text := te.GetText(); strings.TrimSpace(text) != "" {
				paragraphs = append(paragraphs, text)
			}
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}
