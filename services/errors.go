package services

import "errors"

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDuplicateID       = errors.New("document id already exists")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
