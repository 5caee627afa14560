// Package ingest pulls plain text out of uploaded files so it can be fed to
// the client extractor.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrUnsupported = errors.New("unsupported file format")
	ErrUnreadable  = errors.New("unreadable file")
	ErrEmpty       = errors.New("no text found in file")
)

type Extractor interface {
	ExtractText(data []byte) (string, error)
}

// Registry maps lower-case file extensions (".pdf") to extractors.
type Registry struct {
	extractors map[string]Extractor
}

func NewRegistry() *Registry {
	r := &Registry{extractors: map[string]Extractor{}}
	r.Register(".txt", TextExtractor{})
	r.Register(".pdf", PDFExtractor{})
	r.Register(".docx", DOCXExtractor{})
	r.Register(".xlsx", SpreadsheetExtractor{})
	return r
}

func (r *Registry) Register(ext string, e Extractor) {
	r.extractors[normalizeExt(ext)] = e
}

func (r *Registry) Supported() []string {
	out := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Extract picks the extractor by the file name's extension. Blank results
// are reported as ErrEmpty so callers never hand an empty document to the
// parser by accident.
func (r *Registry) Extract(filename string, data []byte) (string, error) {
	ext := normalizeExt(filepath.Ext(filename))
	e, ok := r.extractors[ext]
	if !ok {
		if ext == "" {
			return "", fmt.Errorf("%w: file has no extension", ErrUnsupported)
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	text, err := e.ExtractText(data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
