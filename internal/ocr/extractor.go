// Package ocr implements the text-extraction collaborator boundary. Given an
// uploaded file buffer and its MIME type it returns the document's plain
// text. PDF text layers and plain-text uploads are handled natively; image
// formats are forwarded to a Tesseract HTTP service.
//
// Extraction errors propagate to the caller so the analysis pipeline can mark
// the owning policy as failed; there is no silent fallback here.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat indicates no extractor is registered for the MIME type.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extractor is the contract consumed by the analysis pipeline.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Composite routes extraction by MIME type: PDF and plain text natively,
// everything else to the configured OCR extractor (typically Tesseract).
// A nil ocr disables image handling.
type Composite struct {
	ocr Extractor
}

// NewComposite builds the default MIME-routed extractor. ocr may be nil when
// no OCR service is configured; image uploads then fail with
// ErrUnsupportedFormat.
func NewComposite(ocr Extractor) *Composite {
	return &Composite{ocr: ocr}
}

// Extract dispatches to the extractor for the document's MIME type.
func (c *Composite) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	mt := normalizeMime(mimeType)
	switch {
	case mt == "application/pdf":
		return extractPDF(data)
	case strings.HasPrefix(mt, "text/"):
		return string(data), nil
	default:
		if c.ocr == nil {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
		}
		return c.ocr.Extract(ctx, data, mimeType)
	}
}

// extractPDF pulls the text layer out of a PDF. Scanned PDFs without a text
// layer yield empty output rather than an error; the analysis collaborator
// copes with sparse input.
func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// normalizeMime lowercases a MIME type and strips any parameters
// (e.g. "text/plain; charset=utf-8" -> "text/plain").
func normalizeMime(mt string) string {
	mt = strings.ToLower(strings.TrimSpace(mt))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}
