// Package extract pulls plain text out of document blobs so it can be
// sent to a natural language provider.
//
// Supported formats: plain text (passthrough), PDF via
// github.com/ledongthuc/pdf, DOCX via the embedded word/document.xml,
// and — when an OCR extractor is wired in — PNG/JPEG/TIFF images via
// Google Cloud Vision. Extraction loses byte-offset semantics, so token
// offsets computed from extracted text are unreliable.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"nltools/internal/docs"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Common extraction errors
var (
	// ErrUnsupportedFormat is returned for blob mime types no extractor
	// handles.
	ErrUnsupportedFormat = errors.New("unsupported blob format for text extraction")

	// ErrEmptyBlob is returned when the blob carries no content.
	ErrEmptyBlob = errors.New("blob has no content")
)

// Extractor converts a blob into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, blob *docs.Blob) (string, error)
}

// BlobExtractor dispatches on the blob's mime type. The OCR extractor is
// optional; without it, image blobs are unsupported.
type BlobExtractor struct {
	ocr Extractor
}

// NewBlobExtractor builds the default extractor. Pass nil to disable OCR.
func NewBlobExtractor(ocr Extractor) *BlobExtractor {
	return &BlobExtractor{ocr: ocr}
}

// ExtractText extracts plain text from the blob.
func (e *BlobExtractor) ExtractText(ctx context.Context, blob *docs.Blob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if blob == nil || len(blob.Data) == 0 {
		return "", ErrEmptyBlob
	}

	mimeType := normalizeMimeType(blob.MimeType)
	switch {
	case mimeType == "text/plain" || strings.HasPrefix(mimeType, "text/"):
		return string(blob.Data), nil
	case mimeType == mimePDF:
		return extractPDF(blob.Data)
	case mimeType == mimeDOCX:
		return extractDOCX(blob.Data)
	case mimeType == "image/png" || mimeType == "image/jpeg" || mimeType == "image/tiff":
		if e.ocr == nil {
			return "", fmt.Errorf("%w: %s (no OCR extractor configured)", ErrUnsupportedFormat, mimeType)
		}
		return e.ocr.ExtractText(ctx, blob)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}

	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("read docx: %w", err)
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("read docx: %w", err)
		}
		return stripDocxXML(raw), nil
	}

	return "", fmt.Errorf("read docx: word/document.xml not found")
}

// stripDocxXML keeps character data and turns paragraph/line-break ends
// into newlines.
func stripDocxXML(raw []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return string(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
