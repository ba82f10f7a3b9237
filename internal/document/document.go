// Package document turns uploaded PDF and DOCX files into plain text.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Format string

const (
	PDF  Format = "pdf"
	DOCX Format = "docx"
)

const (
	pdfContentType  = "application/pdf"
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// FormatFromFilename recognises .pdf and .docx, case-insensitively.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return PDF, nil
	case ".docx":
		return DOCX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) ContentType() string {
	if f == DOCX {
		return docxContentType
	}
	return pdfContentType
}

func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// SniffContentType returns the detected MIME type of data when it agrees
// with f, and f's canonical type otherwise. The second result reports
// whether the content matched.
func SniffContentType(data []byte, f Format) (string, bool) {
	detected := mimetype.Detect(data)
	if detected.Is(f.ContentType()) {
		return detected.String(), true
	}
	return f.ContentType(), false
}

// ExtractError is returned when a decoder rejects the file.
type ExtractError struct {
	Format Format
	Err    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Format.Label(), e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// ExtractText returns the trimmed text content of the document.
func ExtractText(ctx context.Context, f Format, r io.ReaderAt, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch f {
	case PDF:
		text, err = extractPDF(r, size)
	case DOCX:
		text, err = extractDOCX(r, size)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", &ExtractError{Format: f, Err: err}
	}
	return strings.TrimSpace(text), nil
}
