// Package ingestion turns uploaded documents into clean plain text.
package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported document format
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Content types recognised by Detect
const (
	ContentTypeText     = "text/plain"
	ContentTypeMarkdown = "text/markdown"
	ContentTypeHTML     = "text/html"
	ContentTypePDF      = "application/pdf"
	ContentTypeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeBinary   = "application/octet-stream"
)

// Binary detection thresholds
const (
	BinarySampleSize = 512
	BinaryThreshold  = 0.1
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>`)
	xmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
)

// Block-level HTML elements that end a line of text
const htmlBlockSelector = "p, div, section, article, header, h1, h2, h3, h4, h5, h6, li, tr, ul, ol, table, pre, blockquote"

// Document is an uploaded file
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Detect resolves the format of doc from its content type, then its file
// extension, then its leading bytes.
func Detect(doc Document) (Format, error) {
	mediaType := strings.ToLower(strings.TrimSpace(doc.ContentType))
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = mt
	}

	switch mediaType {
	case ContentTypeText, ContentTypeMarkdown:
		return FormatText, nil
	case ContentTypeHTML, "application/xhtml+xml":
		return FormatHTML, nil
	case ContentTypePDF:
		return FormatPDF, nil
	case ContentTypeDOCX:
		return FormatDOCX, nil
	}

	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".txt", ".md", ".text":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	}

	if mediaType == "" || mediaType == ContentTypeBinary {
		switch {
		case bytes.HasPrefix(doc.Data, []byte("%PDF-")):
			return FormatPDF, nil
		case bytes.HasPrefix(doc.Data, []byte("PK")):
			return FormatDOCX, nil
		case mediaType == "" && !IsBinaryData(doc.Data):
			return FormatText, nil
		}
	}

	format := mediaType
	if format == "" {
		format = filepath.Ext(doc.Filename)
	}
	if format == "" {
		format = "unknown"
	}
	return "", &UnsupportedFormatError{Format: format}
}

// Extract returns the cleaned text of doc.
func Extract(ctx context.Context, doc Document) (string, error) {
	text, _, err := ExtractWithMetadata(ctx, doc, time.Now())
	return text, err
}

// ExtractWithMetadata returns the cleaned text of doc and a record of the extraction.
func ExtractWithMetadata(ctx context.Context, doc Document, now time.Time) (string, *Metadata, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	format, err := Detect(doc)
	if err != nil {
		return "", nil, err
	}

	source := doc.Filename
	if source == "" {
		source = string(format)
	}

	var raw string
	switch format {
	case FormatText:
		if IsBinaryData(doc.Data) || !utf8.Valid(doc.Data) {
			return "", nil, &UnreadableInputError{Source: source, Cause: fmt.Errorf("binary data declared as text")}
		}
		raw = string(doc.Data)
	case FormatHTML:
		raw, err = extractHTML(doc.Data)
	case FormatPDF:
		raw, err = extractPDF(doc.Data)
	case FormatDOCX:
		raw, err = extractDOCX(doc.Data)
	}
	if err != nil {
		return "", nil, &UnreadableInputError{Source: source, Cause: err}
	}

	text := CleanText(raw)
	if text == "" {
		return "", nil, fmt.Errorf("%s: %w", source, ErrEmptyDocument)
	}
	return text, NewMetadata(doc, format, text, now), nil
}

// ReadFile loads and extracts the document at path, detecting its format by extension.
func ReadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Extract(ctx, Document{Filename: filepath.Base(path), Data: data})
}

// IsBinaryData reports whether data looks like a binary document rather than text.
func IsBinaryData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) || bytes.HasPrefix(data, []byte("PK")) {
		return true
	}

	sample := data
	if len(sample) > BinarySampleSize {
		sample = sample[:BinarySampleSize]
	}
	nonPrintable := 0
	for _, ch := range sample {
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' && ch != '\f' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(sample)) > BinaryThreshold
}

// extractHTML returns the visible body text, one line per block element.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find(htmlBlockSelector).AppendHtml("\n")

	body := doc.Find("body")
	if body.Length() == 0 {
		return trimLines(doc.Text()), nil
	}
	return trimLines(body.Text()), nil
}

// extractPDF concatenates the plain text of every page.
func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractDOCX returns the paragraph text of the main document part.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
