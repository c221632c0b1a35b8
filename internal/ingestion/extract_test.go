package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		want    Format
		wantErr bool
	}{
		{name: "plain text content type", doc: Document{ContentType: "text/plain; charset=utf-8"}, want: FormatText},
		{name: "markdown content type", doc: Document{ContentType: ContentTypeMarkdown}, want: FormatText},
		{name: "html content type", doc: Document{ContentType: "TEXT/HTML"}, want: FormatHTML},
		{name: "pdf content type", doc: Document{ContentType: ContentTypePDF}, want: FormatPDF},
		{name: "docx content type", doc: Document{ContentType: ContentTypeDOCX}, want: FormatDOCX},
		{name: "extension fallback", doc: Document{Filename: "Resume.DOCX", ContentType: ContentTypeBinary}, want: FormatDOCX},
		{name: "htm extension", doc: Document{Filename: "job.htm"}, want: FormatHTML},
		{name: "pdf magic bytes", doc: Document{ContentType: ContentTypeBinary, Data: []byte("%PDF-1.4\n")}, want: FormatPDF},
		{name: "zip magic bytes", doc: Document{Data: []byte("PK\x03\x04")}, want: FormatDOCX},
		{name: "sniffed text", doc: Document{Data: []byte("Jane Doe\nEngineer")}, want: FormatText},
		{name: "unsupported content type", doc: Document{Filename: "photo", ContentType: "image/png"}, wantErr: true},
		{name: "unsupported extension", doc: Document{Filename: "resume.rtf", ContentType: ContentTypeBinary}, wantErr: true},
		{name: "binary without hints", doc: Document{Data: []byte{0, 1, 2, 3, 4, 5}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.doc)
			if tt.wantErr {
				var unsupported *UnsupportedFormatError
				assert.ErrorAs(t, err, &unsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Text(t *testing.T) {
	text, err := Extract(context.Background(), Document{
		Filename: "resume.txt",
		Data:     []byte("Jane   Doe\r\n\r\n\r\nEXPERIENCE\r\n- Built APIs"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nEXPERIENCE\n- Built APIs", text)
}

func TestExtract_HTML(t *testing.T) {
	page := `<html><head><title>Job</title><script>var tracking = 1;</script></head>
<body>
  <nav>Home | Careers</nav>
  <h1>Senior Backend Engineer</h1>
  <p>Build <b>APIs</b> in Go<br>and Python</p>
  <ul><li>Kubernetes</li><li>PostgreSQL</li></ul>
  <footer>Copyright Acme</footer>
</body></html>`

	text, err := Extract(context.Background(), Document{ContentType: ContentTypeHTML, Data: []byte(page)})
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Backend Engineer")
	assert.Contains(t, text, "Build APIs in Go")
	assert.Contains(t, text, "- Kubernetes")
	assert.Contains(t, text, "- PostgreSQL")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "Careers")
	assert.NotContains(t, text, "Copyright")
}

func TestExtract_DOCX(t *testing.T) {
	data := buildDOCX(t, []string{"Jane Doe", "Software Engineer &amp; Mentor", "Skills: Go, SQL"})

	text, err := Extract(context.Background(), Document{Filename: "resume.docx", Data: data})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer & Mentor\nSkills: Go, SQL", text)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name       string
		doc        Document
		unreadable bool
		empty      bool
		unsupport  bool
	}{
		{name: "binary declared as text", doc: Document{ContentType: ContentTypeText, Data: []byte{0, 0, 0, 1, 2, 3, 'a'}}, unreadable: true},
		{name: "invalid utf8 text", doc: Document{ContentType: ContentTypeText, Data: []byte{'a', 0xff, 0xfe, 'b'}}, unreadable: true},
		{name: "corrupt pdf", doc: Document{Filename: "resume.pdf", Data: []byte("%PDF-1.4\nnot really a pdf")}, unreadable: true},
		{name: "pdf with negative xref offset", doc: Document{Filename: "resume.pdf", Data: brokenXrefPDF("-5")}, unreadable: true},
		{name: "pdf with xref offset past end", doc: Document{Filename: "resume.pdf", Data: brokenXrefPDF("99999")}, unreadable: true},
		{name: "corrupt docx", doc: Document{Filename: "resume.docx", Data: []byte("PK not a zip")}, unreadable: true},
		{name: "whitespace only", doc: Document{ContentType: ContentTypeText, Data: []byte(" \n\t\n ")}, empty: true},
		{name: "empty html", doc: Document{ContentType: ContentTypeHTML, Data: []byte("<html><body><script>x()</script></body></html>")}, empty: true},
		{name: "unsupported", doc: Document{Filename: "resume.odt", ContentType: "application/vnd.oasis.opendocument.text"}, unsupport: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(context.Background(), tt.doc)
			require.Error(t, err)

			var unreadable *UnreadableInputError
			var unsupported *UnsupportedFormatError
			assert.Equal(t, tt.unreadable, errors.As(err, &unreadable))
			assert.Equal(t, tt.unsupport, errors.As(err, &unsupported))
			if tt.empty {
				assert.ErrorIs(t, err, ErrEmptyDocument)
			}
		})
	}
}

// brokenXrefPDF builds a PDF whose trailer points the xref table at offset.
func brokenXrefPDF(offset string) []byte {
	body := "%PDF-1.4\n" + strings.Repeat("% padding\n", 30)
	return []byte(body + "startxref\n" + offset + "\n%%EOF\n")
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, Document{ContentType: ContentTypeText, Data: []byte("text")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractWithMetadata(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := Document{Filename: "job.html", ContentType: ContentTypeHTML, Data: []byte("<p>Go   Engineer</p>")}

	text, meta, err := ExtractWithMetadata(context.Background(), doc, now)
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", text)
	assert.Equal(t, FormatHTML, meta.Format)
	assert.Equal(t, len(doc.Data), meta.Size)
	assert.Equal(t, "2024-03-01T12:00:00Z", meta.Timestamp)
	assert.Equal(t, computeHash(text), meta.Hash)
}

func TestReadFile(t *testing.T) {
	t.Run("reads and cleans", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "resume.md")
		require.NoError(t, os.WriteFile(path, []byte("# Jane Doe\n\n\n\nGo   developer\n"), 0o644))

		text, err := ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Jane Doe\n\nGo developer", text)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file not found")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestIsBinaryData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "empty", data: nil, want: false},
		{name: "plain text", data: []byte("Hello\tworld\r\n"), want: false},
		{name: "pdf header", data: []byte("%PDF-1.7"), want: true},
		{name: "zip header", data: []byte("PK\x03\x04"), want: true},
		{name: "control bytes", data: []byte{0, 1, 2, 'a', 'b'}, want: true},
		{name: "few control bytes", data: append(bytes.Repeat([]byte("a"), 100), 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBinaryData(tt.data))
		})
	}
}

// buildDOCX writes a minimal word document with one paragraph per entry
func buildDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}

	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() +
			`</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/_rels/document.xml.rels", "word/document.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(parts[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
