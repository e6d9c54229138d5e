package intake

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a single-page PDF whose content stream shows text in Helvetica.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()
	content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func buildDOCX(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t>Python, Docker</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func TestText_PlainText(t *testing.T) {
	got, err := Text(context.Background(), []byte("Built services in Go"), "text/plain; charset=utf-8", "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, "Built services in Go", got)
}

func TestText_PDF(t *testing.T) {
	data := buildPDF(t, "Skills: Python Docker")

	got, err := Text(context.Background(), data, MimePDF, "resume.pdf")
	require.NoError(t, err)
	assert.Contains(t, got, "Python")
	assert.Contains(t, got, "Docker")
}

func TestText_DOCX(t *testing.T) {
	data := buildDOCX(t, map[string]string{"word/document.xml": documentXML})

	got, err := Text(context.Background(), data, MimeDOCX, "resume.docx")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Python, Docker", got)
}

func TestText_DOCXFromZipMime(t *testing.T) {
	data := buildDOCX(t, map[string]string{"word/document.xml": documentXML})

	got, err := Text(context.Background(), data, "application/zip", "upload.bin")
	require.NoError(t, err)
	assert.Contains(t, got, "Python, Docker")
}

func TestText_Errors(t *testing.T) {
	plainZip := buildDOCX(t, map[string]string{"notes.txt": "hello"})

	tests := []struct {
		name        string
		data        []byte
		contentType string
		fileName    string
		unsupported bool
		empty       bool
	}{
		{name: "empty payload", data: nil, contentType: MimeText, empty: true},
		{name: "whitespace only", data: []byte("  \n\t"), contentType: MimeText, empty: true},
		{name: "image", data: []byte{0x89, 'P', 'N', 'G'}, contentType: "image/png", fileName: "me.png", unsupported: true},
		{name: "plain zip", data: plainZip, contentType: "application/zip", fileName: "notes.zip", unsupported: true},
		{name: "invalid utf8", data: []byte{0xff, 0xfe, 0xfd}, contentType: MimeText, unsupported: true},
		{name: "corrupt pdf", data: []byte("%PDF-1.4 nothing else"), contentType: MimePDF, fileName: "broken.pdf"},
		{name: "docx without document part", data: plainZip, contentType: MimeDOCX, fileName: "broken.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Text(context.Background(), tt.data, tt.contentType, tt.fileName)
			require.Error(t, err)

			var unsupported *ErrUnsupportedType
			assert.Equal(t, tt.unsupported, errors.As(err, &unsupported))
			assert.Equal(t, tt.empty, errors.Is(err, ErrEmptyDocument))
		})
	}
}

func TestText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Text(ctx, []byte("text"), MimeText, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectType(t *testing.T) {
	docx := buildDOCX(t, map[string]string{"word/document.xml": documentXML})

	tests := []struct {
		name        string
		contentType string
		fileName    string
		data        []byte
		want        string
	}{
		{name: "explicit pdf", contentType: "Application/PDF", want: MimePDF},
		{name: "markdown as text", contentType: "text/markdown", want: MimeText},
		{name: "octet stream by extension", contentType: "application/octet-stream", fileName: "cv.PDF", want: MimePDF},
		{name: "no type docx extension", fileName: "cv.docx", want: MimeDOCX},
		{name: "no type txt extension", fileName: "cv.txt", want: MimeText},
		{name: "zip holding document part", contentType: "application/zip", data: docx, want: MimeDOCX},
		{name: "sniffed pdf", data: []byte("%PDF-1.7\n"), want: MimePDF},
		{name: "sniffed text", contentType: "application/octet-stream", data: []byte("plain words"), want: MimeText},
		{name: "unknown passes through", contentType: "image/png", fileName: "cv.pdf", want: "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectType(tt.contentType, tt.fileName, tt.data))
		})
	}
}
