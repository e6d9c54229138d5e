// Package intake converts uploaded resume documents into plain text.
package intake

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Supported content types.
const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MaxUploadBytes caps a single uploaded document.
const MaxUploadBytes = 5 << 20

// ErrUnsupportedType is returned for documents that are neither text, PDF nor DOCX.
type ErrUnsupportedType struct {
	ContentType string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported document type: %s", e.ContentType)
}

// ErrEmptyDocument is returned when a document yields no text.
var ErrEmptyDocument = errors.New("document contains no text")

// Text extracts the cleaned plain text of data. contentType may be empty or generic,
// in which case the type is inferred from fileName and the content itself.
func Text(ctx context.Context, data []byte, contentType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	var (
		text string
		err  error
	)
	switch kind := DetectType(contentType, fileName, data); kind {
	case MimeText:
		if !utf8.Valid(data) {
			return "", &ErrUnsupportedType{ContentType: "binary text"}
		}
		text = string(data)
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", &ErrUnsupportedType{ContentType: kind}
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", fileName, err)
	}
	text = Clean(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// DetectType resolves the effective content type of an upload.
func DetectType(contentType, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch clean {
	case MimeText, MimePDF, MimeDOCX:
		return clean
	case "", "application/octet-stream", "application/zip":
	default:
		if strings.HasPrefix(clean, "text/") {
			return MimeText
		}
		return clean
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt", ".md", ".text":
		return MimeText
	}

	if isDOCX(data) {
		return MimeDOCX
	}
	sniffed := strings.Split(http.DetectContentType(data), ";")[0]
	switch {
	case sniffed == MimePDF:
		return MimePDF
	case strings.HasPrefix(sniffed, "text/"):
		return MimeText
	}
	if clean != "" {
		return clean
	}
	return sniffed
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	doc := documentPart(zr)
	if doc == nil {
		return "", errors.New("word/document.xml not found")
	}
	rc, err := doc.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return docxText(rc)
}

func documentPart(zr *zip.Reader) *zip.File {
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return f
		}
	}
	return nil
}

func isDOCX(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	return documentPart(zr) != nil
}

// docxText keeps character data and turns paragraph, break and tab elements into whitespace.
func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteByte(' ')
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
