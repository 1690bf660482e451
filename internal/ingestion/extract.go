package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrNoText is returned when a document parses but holds no text, such as
// a scanned PDF without a text layer.
var ErrNoText = errors.New("document contains no extractable text")

// UnsupportedFormatError is returned for file types ExtractText cannot read.
type UnsupportedFormatError struct {
	Filename string
	Ext      string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported document %q: no file extension", e.Filename)
	}
	return fmt.Sprintf("unsupported document format %q (want .txt, .md, .pdf or .docx)", e.Ext)
}

// SupportedExtensions lists the extensions ExtractText accepts.
var SupportedExtensions = []string{".txt", ".text", ".md", ".markdown", ".pdf", ".docx"}

// ExtractText returns the cleaned text of a document, choosing the decoder
// from the file extension of filename.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		raw string
		err error
	)
	switch ext {
	case ".txt", ".text", ".md", ".markdown":
		raw = strings.ToValidUTF8(string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), "")
	case ".pdf":
		raw, err = pdfText(data)
	case ".docx":
		raw, err = docxText(data)
	default:
		return "", &UnsupportedFormatError{Filename: filename, Ext: ext}
	}
	if err != nil {
		return "", err
	}

	text := CleanText(raw)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	wordBreak = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	wordTab   = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag    = regexp.MustCompile(`<[^>]+>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = wordBreak.ReplaceAllString(content, "\n")
	content = wordTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
