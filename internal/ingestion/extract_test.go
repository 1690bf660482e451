package ingestion

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText("notes.TXT", []byte("\xef\xbb\xbfJane Doe\r\nBackend   Engineer\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend Engineer", text)

	text, err = ExtractText("resume.md", []byte("# Jane\n\n- Go\n- SQL"))
	require.NoError(t, err)
	assert.Equal(t, "# Jane\n\n- Go\n- SQL", text)
}

func TestExtractText_InvalidUTF8Dropped(t *testing.T) {
	text, err := ExtractText("a.txt", []byte("Go\xff\xfeLang"))
	require.NoError(t, err)
	assert.Equal(t, "GoLang", text)
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("resume.doc", []byte("binary"))
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".doc", unsupported.Ext)
	assert.Contains(t, err.Error(), ".docx")

	_, err = ExtractText("README", []byte("text"))
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "no file extension")
}

func TestExtractText_Empty(t *testing.T) {
	_, err := ExtractText("blank.txt", []byte(" \n\n\t"))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractText_PDF(t *testing.T) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 10, "Jane Doe")
	doc.Ln(12)
	doc.Cell(0, 10, "Kubernetes and Go")
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	text, err := ExtractText("resume.pdf", buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Kubernetes and Go")
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText("resume.pdf", []byte("%PDF-1.4 not really"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read pdf")
}

func TestExtractText_DOCX(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go &amp; Kubernetes</w:t><w:tab/><w:t>2024</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text, err := ExtractText("resume.docx", buildDocx(t, body))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo & Kubernetes 2024", text)
}

func TestExtractText_CorruptDOCX(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("PK not a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read docx")
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
