package rendering

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/career-kit/internal/types"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput(tmpl Template) Input {
	return Input{
		Profile: types.CandidateProfile{
			Name:       "Jane Doe",
			Email:      "jane@example.com",
			Phone:      "555-0100",
			LinkedIn:   "linkedin.com/in/jane",
			TargetRole: "Data Analyst",
		},
		Document: types.ParsedDocument{
			Summary:     "Analyst who “ships” dashboards… fast.",
			Resume:      "EDUCATION\nBSc Statistics, 2024\n\nPROJECTS\n  - Built a churn model 🚀\n  - Automated reports",
			CoverLetter: "Dear Hiring Manager,\n\nI am excited to apply.\n\nSincerely,\nJane Doe",
		},
		Score:    types.ScoreReport{TotalScore: 71, Grade: types.GradeGood, WordCount: 240},
		Template: tmpl,
	}
}

// pdfText extracts the plain text of every page.
func pdfText(t *testing.T, data []byte) (string, int) {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		require.NoError(t, err)
		b.WriteString(text)
	}
	return b.String(), r.NumPage()
}

func TestRenderBytes_AllTemplates(t *testing.T) {
	for _, tmpl := range Templates {
		t.Run(string(tmpl), func(t *testing.T) {
			data, err := RenderBytes(sampleInput(tmpl))
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

			text, pages := pdfText(t, data)
			assert.Equal(t, 2, pages, "cover letter starts a new page")
			assert.Contains(t, text, "EDUCATION")
			assert.Contains(t, text, "Automated reports")
			assert.Contains(t, text, "Words: 240")
			assert.Contains(t, strings.ToUpper(text), "COVER LETTER")
		})
	}
}

func TestRender_HeaderAndFooterOnEveryPage(t *testing.T) {
	in := sampleInput(TemplateModern)
	in.Document.CoverLetter = ""
	var resume strings.Builder
	for i := 0; i < 120; i++ {
		resume.WriteString("  - Improved pipeline throughput by a measurable margin\n")
	}
	in.Document.Resume = resume.String()

	data, err := RenderBytes(in)
	require.NoError(t, err)

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Greater(t, r.NumPage(), 1)

	for i := 1; i <= r.NumPage(); i++ {
		text, err := r.Page(i).GetPlainText(nil)
		require.NoError(t, err)
		assert.Contains(t, text, "JANE DOE", "page %d header", i)
		assert.Contains(t, text, "ATS Score: 71/100", "page %d footer", i)
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	data, err := RenderBytes(Input{})
	require.NoError(t, err)

	text, pages := pdfText(t, data)
	assert.Equal(t, 1, pages)
	assert.Contains(t, text, "CANDIDATE")
	assert.Contains(t, text, "N/A")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := RenderBytes(sampleInput("fancy"))
	var te *TemplateError
	assert.True(t, errors.As(err, &te))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriterFailure(t *testing.T) {
	err := Render(failingWriter{}, sampleInput(TemplateClassic))
	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, err.Error(), "disk full")
}
