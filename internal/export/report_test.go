package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/career-kit/internal/types"
)

func sampleInput() ReportInput {
	return ReportInput{
		Name:        "Jane Doe",
		TargetRole:  "Backend Engineer",
		Model:       "llama-3.3-70b-versatile",
		GeneratedAt: time.Date(2025, 4, 2, 14, 30, 0, 0, time.UTC),
		Score: types.ScoreReport{
			TotalScore:    78,
			VerbScore:     25,
			KeywordScore:  30,
			LengthScore:   23,
			WordCount:     231,
			VerbCount:     5,
			FoundVerbs:    []string{"built", "led"},
			SkillsMatched: []string{"go", "sql"},
			Grade:         types.GradeGood,
			Color:         types.GradeGood.Color(),
		},
		Gap: &types.GapReport{
			MatchScore:      72,
			MissingKeywords: []string{"Kafka", "Terraform", "gRPC"},
			PresentKeywords: []string{"Go"},
			Suggestions:     []string{"Describe event-driven work"},
		},
		Tips: []types.Tip{
			{Priority: types.TipCritical, Text: "Quantify results"},
			{Priority: types.TipPolish, Text: "Trim the summary"},
		},
	}
}

func openReport(t *testing.T, in ReportInput) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, in))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func value(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

func TestWriteReport_Sheets(t *testing.T) {
	f := openReport(t, sampleInput())
	assert.Equal(t, []string{SheetScore, SheetGap, SheetTips}, f.GetSheetList())
}

func TestWriteReport_ScoreSheet(t *testing.T) {
	f := openReport(t, sampleInput())

	assert.Equal(t, "Resume Strength Report", value(t, f, SheetScore, "A1"))
	assert.Equal(t, "Candidate", value(t, f, SheetScore, "A3"))
	assert.Equal(t, "Jane Doe", value(t, f, SheetScore, "B3"))
	assert.Equal(t, "2025-04-02 14:30:00", value(t, f, SheetScore, "B6"))
	assert.Equal(t, "78", value(t, f, SheetScore, "B7"))
	assert.Equal(t, "Good", value(t, f, SheetScore, "B8"))
	assert.Equal(t, "built, led", value(t, f, SheetScore, "B14"))
	assert.Equal(t, "go, sql", value(t, f, SheetScore, "B15"))
}

func TestWriteReport_GapSheet(t *testing.T) {
	f := openReport(t, sampleInput())

	assert.Equal(t, "72", value(t, f, SheetGap, "B3"))
	assert.Equal(t, "Strong Match", value(t, f, SheetGap, "C3"))
	assert.Equal(t, "Missing Keywords", value(t, f, SheetGap, "A5"))
	assert.Equal(t, "Quick Wins", value(t, f, SheetGap, "D5"))
	assert.Equal(t, "Kafka", value(t, f, SheetGap, "A6"))
	assert.Equal(t, "gRPC", value(t, f, SheetGap, "A8"))
	assert.Equal(t, "Go", value(t, f, SheetGap, "B6"))
	assert.Equal(t, "", value(t, f, SheetGap, "D6"))
}

func TestWriteReport_NoGap(t *testing.T) {
	in := sampleInput()
	in.Gap = nil
	f := openReport(t, in)

	assert.Equal(t, "No job description was provided.", value(t, f, SheetGap, "A3"))
}

func TestWriteReport_TipsSheet(t *testing.T) {
	f := openReport(t, sampleInput())

	assert.Equal(t, "Priority", value(t, f, SheetTips, "B3"))
	assert.Equal(t, "1", value(t, f, SheetTips, "A4"))
	assert.Equal(t, "critical", value(t, f, SheetTips, "B4"))
	assert.Equal(t, "Trim the summary", value(t, f, SheetTips, "C5"))
}

func TestWriteReport_EmptyInput(t *testing.T) {
	f := openReport(t, ReportInput{})
	assert.Equal(t, "", value(t, f, SheetScore, "B6"))
	assert.Equal(t, "0", value(t, f, SheetScore, "B7"))
	assert.Equal(t, "", value(t, f, SheetTips, "A4"))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReport_WriterError(t *testing.T) {
	err := WriteReport(failWriter{}, sampleInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write workbook")
}
