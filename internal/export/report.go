// Package export writes career kit results to spreadsheet reports.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/career-kit/internal/types"
)

// Sheet names, in workbook order.
const (
	SheetScore = "Score"
	SheetGap   = "Gap Analysis"
	SheetTips  = "Tips"
)

// ReportInput is the data written to a report. Gap may be nil.
type ReportInput struct {
	Name        string
	TargetRole  string
	Model       string
	GeneratedAt time.Time
	Score       types.ScoreReport
	Gap         *types.GapReport
	Tips        []types.Tip
}

var border = []excelize.Border{
	{Type: "left", Color: "D0D7E2", Style: 1},
	{Type: "right", Color: "D0D7E2", Style: 1},
	{Type: "top", Color: "D0D7E2", Style: 1},
	{Type: "bottom", Color: "D0D7E2", Style: 1},
}

type styles struct {
	title  int
	header int
	label  int
	wrap   int
}

// WriteReport writes an XLSX workbook with score, gap analysis and tips sheets.
func WriteReport(w io.Writer, in ReportInput) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetScore); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetGap, SheetTips} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}

	if err := writeScoreSheet(f, st, in); err != nil {
		return fmt.Errorf("score sheet: %w", err)
	}
	if err := writeGapSheet(f, st, in.Gap); err != nil {
		return fmt.Errorf("gap sheet: %w", err)
	}
	if err := writeTipsSheet(f, st, in.Tips); err != nil {
		return fmt.Errorf("tips sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1E3A5F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2563EB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	}); err != nil {
		return st, err
	}
	if st.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	st.wrap, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    border,
	})
	return st, err
}

// fillStyle builds a bold style filled with a "#rrggbb" color.
func fillStyle(f *excelize.File, hex string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{strings.TrimPrefix(hex, "#")}, Pattern: 1},
	})
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func writeTitle(f *excelize.File, st styles, sheet, title, lastCol string) error {
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", cell(lastCol, 1)); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", cell(lastCol, 1), st.title)
}

func writeScoreSheet(f *excelize.File, st styles, in ReportInput) error {
	const sheet = SheetScore
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 60); err != nil {
		return err
	}
	if err := writeTitle(f, st, sheet, "Resume Strength Report", "B"); err != nil {
		return err
	}

	r := in.Score
	generated := ""
	if !in.GeneratedAt.IsZero() {
		generated = in.GeneratedAt.Format("2006-01-02 15:04:05")
	}
	rows := []struct {
		label string
		value any
	}{
		{"Candidate", in.Name},
		{"Target Role", in.TargetRole},
		{"Model", in.Model},
		{"Generated", generated},
		{"Total Score", r.TotalScore},
		{"Grade", string(r.Grade)},
		{"Action Verbs (/30)", r.VerbScore},
		{"Keyword Match (/40)", r.KeywordScore},
		{"Content Length (/30)", r.LengthScore},
		{"Word Count", r.WordCount},
		{"Action Verbs Found", r.VerbCount},
		{"Verbs", strings.Join(r.FoundVerbs, ", ")},
		{"Skills Matched", strings.Join(r.SkillsMatched, ", ")},
		{"Role Keywords Matched", strings.Join(r.RoleKeywordsMatched, ", ")},
	}

	row := 3
	gradeRow := 0
	for _, item := range rows {
		if err := f.SetCellValue(sheet, cell("A", row), item.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell("A", row), cell("A", row), st.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell("B", row), item.value); err != nil {
			return err
		}
		if item.label == "Grade" {
			gradeRow = row
		}
		row++
	}

	if color := r.Grade.Color(); color != "" && gradeRow > 0 {
		style, err := fillStyle(f, color)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell("B", gradeRow), cell("B", gradeRow), style); err != nil {
			return err
		}
	}
	return nil
}

func writeGapSheet(f *excelize.File, st styles, gap *types.GapReport) error {
	const sheet = SheetGap
	if err := f.SetColWidth(sheet, "A", "D", 36); err != nil {
		return err
	}
	if err := writeTitle(f, st, sheet, "Job Description Match", "D"); err != nil {
		return err
	}
	if gap == nil {
		return f.SetCellValue(sheet, "A3", "No job description was provided.")
	}

	band := gap.Band()
	if err := f.SetCellValue(sheet, "A3", "Match Score"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", "A3", st.label); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B3", gap.MatchScore); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "C3", band.Label); err != nil {
		return err
	}
	bandStyle, err := fillStyle(f, band.Color)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "C3", "C3", bandStyle); err != nil {
		return err
	}

	columns := []struct {
		title string
		items []string
	}{
		{"Missing Keywords", gap.MissingKeywords},
		{"Present Keywords", gap.PresentKeywords},
		{"Suggestions", gap.Suggestions},
		{"Quick Wins", gap.QuickWins},
	}
	longest := 0
	for i, c := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, cell(col, 5), c.title); err != nil {
			return err
		}
		for j, item := range c.items {
			if err := f.SetCellValue(sheet, cell(col, 6+j), item); err != nil {
				return err
			}
		}
		longest = max(longest, len(c.items))
	}
	if err := f.SetCellStyle(sheet, "A5", "D5", st.header); err != nil {
		return err
	}
	if longest > 0 {
		if err := f.SetCellStyle(sheet, "A6", cell("D", 5+longest), st.wrap); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      5,
		TopLeftCell: "A6",
		ActivePane:  "bottomLeft",
	})
}

func writeTipsSheet(f *excelize.File, st styles, tips []types.Tip) error {
	const sheet = SheetTips
	if err := f.SetColWidth(sheet, "A", "A", 6); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 80); err != nil {
		return err
	}
	if err := writeTitle(f, st, sheet, "Improvement Tips", "C"); err != nil {
		return err
	}

	for i, header := range []string{"#", "Priority", "Tip"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, cell(col, 3), header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A3", "C3", st.header); err != nil {
		return err
	}

	for i, tip := range tips {
		row := 4 + i
		if err := f.SetCellValue(sheet, cell("A", row), i+1); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell("B", row), string(tip.Priority)); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell("C", row), tip.Text); err != nil {
			return err
		}
	}
	if len(tips) > 0 {
		return f.SetCellStyle(sheet, "A4", cell("C", 3+len(tips)), st.wrap)
	}
	return nil
}
