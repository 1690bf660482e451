package rendering

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/career-kit/internal/types"
)

// Body text metrics in millimetres and points
const (
	bodyFontSize    = 9.5
	bodyLineHeight  = 5.5
	headingHeight   = 6
	bulletIndent    = 4
	bulletRadius    = 0.6
	blankLineHeight = 2
	sectionGap      = 3
)

// Input is everything needed to render one document.
type Input struct {
	Profile  types.CandidateProfile
	Document types.ParsedDocument
	Score    types.ScoreReport
	Template Template
}

// RenderBytes renders the document and returns the PDF bytes.
func RenderBytes(in Input) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render lays out summary, resume and cover letter with the input's
// template and writes the PDF to w. Every page carries the template header
// and the score footer; the cover letter starts on a new page. Text the
// core fonts cannot show is dropped rather than reported.
func Render(w io.Writer, in Input) error {
	tmpl := in.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	style, err := StyleFor(tmpl)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(style.Margin, style.Top, style.Margin)
	pdf.SetAutoPageBreak(true, style.BottomMargin)
	pdf.SetTitle(fmt.Sprintf("%s - %s", in.Profile.Name, in.Profile.TargetRole), true)
	pdf.SetAuthor(in.Profile.Name, true)
	pdf.SetCreator("career-kit", true)

	r := &renderer{
		pdf:    pdf,
		style:  style,
		in:     in,
		encode: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	r.pageW, r.pageH = pdf.GetPageSize()
	r.contentW = r.pageW - 2*style.Margin

	pdf.SetHeaderFunc(r.header)
	pdf.SetFooterFunc(r.footer)
	pdf.AddPage()

	doc := in.Document
	if strings.TrimSpace(doc.Summary) != "" {
		r.sectionHeading(style.SummaryLabel)
		r.body(doc.Summary)
	}
	if strings.TrimSpace(doc.Resume) != "" {
		r.body(doc.Resume)
	}
	if strings.TrimSpace(doc.CoverLetter) != "" {
		pdf.AddPage()
		r.sectionHeading("Cover Letter")
		r.body(doc.CoverLetter)
	}

	if err := pdf.Output(w); err != nil {
		return &RenderError{Template: tmpl, Cause: err}
	}
	return nil
}

type renderer struct {
	pdf      *fpdf.Fpdf
	style    Style
	in       Input
	encode   func(string) string
	pageW    float64
	pageH    float64
	contentW float64
}

// text converts UTF-8 into the core fonts' single-byte encoding.
func (r *renderer) text(s string) string {
	return r.encode(Transliterate(s))
}

func (r *renderer) setText(c RGB) { r.pdf.SetTextColor(c.R, c.G, c.B) }
func (r *renderer) setDraw(c RGB) { r.pdf.SetDrawColor(c.R, c.G, c.B) }
func (r *renderer) setFill(c RGB) { r.pdf.SetFillColor(c.R, c.G, c.B) }

func (r *renderer) name() string {
	name := strings.TrimSpace(r.in.Profile.Name)
	if name == "" {
		name = "Candidate"
	}
	if r.style.NameUpper {
		name = strings.ToUpper(name)
	}
	return name
}

func (r *renderer) role() string {
	role := strings.TrimSpace(r.in.Profile.TargetRole)
	if r.style.RoleUpper {
		role = strings.ToUpper(role)
	}
	return role
}

// contactLine encodes each part before joining so the separator keeps its glyph.
func (r *renderer) contactLine() string {
	parts := r.in.Profile.ContactParts()
	for i, p := range parts {
		parts[i] = Transliterate(p)
	}
	return r.encode(strings.Join(parts, r.style.ContactSeparator))
}

// header runs at the top of every page and leaves the cursor where content starts.
func (r *renderer) header() {
	pdf, s := r.pdf, r.style
	left, w := s.Margin, r.contentW
	contacts := r.contactLine()

	switch s.Header {
	case headerBand:
		r.setFill(s.Dark)
		pdf.Rect(0, 0, r.pageW, 46, "F")
		pdf.SetXY(left, 9)
		pdf.SetFont(s.Font, "B", s.NameSize)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(w, 10, r.text(r.name()), "", 0, "L", false, 0, "")
		pdf.Ln(11)
		pdf.SetX(left)
		pdf.SetFont(s.Font, "B", 10)
		r.setText(s.Accent)
		pdf.CellFormat(w, 6, r.text(r.role()), "", 0, "L", false, 0, "")
		pdf.Ln(6)
		if contacts != "" {
			pdf.SetX(left)
			pdf.SetFont(s.Font, "", 8.5)
			r.setText(s.Muted)
			pdf.CellFormat(w, 5, contacts, "", 0, "L", false, 0, "")
		}
		pdf.SetY(s.HeaderEnd)

	case headerCentered:
		pdf.SetXY(left, s.Top)
		pdf.SetFont(s.Font, "B", s.NameSize)
		r.setText(s.Dark)
		pdf.CellFormat(w, 11, r.text(r.name()), "", 0, "C", false, 0, "")
		pdf.Ln(11)
		pdf.SetX(left)
		style := ""
		if s.RoleItalic {
			style = "I"
		}
		pdf.SetFont(s.Font, style, 10)
		r.setText(s.Body)
		pdf.CellFormat(w, 6, r.text(r.role()), "", 0, "C", false, 0, "")
		pdf.Ln(6)
		if contacts != "" {
			pdf.SetX(left)
			pdf.SetFont(s.Font, "", 9)
			r.setText(s.Muted)
			pdf.CellFormat(w, 5, contacts, "", 0, "C", false, 0, "")
			pdf.Ln(5)
		}
		pdf.Ln(3)
		r.setDraw(s.Dark)
		pdf.SetLineWidth(0.7)
		y := pdf.GetY()
		pdf.Line(left, y, left+w, y)
		pdf.Ln(6)

	case headerPlain:
		pdf.SetXY(left, s.Top)
		pdf.SetFont(s.Font, "B", s.NameSize)
		r.setText(s.Dark)
		pdf.CellFormat(w, 10, r.text(r.name()), "", 0, "L", false, 0, "")
		pdf.Ln(10)
		pdf.SetX(left)
		pdf.SetFont(s.Font, "", 10)
		r.setText(s.Accent)
		pdf.CellFormat(w, 6, r.text(r.role()), "", 0, "L", false, 0, "")
		pdf.Ln(6)
		if contacts != "" {
			pdf.SetX(left)
			pdf.SetFont(s.Font, "", 8)
			r.setText(s.Muted)
			pdf.CellFormat(w, 5, contacts, "", 0, "L", false, 0, "")
			pdf.Ln(5)
		}
		pdf.Ln(8)
		y := pdf.GetY()
		r.setDraw(s.Accent)
		pdf.SetLineWidth(1.2)
		pdf.Line(left, y, left+10, y)
		r.setDraw(s.Rule)
		pdf.SetLineWidth(0.25)
		pdf.Line(left+12, y, left+w, y)
		pdf.Ln(9)
	}
}

// FooterText is the summary line printed at the bottom of every page.
func (s Style) FooterText(score types.ScoreReport) string {
	grade := string(score.Grade)
	if grade == "" {
		grade = "N/A"
	}
	sep := s.FooterSeparator
	return fmt.Sprintf("%s%d/100%s%s%sWords: %d", s.FooterLabel, score.TotalScore, sep, grade, sep, score.WordCount)
}

func (r *renderer) footer() {
	pdf, s := r.pdf, r.style
	left, w := s.Margin, r.contentW
	summary := r.encode(s.FooterText(r.in.Score))

	switch s.Footer {
	case footerBand:
		r.setFill(s.Dark)
		pdf.Rect(0, r.pageH-16, r.pageW, 16, "F")
		pdf.SetXY(left, r.pageH-12)
		pdf.SetFont(s.Font, "B", 8.5)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(w, 5, summary, "", 0, "C", false, 0, "")
		pdf.SetXY(left, r.pageH-7)
		pdf.SetFont(s.Font, "I", 7)
		pdf.SetTextColor(165, 175, 195)
		pdf.CellFormat(w, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")

	case footerRule:
		y := r.pageH - 12
		r.setDraw(s.Muted)
		pdf.SetLineWidth(0.3)
		pdf.Line(left, y, left+w, y)
		pdf.SetXY(left, y+3)
		pdf.SetFont(s.Font, "I", 8)
		r.setText(s.Muted)
		pdf.CellFormat(w, 5, summary, "", 0, "C", false, 0, "")

	case footerPlain:
		pdf.SetXY(left, r.pageH-11)
		pdf.SetFont(s.Font, "", 7.5)
		r.setText(s.Muted)
		pdf.CellFormat(w, 5, summary, "", 0, "C", false, 0, "")
	}
}

// sectionHeading labels a whole section such as the summary or cover letter.
func (r *renderer) sectionHeading(label string) {
	pdf, s := r.pdf, r.style
	left, w := s.Margin, r.contentW
	label = r.text(strings.ToUpper(label))

	switch s.Heading {
	case decorationUnderline:
		pdf.Ln(4)
		pdf.SetX(left)
		pdf.SetFont(s.Font, "B", 10.5)
		r.setText(s.Dark)
		pdf.CellFormat(w, 7, label, "", 0, "L", false, 0, "")
		pdf.Ln(7)
		y := pdf.GetY() - 1
		r.setDraw(s.Accent)
		pdf.SetLineWidth(0.45)
		pdf.Line(left, y, left+30, y)
		pdf.Ln(3)

	case decorationFullRule:
		pdf.Ln(4)
		pdf.SetX(left)
		pdf.SetFont(s.Font, "B", 11)
		r.setText(s.Dark)
		pdf.CellFormat(w, 7, label, "", 0, "L", false, 0, "")
		pdf.Ln(7)
		y := pdf.GetY()
		r.setDraw(s.Dark)
		pdf.SetLineWidth(0.3)
		pdf.Line(left, y, left+w, y)
		pdf.Ln(4)

	case decorationBar:
		pdf.Ln(6)
		r.ensureSpace(6.5)
		y := pdf.GetY()
		r.setFill(s.Accent)
		pdf.Rect(left, y, 2.5, 6.5, "F")
		pdf.SetX(left + 4.5)
		pdf.SetFont(s.Font, "B", 9.5)
		r.setText(s.Dark)
		pdf.CellFormat(w-4.5, 6.5, label, "", 0, "L", false, 0, "")
		pdf.Ln(8)
	}
	r.setText(s.Body)
}

// body lays out one section's text line by line.
func (r *renderer) body(text string) {
	pdf, s := r.pdf, r.style
	left, w := s.Margin, r.contentW

	for _, line := range Layout(text) {
		switch line.Kind {
		case LineBlank:
			pdf.Ln(blankLineHeight)

		case LineHeading:
			pdf.Ln(3)
			r.ensureSpace(headingHeight + 3)
			pdf.SetX(left)
			pdf.SetFont(s.Font, "B", bodyFontSize)
			r.setText(s.Dark)
			pdf.CellFormat(w, headingHeight, r.text(line.Text), "", 0, "L", false, 0, "")
			pdf.Ln(headingHeight)
			y := pdf.GetY()
			r.setDraw(s.Rule)
			pdf.SetLineWidth(0.2)
			pdf.Line(left, y, left+w, y)
			pdf.Ln(3)

		case LineBullet:
			r.ensureSpace(bodyLineHeight)
			pdf.SetFont(s.Font, "", bodyFontSize)
			r.setText(s.Body)
			r.setFill(s.Body)
			pdf.Circle(left+bulletIndent/2, pdf.GetY()+bodyLineHeight/2, bulletRadius, "F")
			pdf.SetX(left + bulletIndent)
			pdf.MultiCell(w-bulletIndent, bodyLineHeight, r.text(line.Text), "", "L", false)

		case LineParagraph:
			pdf.SetFont(s.Font, "", bodyFontSize)
			r.setText(s.Body)
			pdf.SetX(left)
			pdf.MultiCell(w, bodyLineHeight, r.text(line.Text), "", "L", false)
		}
	}
	pdf.Ln(sectionGap)
}

// ensureSpace starts a new page when h millimetres no longer fit above the
// bottom margin, so decorations are not separated from their text.
func (r *renderer) ensureSpace(h float64) {
	if r.pdf.GetY()+h > r.pageH-r.style.BottomMargin {
		r.pdf.AddPage()
	}
}
