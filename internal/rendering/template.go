package rendering

import "strings"

// Template selects the visual design of a rendered PDF.
type Template string

// Available templates
const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	TemplateMinimal Template = "minimal"
)

// DefaultTemplate is used when no template is requested.
const DefaultTemplate = TemplateModern

// Templates lists every template in display order.
var Templates = []Template{TemplateModern, TemplateClassic, TemplateMinimal}

// ParseTemplate converts a template name, case-insensitively.
// An empty name selects DefaultTemplate.
func ParseTemplate(name string) (Template, error) {
	t := Template(strings.ToLower(strings.TrimSpace(name)))
	if t == "" {
		return DefaultTemplate, nil
	}
	if _, ok := styles[t]; !ok {
		return "", &TemplateError{Name: name}
	}
	return t, nil
}

// Title returns the display name of the template.
func (t Template) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// RGB is a color with 0-255 channels.
type RGB struct{ R, G, B int }

type headerLayout int

const (
	// headerBand fills a dark band behind left-aligned header text.
	headerBand headerLayout = iota
	// headerCentered centers the header and closes it with a heavy rule.
	headerCentered
	// headerPlain left-aligns the header above a short accent line.
	headerPlain
)

type headingDecoration int

const (
	decorationUnderline headingDecoration = iota
	decorationFullRule
	decorationBar
)

type footerLayout int

const (
	footerBand footerLayout = iota
	footerRule
	footerPlain
)

// Style is the configuration one template feeds to the shared layout engine.
type Style struct {
	Font         string
	Margin       float64
	Top          float64
	BottomMargin float64

	Dark   RGB
	Accent RGB
	Body   RGB
	Muted  RGB
	Rule   RGB

	Header     headerLayout
	Heading    headingDecoration
	Footer     footerLayout
	HeaderEnd  float64
	NameUpper  bool
	RoleUpper  bool
	RoleItalic bool
	NameSize   float64

	ContactSeparator string
	SummaryLabel     string
	FooterLabel      string
	FooterSeparator  string
}

var styles = map[Template]Style{
	TemplateModern: {
		Font:             "Helvetica",
		Margin:           18,
		Top:              10,
		BottomMargin:     22,
		Dark:             RGB{22, 28, 54},
		Accent:           RGB{67, 143, 232},
		Body:             RGB{30, 35, 45},
		Muted:            RGB{180, 195, 220},
		Rule:             RGB{210, 215, 228},
		Header:           headerBand,
		Heading:          decorationUnderline,
		Footer:           footerBand,
		HeaderEnd:        52,
		NameUpper:        true,
		RoleUpper:        true,
		NameSize:         21,
		ContactSeparator: "  |  ",
		SummaryLabel:     "Professional Summary",
		FooterLabel:      "ATS Score: ",
		FooterSeparator:  "  |  ",
	},
	TemplateClassic: {
		Font:             "Times",
		Margin:           22,
		Top:              16,
		BottomMargin:     22,
		Dark:             RGB{15, 15, 15},
		Accent:           RGB{15, 15, 15},
		Body:             RGB{75, 75, 75},
		Muted:            RGB{140, 140, 140},
		Rule:             RGB{140, 140, 140},
		Header:           headerCentered,
		Heading:          decorationFullRule,
		Footer:           footerRule,
		NameUpper:        true,
		RoleItalic:       true,
		NameSize:         22,
		ContactSeparator: "  ·  ",
		SummaryLabel:     "Professional Summary",
		FooterLabel:      "Resume Strength: ",
		FooterSeparator:  "  |  ",
	},
	TemplateMinimal: {
		Font:             "Helvetica",
		Margin:           24,
		Top:              20,
		BottomMargin:     28,
		Dark:             RGB{12, 12, 12},
		Accent:           RGB{20, 184, 166},
		Body:             RGB{55, 65, 75},
		Muted:            RGB{150, 160, 170},
		Rule:             RGB{220, 225, 230},
		Header:           headerPlain,
		Heading:          decorationBar,
		Footer:           footerPlain,
		NameSize:         19,
		ContactSeparator: "  ·  ",
		SummaryLabel:     "About",
		FooterLabel:      "ATS Score ",
		FooterSeparator:  "  ·  ",
	},
}

// StyleFor returns the style of a template.
func StyleFor(t Template) (Style, error) {
	s, ok := styles[t]
	if !ok {
		return Style{}, &TemplateError{Name: string(t)}
	}
	return s, nil
}
