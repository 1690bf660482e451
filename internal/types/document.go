package types

// Section names a labeled block of generated text.
type Section string

// The three sections a generation response is split into.
const (
	SectionSummary     Section = "summary"
	SectionResume      Section = "resume"
	SectionCoverLetter Section = "cover_letter"
)

// Sections lists every section in output order.
var Sections = []Section{SectionSummary, SectionResume, SectionCoverLetter}

// ParsedDocument holds the generated text split into its sections.
// Every field is trimmed and may be empty.
type ParsedDocument struct {
	Summary     string `json:"summary"`
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter"`
}

// Get returns the text of a section.
func (d ParsedDocument) Get(s Section) string {
	switch s {
	case SectionSummary:
		return d.Summary
	case SectionResume:
		return d.Resume
	case SectionCoverLetter:
		return d.CoverLetter
	}
	return ""
}

// Set replaces the text of a section.
func (d *ParsedDocument) Set(s Section, text string) {
	switch s {
	case SectionSummary:
		d.Summary = text
	case SectionResume:
		d.Resume = text
	case SectionCoverLetter:
		d.CoverLetter = text
	}
}

// ScoringText is the text a generation is scored on: the resume followed by the summary.
func (d ParsedDocument) ScoringText() string {
	return d.Resume + " " + d.Summary
}
