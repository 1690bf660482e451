package parsing

import (
	"strings"

	"github.com/jonathan/career-kit/internal/types"
)

// markers maps the normalized marker text to the section it opens.
var markers = map[string]types.Section{
	"SUMMARY":      types.SectionSummary,
	"RESUME":       types.SectionResume,
	"COVER LETTER": types.SectionCoverLetter,
}

// ParseSections splits a raw generation response into summary, resume and
// cover letter. A section opens at a line consisting only of its marker and
// runs until the next marker line. Text ahead of the first marker is
// dropped. When no marker appears at all, the whole normalized text becomes
// the resume so a generation is never lost. ParseSections never fails.
func ParseSections(raw string) types.ParsedDocument {
	text := StripMarkdown(raw)

	var (
		doc     types.ParsedDocument
		current types.Section
		found   bool
		bodies  = make(map[types.Section][]string, len(markers))
	)

	for _, line := range strings.Split(text, "\n") {
		if section, ok := MarkerSection(line); ok {
			current = section
			found = true
			continue
		}
		if current != "" {
			bodies[current] = append(bodies[current], line)
		}
	}

	if !found {
		doc.Resume = strings.TrimSpace(text)
		return doc
	}

	for section, lines := range bodies {
		doc.Set(section, strings.TrimSpace(strings.Join(lines, "\n")))
	}
	return doc
}

// MarkerSection reports whether line is a section marker and which section
// it opens. Matching ignores case, leading heading hashes, surrounding
// emphasis, a trailing colon, and repeated inner spaces.
func MarkerSection(line string) (types.Section, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "# ")
	s = strings.Trim(s, "*_ ")
	s = strings.TrimSuffix(s, ":")
	s = strings.Trim(s, "*_ ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", false
	}
	section, ok := markers[strings.ToUpper(s)]
	return section, ok
}
