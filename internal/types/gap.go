package types

// GapReport is the parsed result of comparing a resume to a job description.
type GapReport struct {
	MatchScore      int      `json:"match_score"`
	MissingKeywords []string `json:"missing_keywords"`
	PresentKeywords []string `json:"present_keywords"`
	Suggestions     []string `json:"suggestions"`
	QuickWins       []string `json:"quick_wins"`
}

// MatchBand is the presentation label for a match score.
type MatchBand struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Band returns the presentation band for the report's match score.
func (r GapReport) Band() MatchBand {
	switch {
	case r.MatchScore >= 70:
		return MatchBand{Label: "Strong Match", Color: "#10b981"}
	case r.MatchScore >= 45:
		return MatchBand{Label: "Moderate Match", Color: "#f59e0b"}
	default:
		return MatchBand{Label: "Weak Match", Color: "#ef4444"}
	}
}

// TipPriority ranks an improvement tip.
type TipPriority string

// Tip priorities, with the marker each one is written with.
const (
	TipCritical  TipPriority = "critical"
	TipImportant TipPriority = "important"
	TipPolish    TipPriority = "polish"
	TipUnranked  TipPriority = "unranked"
)

// Marker returns the glyph a tip of this priority starts with.
func (p TipPriority) Marker() string {
	switch p {
	case TipCritical:
		return "🔴"
	case TipImportant:
		return "🟡"
	case TipPolish:
		return "🟢"
	}
	return ""
}

// Tip is one improvement suggestion for a resume.
type Tip struct {
	Priority TipPriority `json:"priority"`
	Text     string      `json:"text"`
}
