package types

// Grade is the ordinal quality tier of a score.
type Grade string

// Grades from best to worst.
const (
	GradeExcellent        Grade = "Excellent"
	GradeGood             Grade = "Good"
	GradeAverage          Grade = "Average"
	GradeNeedsImprovement Grade = "Needs Improvement"
)

// Color returns the presentation color tied to the grade.
func (g Grade) Color() string {
	switch g {
	case GradeExcellent:
		return "#10b981"
	case GradeGood:
		return "#3b82f6"
	case GradeAverage:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// ScoreReport is the heuristic quality score of a generated resume.
// TotalScore is always VerbScore + KeywordScore + LengthScore.
type ScoreReport struct {
	TotalScore          int      `json:"total_score"`
	VerbScore           int      `json:"verb_score"`
	KeywordScore        int      `json:"keyword_score"`
	LengthScore         int      `json:"length_score"`
	WordCount           int      `json:"word_count"`
	VerbCount           int      `json:"verb_count"`
	FoundVerbs          []string `json:"found_verbs"`
	SkillsMatched       []string `json:"skills_matched"`
	RoleKeywordsMatched []string `json:"role_keywords_matched"`
	Grade               Grade    `json:"grade"`
	Color               string   `json:"color"`
}
