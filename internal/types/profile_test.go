package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() CandidateProfile {
	return CandidateProfile{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Phone:      "555-0100",
		Education:  "BSc Mathematics",
		Skills:     "Python, SQL",
		Projects:   "Analytical engine notes",
		TargetRole: "Data Analyst",
	}
}

func TestCandidateProfile_Validate(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		assert.NoError(t, validProfile().Validate())
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		p := validProfile()
		p.LinkedIn = ""
		p.Experience = ""
		assert.NoError(t, p.Validate())
	})

	t.Run("blank and whitespace fields are reported by label", func(t *testing.T) {
		p := validProfile()
		p.Name = "   "
		p.TargetRole = ""
		err := p.Validate()
		require.Error(t, err)

		var perr *ProfileError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, []string{"Full Name is required.", "Target Job Role is required."}, perr.Problems)
	})

	t.Run("malformed email", func(t *testing.T) {
		p := validProfile()
		p.Email = "not-an-email"
		err := p.Validate()

		var perr *ProfileError
		require.ErrorAs(t, err, &perr)
		require.Len(t, perr.Problems, 1)
		assert.Contains(t, perr.Problems[0], "Email")
	})
}

func TestCandidateProfile_SkillList(t *testing.T) {
	p := CandidateProfile{Skills: " Python , ,SQL,  Machine Learning ,"}
	assert.Equal(t, []string{"Python", "SQL", "Machine Learning"}, p.SkillList())
	assert.Nil(t, CandidateProfile{}.SkillList())
}

func TestCandidateProfile_ContactParts(t *testing.T) {
	p := CandidateProfile{Email: "a@b.co", Phone: " 123 ", LinkedIn: ""}
	assert.Equal(t, []string{"a@b.co", "123"}, p.ContactParts())
}

func TestParsedDocument_ScoringText(t *testing.T) {
	d := ParsedDocument{Summary: "sum", Resume: "res"}
	assert.Equal(t, "res sum", d.ScoringText())

	d.Set(SectionCoverLetter, "dear")
	assert.Equal(t, "dear", d.Get(SectionCoverLetter))
}

func TestGrade_Color(t *testing.T) {
	assert.Equal(t, "#10b981", GradeExcellent.Color())
	assert.Equal(t, "#3b82f6", GradeGood.Color())
	assert.Equal(t, "#f59e0b", GradeAverage.Color())
	assert.Equal(t, "#ef4444", GradeNeedsImprovement.Color())
}

func TestGapReport_Band(t *testing.T) {
	assert.Equal(t, "Strong Match", GapReport{MatchScore: 70}.Band().Label)
	assert.Equal(t, "Moderate Match", GapReport{MatchScore: 69}.Band().Label)
	assert.Equal(t, "Moderate Match", GapReport{MatchScore: 45}.Band().Label)
	assert.Equal(t, "Weak Match", GapReport{MatchScore: 44}.Band().Label)
}
