package prompts

import (
	"strings"

	"github.com/jonathan/career-kit/internal/types"
)

const (
	resumeFile   = "resume.json"
	analysisFile = "analysis.json"
)

// Fallback values substituted for optional profile fields.
const (
	NoExperience         = "No prior work experience."
	NoLinkedIn           = "N/A"
	EntryLevelExperience = "Entry-level / student"
)

// Prompt is a system instruction paired with the user message.
type Prompt struct {
	System string
	User   string
}

// ResumeSystemPrompt returns the instruction that fixes the generation
// output format: three uppercase markers, plain text, "  - " bullets.
func ResumeSystemPrompt() string {
	return MustGet(resumeFile, "resume-system")
}

// BuildResumePrompt serializes a profile into the generation request.
// Empty experience and LinkedIn fields are replaced with fixed sentinels.
// It never fails.
func BuildResumePrompt(p types.CandidateProfile) string {
	user := Format(MustGet(resumeFile, "resume-user"), map[string]string{
		"TargetRole": p.TargetRole,
		"Name":       p.Name,
		"Email":      p.Email,
		"Phone":      p.Phone,
		"LinkedIn":   orDefault(p.LinkedIn, NoLinkedIn),
		"Education":  p.Education,
		"Skills":     p.Skills,
		"Experience": orDefault(p.Experience, NoExperience),
		"Projects":   strings.TrimSpace(p.Projects),
	})
	return strings.TrimSpace(user)
}

// ResumePrompt returns the full generation prompt for a profile.
func ResumePrompt(p types.CandidateProfile) Prompt {
	return Prompt{System: ResumeSystemPrompt(), User: BuildResumePrompt(p)}
}

// GapPrompt asks for a five-block comparison of a resume to a job description.
func GapPrompt(jobDescription, resumeText string) Prompt {
	return Prompt{
		System: MustGet(analysisFile, "gap-system"),
		User: Format(MustGet(analysisFile, "gap-user"), map[string]string{
			"JobDescription": jobDescription,
			"Resume":         resumeText,
		}),
	}
}

// TipsPrompt asks for eight prioritized improvement tips.
func TipsPrompt(resumeText, targetRole string) Prompt {
	return Prompt{
		System: MustGet(analysisFile, "tips-system"),
		User: Format(MustGet(analysisFile, "tips-user"), map[string]string{
			"TargetRole": targetRole,
			"Resume":     resumeText,
		}),
	}
}

// LinkedInPrompt asks for a first-person LinkedIn About section.
func LinkedInPrompt(p types.CandidateProfile) Prompt {
	return Prompt{
		System: MustGet(analysisFile, "linkedin-system"),
		User: Format(MustGet(analysisFile, "linkedin-user"), map[string]string{
			"Name":       p.Name,
			"TargetRole": p.TargetRole,
			"Skills":     p.Skills,
			"Experience": orDefault(p.Experience, EntryLevelExperience),
			"Projects":   p.Projects,
		}),
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
