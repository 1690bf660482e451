// Package types provides type definitions for structured data used throughout the career kit.
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CandidateProfile is the user-submitted input for one generation.
type CandidateProfile struct {
	Name       string `json:"name" yaml:"name" validate:"required"`
	Email      string `json:"email" yaml:"email" validate:"required,email"`
	Phone      string `json:"phone" yaml:"phone" validate:"required"`
	LinkedIn   string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Education  string `json:"education" yaml:"education" validate:"required"`
	Skills     string `json:"skills" yaml:"skills" validate:"required"`
	Projects   string `json:"projects" yaml:"projects" validate:"required"`
	Experience string `json:"experience,omitempty" yaml:"experience,omitempty"`
	TargetRole string `json:"target_role" yaml:"target_role" validate:"required"`
}

// requiredFields lists the mandatory fields with the labels shown to users.
var requiredFields = []struct {
	label string
	value func(CandidateProfile) string
}{
	{"Full Name", func(p CandidateProfile) string { return p.Name }},
	{"Email", func(p CandidateProfile) string { return p.Email }},
	{"Phone", func(p CandidateProfile) string { return p.Phone }},
	{"Education", func(p CandidateProfile) string { return p.Education }},
	{"Skills", func(p CandidateProfile) string { return p.Skills }},
	{"Projects", func(p CandidateProfile) string { return p.Projects }},
	{"Target Job Role", func(p CandidateProfile) string { return p.TargetRole }},
}

// ProfileError lists every problem found in a profile.
type ProfileError struct {
	Problems []string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s", strings.Join(e.Problems, "; "))
}

// Validate reports blank required fields and a malformed email address.
// Whitespace-only values count as blank.
func (p CandidateProfile) Validate() error {
	var problems []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(p)) == "" {
			problems = append(problems, f.label+" is required.")
		}
	}
	if len(problems) > 0 {
		return &ProfileError{Problems: problems}
	}

	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed the %q check.", fe.Field(), fe.Tag()))
			}
			return &ProfileError{Problems: problems}
		}
		return err
	}
	return nil
}

// SkillList splits the raw skills text on commas, trimming each entry and
// dropping empties. Order and case are preserved.
func (p CandidateProfile) SkillList() []string {
	return SplitList(p.Skills)
}

// ContactParts returns the non-empty contact fields in display order.
func (p CandidateProfile) ContactParts() []string {
	var parts []string
	for _, v := range []string{p.Email, p.Phone, p.LinkedIn} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

// SplitList splits comma-separated text into trimmed, non-empty items.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
