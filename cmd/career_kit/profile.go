package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/career-kit/internal/schemas"
	"github.com/jonathan/career-kit/internal/types"
)

// loadProfile reads a candidate profile from a JSON or YAML file and
// checks it against the profile schema.
func loadProfile(path string) (types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CandidateProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile types.CandidateProfile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return types.CandidateProfile{}, fmt.Errorf("failed to parse profile YAML: %w", err)
		}
		if err := schemas.ValidateProfileValue(raw); err != nil {
			return types.CandidateProfile{}, err
		}
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return types.CandidateProfile{}, fmt.Errorf("failed to parse profile YAML: %w", err)
		}
	default:
		if err := schemas.ValidateProfile(data); err != nil {
			return types.CandidateProfile{}, err
		}
		if err := json.Unmarshal(data, &profile); err != nil {
			return types.CandidateProfile{}, fmt.Errorf("failed to parse profile JSON: %w", err)
		}
	}
	return profile, nil
}

// profileFlags binds one flag per profile field. Set flags override the
// values from a profile file.
type profileFlags struct {
	path    string
	profile types.CandidateProfile
}

func (p *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&p.path, "profile", "p", "", "Path to a JSON or YAML candidate profile")
	fs.StringVarP(&p.profile.Name, "name", "n", "", "Full name")
	fs.StringVar(&p.profile.Email, "email", "", "Email address")
	fs.StringVar(&p.profile.Phone, "phone", "", "Phone number")
	fs.StringVar(&p.profile.LinkedIn, "linkedin", "", "LinkedIn profile URL")
	fs.StringVar(&p.profile.Education, "education", "", "Education history")
	fs.StringVar(&p.profile.Skills, "skills", "", "Comma-separated skills")
	fs.StringVar(&p.profile.Projects, "projects", "", "Projects")
	fs.StringVar(&p.profile.Experience, "experience", "", "Work experience")
	fs.StringVarP(&p.profile.TargetRole, "role", "r", "", "Target job role")
}

// resolve loads the profile file, if any, and applies set flags on top.
func (p *profileFlags) resolve(fs *pflag.FlagSet) (types.CandidateProfile, error) {
	var profile types.CandidateProfile
	if p.path != "" {
		loaded, err := loadProfile(p.path)
		if err != nil {
			return types.CandidateProfile{}, err
		}
		profile = loaded
	}

	overrides := []struct {
		flag string
		dst  *string
		src  string
	}{
		{"name", &profile.Name, p.profile.Name},
		{"email", &profile.Email, p.profile.Email},
		{"phone", &profile.Phone, p.profile.Phone},
		{"linkedin", &profile.LinkedIn, p.profile.LinkedIn},
		{"education", &profile.Education, p.profile.Education},
		{"skills", &profile.Skills, p.profile.Skills},
		{"projects", &profile.Projects, p.profile.Projects},
		{"experience", &profile.Experience, p.profile.Experience},
		{"role", &profile.TargetRole, p.profile.TargetRole},
	}
	for _, o := range overrides {
		if fs.Changed(o.flag) {
			*o.dst = o.src
		}
	}
	return profile, nil
}
