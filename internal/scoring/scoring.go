// Package scoring computes a deterministic heuristic quality score for generated resume text.
package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-kit/internal/types"
)

// Component caps and rates
const (
	maxVerbScore    = 30
	pointsPerVerb   = 5
	maxKeywordScore = 40
	// keywordScale is applied to the match ratio before capping, so half the
	// keywords already earn the full keyword score.
	keywordScale    = 80
	maxLengthScore  = 30
	targetWordCount = 300
	// minRoleWordLen excludes short role words such as "of" or "and".
	minRoleWordLen   = 3
	maxReportedVerbs = 10
)

// Grade thresholds, checked from the top
const (
	excellentThreshold = 85
	goodThreshold      = 65
	averageThreshold   = 45
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Score rates resume text against the candidate's comma-separated skills and
// the target role. It never fails; empty input scores zero.
func Score(text, skills, targetRole string) types.ScoreReport {
	lower := strings.ToLower(text)
	words := wordSet(lower)

	verbs := matchVerbs(words)
	verbScore := min(maxVerbScore, len(verbs)*pointsPerVerb)

	skillList := lowerSkills(skills)
	roleWords := uniqueWords(strings.ToLower(targetRole))
	skillsMatched := make([]string, 0)
	for _, skill := range skillList {
		if strings.Contains(lower, skill) {
			skillsMatched = append(skillsMatched, skill)
		}
	}
	roleMatched := make([]string, 0)
	for _, word := range roleWords {
		if utf8.RuneCountInString(word) > minRoleWordLen && words[word] {
			roleMatched = append(roleMatched, word)
		}
	}
	keywordScore := computeKeywordScore(len(skillsMatched)+len(roleMatched), len(skillList)+len(roleWords))

	wordCount := len(strings.Fields(lower))
	lengthScore := computeLengthScore(wordCount)

	total := verbScore + keywordScore + lengthScore
	grade := GradeFor(total)

	reported := verbs
	if len(reported) > maxReportedVerbs {
		reported = reported[:maxReportedVerbs]
	}

	return types.ScoreReport{
		TotalScore:          total,
		VerbScore:           verbScore,
		KeywordScore:        keywordScore,
		LengthScore:         lengthScore,
		WordCount:           wordCount,
		VerbCount:           len(verbs),
		FoundVerbs:          reported,
		SkillsMatched:       skillsMatched,
		RoleKeywordsMatched: roleMatched,
		Grade:               grade,
		Color:               grade.Color(),
	}
}

// GradeFor maps a total score to its grade tier.
func GradeFor(total int) types.Grade {
	switch {
	case total >= excellentThreshold:
		return types.GradeExcellent
	case total >= goodThreshold:
		return types.GradeGood
	case total >= averageThreshold:
		return types.GradeAverage
	default:
		return types.GradeNeedsImprovement
	}
}

// computeKeywordScore scales the matched ratio by keywordScale and caps it.
// The denominator is at least one so empty inputs score zero.
func computeKeywordScore(matched, total int) int {
	total = max(total, 1)
	score := int(float64(matched) / float64(total) * keywordScale)
	return min(maxKeywordScore, score)
}

// computeLengthScore grows linearly up to targetWordCount words.
func computeLengthScore(wordCount int) int {
	score := int(float64(wordCount) / targetWordCount * maxLengthScore)
	return min(maxLengthScore, score)
}

// matchVerbs returns the vocabulary verbs present as whole words, in vocabulary order.
func matchVerbs(words map[string]bool) []string {
	found := make([]string, 0)
	for _, verb := range ActionVerbs {
		if words[verb] {
			found = append(found, verb)
		}
	}
	return found
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(text, -1) {
		set[w] = true
	}
	return set
}

// uniqueWords tokenizes text into distinct words in order of first appearance.
func uniqueWords(text string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, w := range wordPattern.FindAllString(text, -1) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func lowerSkills(skills string) []string {
	list := types.SplitList(skills)
	for i, s := range list {
		list[i] = strings.ToLower(s)
	}
	return list
}
