// Package ingestion turns uploaded resumes and job postings into clean text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	extraBlanks = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings and whitespace. Leading indentation
// is kept so nested bullets survive, runs of inner whitespace collapse to
// one space, and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u200b", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	content = extraBlanks.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(content)
}

func cleanLine(line string) string {
	body := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(body) == "" {
		return ""
	}
	indent := len(line) - len(body)
	body = strings.TrimSpace(innerSpace.ReplaceAllString(body, " "))
	return strings.Repeat(" ", indent) + body
}

// ReadFile extracts and cleans the text of the document at path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return ExtractText(filepath.Base(path), data)
}
