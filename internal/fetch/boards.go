package fetch

import (
	"net/url"
	"strings"
)

// Board is a hosted job board with a known page layout.
type Board string

const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardUnknown    Board = "unknown"
)

type boardLayout struct {
	hosts   []string
	content []string
	noise   []string
}

var layouts = map[Board]boardLayout{
	BoardGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", "#usa_self_id_section", ".post-apply"},
	},
	BoardLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".posting-description", ".content"},
		noise:   []string{".posting-apply", ".apply-section"},
	},
	BoardWorkday: {
		hosts:   []string{"myworkdayjobs.com", "workday.com"},
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
		noise:   []string{"[data-automation-id='applyButton']"},
	},
	BoardAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"._descriptionText", "main"},
	},
}

var genericContent = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
	".content",
}

// DetectBoard identifies the job board hosting rawURL.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for board, layout := range layouts {
		for _, h := range layout.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return board
			}
		}
	}
	return BoardUnknown
}

// Selectors returns the content and noise selectors for board. Board
// specific content selectors are tried before the generic ones.
func Selectors(board Board) (content, noise []string) {
	layout := layouts[board]
	content = append(append(content, layout.content...), genericContent...)
	noise = append(noise, layout.noise...)
	return content, noise
}
