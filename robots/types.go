package robots

import "fmt"

// Kind classifies a single robots.txt line.
type Kind string

const (
	Comment    Kind = "comment"
	UserAgent  Kind = "user-agent"
	Allow      Kind = "allow"
	Disallow   Kind = "disallow"
	Sitemap    Kind = "sitemap"
	CrawlDelay Kind = "crawl-delay"
	Unknown    Kind = "unknown"
)

// Directive is one classified, non-blank line of a robots.txt document.
type Directive struct {
	Kind Kind   `json:"type"`
	Line int    `json:"line"`    // 1-based, blank lines included
	Text string `json:"content"` // trimmed source line
	Note string `json:"message,omitempty"`
}

// Summary counts directives per kind.
type Summary struct {
	Comments    int `json:"comments"`
	UserAgents  int `json:"userAgents"`
	Allows      int `json:"allows"`
	Disallows   int `json:"disallows"`
	Sitemaps    int `json:"sitemaps"`
	CrawlDelays int `json:"crawlDelays"`
	Unknown     int `json:"unknown"`
}

func (s *Summary) add(k Kind) {
	switch k {
	case Comment:
		s.Comments++
	case UserAgent:
		s.UserAgents++
	case Allow:
		s.Allows++
	case Disallow:
		s.Disallows++
	case Sitemap:
		s.Sitemaps++
	case CrawlDelay:
		s.CrawlDelays++
	default:
		s.Unknown++
	}
}

// Total is the number of classified lines.
func (s Summary) Total() int {
	return s.Comments + s.UserAgents + s.Allows + s.Disallows + s.Sitemaps + s.CrawlDelays + s.Unknown
}

// Valid reports whether every line was a recognized directive or comment.
func (s Summary) Valid() bool {
	return s.Unknown == 0
}

// Message is the text shown once analysis completes.
func (s Summary) Message() string {
	if s.Valid() {
		return "Your robots.txt appears to be valid!"
	}
	return fmt.Sprintf("Found %d potential issue(s) in your robots.txt", s.Unknown)
}

// Report is the ordered result of Analyze.
type Report struct {
	Directives []Directive `json:"results"`
	Summary    Summary     `json:"summary"`
}
