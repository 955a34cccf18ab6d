// Package robots classifies the lines of a robots.txt document and tests URLs
// against its rules.
package robots

import (
	"strings"
	"unicode"

	"github.com/seo-optimizer/toolkit/validation"
)

// SampleRobotsTxt is the example document offered to users.
const SampleRobotsTxt = `# Robots.txt for example.com
User-agent: *
Allow: /
Disallow: /admin/
Disallow: /private/
Disallow: /api/

User-agent: Googlebot
Allow: /
Crawl-delay: 10

Sitemap: https://example.com/sitemap.xml`

// prefixes are checked in order; the first match wins.
var prefixes = []struct {
	prefix string
	kind   Kind
}{
	{"user-agent:", UserAgent},
	{"allow:", Allow},
	{"disallow:", Disallow},
	{"sitemap:", Sitemap},
	{"crawl-delay:", CrawlDelay},
}

// Analyze classifies every non-blank line of text. Lines that match no known
// directive are reported as Unknown rather than failing the analysis; only an
// empty document is rejected.
func Analyze(text string) (*Report, error) {
	if trim(text) == "" {
		return nil, validation.New("robotsTxt", "please enter your robots.txt content to analyze")
	}

	report := &Report{Directives: make([]Directive, 0, strings.Count(text, "\n")+1)}
	for i, line := range strings.Split(text, "\n") {
		trimmed := trim(line)
		if trimmed == "" {
			continue
		}
		d := classify(trimmed)
		d.Line = i + 1
		report.Directives = append(report.Directives, d)
		report.Summary.add(d.Kind)
	}
	return report, nil
}

// trim removes surrounding whitespace, including byte-order marks.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}

func classify(line string) Directive {
	if strings.HasPrefix(line, "#") {
		return Directive{Kind: Comment, Text: line}
	}

	kind := Unknown
	lower := strings.ToLower(line)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			kind = p.kind
			break
		}
	}

	d := Directive{Kind: kind, Text: line}
	switch kind {
	case UserAgent:
		d.Note = "Defines rules for: " + orDefault(value(line), "unknown")
	case Allow:
		d.Note = "Allows crawling of: " + orDefault(value(line), "/")
	case Disallow:
		if path := value(line); path != "" {
			d.Note = "Blocks crawling of: " + path
		} else {
			d.Note = "Empty disallow (allows all)"
		}
	case Sitemap:
		_, rest, _ := strings.Cut(line, ":")
		d.Note = "References sitemap at: " + strings.TrimSpace(rest)
	case CrawlDelay:
		d.Note = "Sets crawl delay to " + value(line) + " seconds"
	default:
		d.Note = "Unknown or invalid directive"
	}
	return d
}

// value returns the field between the first and second colon.
func value(line string) string {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
