// Package metatags composes length-bounded SEO titles and descriptions.
package metatags

import (
	"strings"

	"github.com/seo-optimizer/toolkit/validation"
)

const (
	TitleLimit       = 60
	DescriptionLimit = 160

	// Titles shorter than this are extended with the first keyword.
	shortTitle = 30
	ellipsis   = "..."
)

// Result holds the composed tags.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Compose derives a title and description from free text and keywords.
//
// A title short enough to be augmented with " | keyword" is not re-checked
// against TitleLimit afterwards, so an augmented title may exceed it; TitleStatus
// reports such titles as a warning.
func Compose(title, description string, keywords []string) (*Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validation.New("title", "please enter a page title to generate meta tags")
	}
	keywords = normalize(keywords)

	composed := title
	if n := length(title); n > TitleLimit {
		composed = truncate(title, TitleLimit)
	} else if n < shortTitle && len(keywords) > 0 {
		composed = title + " | " + keywords[0]
	}

	desc := strings.TrimSpace(description)
	if desc == "" {
		desc = synthesize(title, keywords)
	}
	if length(desc) > DescriptionLimit {
		desc = truncate(desc, DescriptionLimit)
	}

	return &Result{Title: composed, Description: desc}, nil
}

func synthesize(title string, keywords []string) string {
	var b strings.Builder
	b.WriteString("Learn about ")
	b.WriteString(strings.ToLower(title))
	b.WriteString(". ")
	if len(keywords) > 0 {
		b.WriteString("Discover ")
		b.WriteString(strings.Join(keywords[:min(2, len(keywords))], ", "))
		b.WriteString(" and more.")
	}
	return b.String()
}

// truncate cuts s so that, with the ellipsis, it is exactly limit characters.
func truncate(s string, limit int) string {
	r := []rune(s)
	return string(r[:limit-len(ellipsis)]) + ellipsis
}

func length(s string) int {
	return len([]rune(s))
}

// ParseKeywords splits a comma separated keyword list.
func ParseKeywords(csv string) []string {
	return normalize(strings.Split(csv, ","))
}

func normalize(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
