package metatags

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Source is the existing head metadata of an HTML page.
type Source struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

var strict = bluemonday.StrictPolicy()

// Extract reads the title, meta description and meta keywords of an HTML
// document so they can be fed to Compose.
func Extract(r io.Reader) (*Source, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	src := &Source{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find("meta[name='description']").First().Attr("content"); ok {
		src.Description = clean(desc)
	}
	if kw, ok := doc.Find("meta[name='keywords']").First().Attr("content"); ok {
		src.Keywords = ParseKeywords(clean(kw))
	}
	return src, nil
}

// clean strips markup that sometimes leaks into attribute values.
func clean(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
}
