package toolkit

import (
	"encoding/json"

	"github.com/seo-optimizer/toolkit/metatags"
	"github.com/seo-optimizer/toolkit/robots"
	"github.com/seo-optimizer/toolkit/schema"
)

// RobotsReport is the robots.txt analysis shown to the user.
type RobotsReport struct {
	*robots.Report
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// RobotsTestResult answers whether a URL may be crawled.
type RobotsTestResult struct {
	URL       string `json:"url"`
	UserAgent string `json:"userAgent"`
	Allowed   bool   `json:"allowed"`
	RobotsURL string `json:"robotsUrl"`
}

// TagAnalysis grades one composed tag.
type TagAnalysis struct {
	Text   string          `json:"text"`
	Length int             `json:"length"`
	Limit  int             `json:"limit"`
	Status metatags.Status `json:"status"`
}

// MetaReport is a composed title and description with their grades.
type MetaReport struct {
	Title           TagAnalysis `json:"title"`
	Description     TagAnalysis `json:"description"`
	Recommendations []string    `json:"recommendations"`
}

// SchemaReport is a built JSON-LD object with its display forms.
type SchemaReport struct {
	Kind           schema.Kind     `json:"type"`
	Object         json.RawMessage `json:"schema"`
	JSON           string          `json:"json"` // two-space indented
	RichResultsURL string          `json:"richResultsUrl"`
	ManualEdit     bool            `json:"manualEdit"`
}
