package robots

import (
	"net/url"
	"strings"

	robotstxt "github.com/benjaminestes/robots/v2"

	"github.com/seo-optimizer/toolkit/validation"
)

// Test reports whether userAgent may crawl rawURL under the rules in text.
// An empty user agent is treated as "*".
func Test(text, userAgent, rawURL string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, validation.New("robotsTxt", "please enter your robots.txt content to test")
	}
	target, err := absoluteURL(rawURL)
	if err != nil {
		return false, err
	}

	agent := strings.TrimSpace(userAgent)
	if agent == "" {
		agent = "*"
	}

	// The document is supplied directly, so it is evaluated as a 200 response.
	rtxt, err := robotstxt.From(200, strings.NewReader(text))
	if err != nil {
		return false, validation.New("robotsTxt", "could not be parsed: "+err.Error())
	}
	return rtxt.Tester(agent)(target), nil
}

// Locate returns the robots.txt URL governing rawURL.
func Locate(rawURL string) (string, error) {
	target, err := absoluteURL(rawURL)
	if err != nil {
		return "", err
	}
	loc, err := robotstxt.Locate(target)
	if err != nil {
		return "", validation.New("url", "could not locate robots.txt: "+err.Error())
	}
	return loc, nil
}

func absoluteURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", validation.New("url", "is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", validation.New("url", "must be an absolute http(s) URL")
	}
	return u.String(), nil
}
