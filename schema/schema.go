// Package schema builds schema.org JSON-LD objects from form input.
package schema

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/seo-optimizer/toolkit/validation"
)

// Kind selects the JSON-LD template.
type Kind string

const (
	KindArticle       Kind = "Article"
	KindProduct       Kind = "Product"
	KindOrganization  Kind = "Organization"
	KindLocalBusiness Kind = "LocalBusiness"
	KindFAQ           Kind = "FAQ"
)

// Kinds lists the supported kinds in display order.
var Kinds = []Kind{KindArticle, KindProduct, KindFAQ, KindLocalBusiness, KindOrganization}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	if strings.EqualFold(s, "FAQPage") {
		return KindFAQ, nil
	}
	return "", validation.New("type", "unsupported schema type "+strconv.Quote(s))
}

// NeedsManualEdit reports kinds whose output is a fixed sample the user is
// expected to edit by hand.
func NeedsManualEdit(k Kind) bool {
	return k == KindFAQ
}

// Builder maps form fields to JSON-LD objects. Its clock supplies the
// placeholder publication date for articles.
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder using now for date placeholders. A nil now
// uses time.Now.
func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now}
}

// Build returns the JSON-LD object for kind. Missing optional fields never
// fail the build; only an unknown kind does.
func (b *Builder) Build(kind Kind, f Fields) (Object, error) {
	switch kind {
	case KindArticle:
		return Article{
			Header:        header("Article"),
			Headline:      or(f.ArticleTitle, "Article Title"),
			Description:   or(f.ArticleDescription, "Article description"),
			Author:        Person{Type: "Person", Name: or(f.ArticleAuthor, "Author Name")},
			DatePublished: or(f.ArticleDate, b.now().UTC().Format(time.DateOnly)),
			Image:         or(f.ArticleImage, "https://example.com/image.jpg"),
		}, nil
	case KindProduct:
		return Product{
			Header:      header("Product"),
			Name:        or(f.ProductName, "Product Name"),
			Description: or(f.ProductDescription, "Product description"),
			Image:       or(f.ProductImage, "https://example.com/product.jpg"),
			Offers: Offer{
				Type:          "Offer",
				Price:         or(f.ProductPrice, "0.00"),
				PriceCurrency: or(f.ProductCurrency, "USD"),
			},
		}, nil
	case KindOrganization:
		return Organization{
			Header: header("Organization"),
			Name:   or(f.OrgName, "Organization Name"),
			URL:    or(f.OrgURL, "https://example.com"),
			Logo:   or(f.OrgLogo, "https://example.com/logo.png"),
		}, nil
	case KindLocalBusiness:
		return LocalBusiness{
			Header:    header("LocalBusiness"),
			Name:      or(f.OrgName, "Business Name"),
			URL:       or(f.OrgURL, "https://example.com"),
			Telephone: "+1-555-555-5555",
			Address: PostalAddress{
				Type:            "PostalAddress",
				StreetAddress:   "123 Main St",
				AddressLocality: "City",
				AddressRegion:   "State",
				PostalCode:      "12345",
				AddressCountry:  "US",
			},
		}, nil
	case KindFAQ:
		// Free-form input is ignored; callers present this as a template.
		return FAQPage{
			Header: header("FAQPage"),
			MainEntity: []Question{{
				Type:           "Question",
				Name:           "Sample question?",
				AcceptedAnswer: Answer{Type: "Answer", Text: "Sample answer to the question."},
			}},
		}, nil
	}
	return nil, validation.New("type", "unsupported schema type "+strconv.Quote(string(kind)))
}

func or(v, placeholder string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return placeholder
}

// Marshal encodes obj as compact JSON.
func Marshal(obj Object) ([]byte, error) {
	return encode(obj, "")
}

// MarshalIndent encodes obj with two-space indentation.
func MarshalIndent(obj Object) ([]byte, error) {
	return encode(obj, "  ")
}

func encode(obj Object, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

const richResultsEndpoint = "https://search.google.com/test/rich-results"

// componentUnescaper undoes the escapes url.QueryEscape applies beyond those
// of encodeURIComponent.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// RichResultsURL returns the rich results test URL for a JSON-LD document,
// encoded the way a browser's encodeURIComponent would.
func RichResultsURL(jsonLD string) string {
	return richResultsEndpoint + "?code=" + componentUnescaper.Replace(url.QueryEscape(jsonLD))
}
