package schema

const contextURL = "https://schema.org"

// Fields is the flat form record shared by every kind. Each kind reads only
// the fields it needs; blank fields are replaced by placeholders.
type Fields struct {
	ArticleTitle       string `json:"articleTitle"`
	ArticleDescription string `json:"articleDescription"`
	ArticleAuthor      string `json:"articleAuthor"`
	ArticleDate        string `json:"articleDate"`
	ArticleImage       string `json:"articleImage"`

	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	ProductPrice       string `json:"productPrice"`
	ProductCurrency    string `json:"productCurrency"`
	ProductImage       string `json:"productImage"`

	// Organization and LocalBusiness
	OrgName string `json:"orgName"`
	OrgURL  string `json:"orgUrl"`
	OrgLogo string `json:"orgLogo"`
}

// Object is a JSON-LD document ready to be marshaled.
type Object interface {
	SchemaType() string
}

// Header carries the keys every JSON-LD object starts with.
type Header struct {
	Context string `json:"@context"`
	Type    string `json:"@type"`
}

// SchemaType returns the @type value.
func (h Header) SchemaType() string { return h.Type }

func header(t string) Header { return Header{Context: contextURL, Type: t} }

// Person is an article author.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Offer is the price of a product.
type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
}

// PostalAddress is a local business address.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry"`
}

// Answer is the accepted answer to a Question.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// Question is one FAQ entry.
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// Article is the JSON-LD for KindArticle.
type Article struct {
	Header
	Headline      string `json:"headline"`
	Description   string `json:"description"`
	Author        Person `json:"author"`
	DatePublished string `json:"datePublished"`
	Image         string `json:"image"`
}

// Product is the JSON-LD for KindProduct.
type Product struct {
	Header
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Offers      Offer  `json:"offers"`
}

// Organization is the JSON-LD for KindOrganization.
type Organization struct {
	Header
	Name string `json:"name"`
	URL  string `json:"url"`
	Logo string `json:"logo"`
}

// LocalBusiness is the JSON-LD for KindLocalBusiness.
type LocalBusiness struct {
	Header
	Name      string        `json:"name"`
	URL       string        `json:"url"`
	Telephone string        `json:"telephone"`
	Address   PostalAddress `json:"address"`
}

// FAQPage is the JSON-LD for KindFAQ.
type FAQPage struct {
	Header
	MainEntity []Question `json:"mainEntity"`
}
