package storeprofile

// MaxTextTokens caps the number of visible text fragments kept for a page.
const MaxTextTokens = 5000

// Page holds the signals extracted from a single HTML document.
type Page struct {
	Title       string
	Description string

	// Links maps anchor labels to absolute URLs.
	Links *LinkIndex

	// ProductLinks lists distinct absolute anchor targets containing
	// "/products/", in document order.
	ProductLinks []string

	// Socials maps a platform key (e.g. "instagram") to the first profile
	// link found for it.
	Socials map[string]string

	// FAQs holds question/answer pairs found on the page.
	FAQs []FAQ

	// Text is the visible text, the first MaxTextTokens stripped strings
	// joined by single spaces.
	Text string
}

// PageAnalyzer extracts structured signals from HTML.
type PageAnalyzer interface {
	// Analyze parses html and extracts its signals. Relative URLs are
	// resolved against baseURL.
	Analyze(html string, baseURL string) (*Page, error)
}
