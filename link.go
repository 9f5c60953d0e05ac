package storeprofile

import "strings"

// Link is a labeled absolute URL found on a page.
type Link struct {
	Label string
	URL   string
}

// LinkIndex maps link labels to absolute URLs for a single page.
//
// Setting an existing label replaces its URL but keeps the label at the
// position where it was first seen, so Links iterates labels in first-seen
// order with last-anchor-wins values.
type LinkIndex struct {
	labels []string
	urls   map[string]string
}

// NewLinkIndex returns an empty LinkIndex.
func NewLinkIndex() *LinkIndex {
	return &LinkIndex{urls: make(map[string]string)}
}

// Set records url under label.
func (idx *LinkIndex) Set(label, url string) {
	if _, ok := idx.urls[label]; !ok {
		idx.labels = append(idx.labels, label)
	}
	idx.urls[label] = url
}

// Get returns the URL recorded under label.
func (idx *LinkIndex) Get(label string) (string, bool) {
	if idx == nil {
		return "", false
	}
	url, ok := idx.urls[label]
	return url, ok
}

// Len returns the number of distinct labels.
func (idx *LinkIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.labels)
}

// Links returns the indexed links in label first-seen order.
func (idx *LinkIndex) Links() []Link {
	if idx == nil {
		return nil
	}
	links := make([]Link, 0, len(idx.labels))
	for _, label := range idx.labels {
		links = append(links, Link{Label: label, URL: idx.urls[label]})
	}
	return links
}

// Roles holds the URLs of pages classified by their semantic role.
// Empty fields are unresolved.
type Roles struct {
	Contact  string
	About    string
	Tracking string
	Blog     string
	Privacy  string
	Returns  string
	FAQ      string
}

// Policy fallback paths probed when no navigation link was classified as
// the privacy or returns page.
const (
	PrivacyPolicyPath = "/policies/privacy-policy"
	RefundPolicyPath  = "/policies/refund-policy"
)

// ResolveRoles classifies the links of idx by keyword matching over the
// lower-cased label and URL.
//
// Tie-breaks differ per role: the FAQ role keeps the first matching link
// while every other role keeps the last one.
func ResolveRoles(idx *LinkIndex) Roles {
	var r Roles
	for _, link := range idx.Links() {
		label := strings.ToLower(link.Label)
		url := strings.ToLower(link.URL)

		if strings.Contains(label, "privacy") || strings.Contains(url, "privacy") {
			r.Privacy = link.URL
		}
		if strings.Contains(label, "return") || strings.Contains(label, "refund") ||
			strings.Contains(url, "refund") || strings.Contains(url, "returns") {
			r.Returns = link.URL
		}
		if strings.Contains(label, "contact") || strings.Contains(url, "contact") {
			r.Contact = link.URL
		}
		if strings.Contains(label, "about") || strings.Contains(url, "about") {
			r.About = link.URL
		}
		if strings.Contains(label, "track") || strings.Contains(label, "order") {
			r.Tracking = link.URL
		}
		if strings.Contains(label, "blog") || strings.Contains(link.URL, "/blogs") {
			r.Blog = link.URL
		}
		if r.FAQ == "" && (strings.Contains(label, "faq") || strings.Contains(url, "/faq")) {
			r.FAQ = link.URL
		}
	}
	return r
}
