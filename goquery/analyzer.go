// Package goquery implements storeprofile.PageAnalyzer on top of goquery.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storeprofile"
	"golang.org/x/net/html"
)

// Ensure Analyzer implements storeprofile.PageAnalyzer at compile time.
var _ storeprofile.PageAnalyzer = (*Analyzer)(nil)

// SocialHosts are the hostnames recognized as social platforms. The
// platform key is the first label of the hostname.
var SocialHosts = []string{
	"instagram.com",
	"facebook.com",
	"tiktok.com",
	"twitter.com",
	"youtube.com",
	"pinterest.com",
	"linkedin.com",
}

var faqRe = regexp.MustCompile(`(?i)faq`)

// Analyzer extracts links, social profiles, FAQs, metadata and visible text
// from storefront HTML.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze parses HTML and extracts its signals.
func (a *Analyzer) Analyze(rawHTML string, baseURL string) (*storeprofile.Page, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, storeprofile.Errorf(storeprofile.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, storeprofile.Errorf(storeprofile.EINVALID, "failed to parse HTML: %v", err)
	}

	return &storeprofile.Page{
		Title:        Title(doc),
		Description:  Description(doc),
		Links:        ClassifyLinks(doc, base),
		ProductLinks: ProductLinks(doc, base),
		Socials:      SocialLinks(doc, base),
		FAQs:         ExtractFAQs(doc),
		Text:         VisibleText(doc, storeprofile.MaxTextTokens),
	}, nil
}

// Title returns the trimmed document title.
func Title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Description returns the meta description, falling back to og:description.
func Description(doc *goquery.Document) string {
	desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if desc == "" {
		desc = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	return desc
}

// ClassifyLinks indexes every anchor by its trimmed visible text, or by its
// resolved URL when the text is empty. Empty and fragment-only hrefs are
// skipped. Later anchors with the same label overwrite earlier ones.
func ClassifyLinks(doc *goquery.Document, base *url.URL) *storeprofile.LinkIndex {
	idx := storeprofile.NewLinkIndex()
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		label := strings.TrimSpace(sel.Text())
		if label == "" {
			label = resolved
		}
		idx.Set(label, resolved)
	})
	return idx
}

// ProductLinks returns the distinct resolved anchor targets pointing at
// product pages, in document order.
func ProductLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if !strings.Contains(href, "/products/") {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links
}

// SocialLinks maps each known social platform to the first anchor linking
// to it in document order.
func SocialLinks(doc *goquery.Document, base *url.URL) map[string]string {
	found := make(map[string]string)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		for _, host := range SocialHosts {
			if !strings.Contains(href, host) {
				continue
			}
			key := strings.SplitN(host, ".", 2)[0]
			if _, ok := found[key]; ok {
				continue
			}
			if resolved := resolveURL(base, href); resolved != "" {
				found[key] = resolved
			}
		}
	})
	return found
}

// ExtractFAQs locates question and answer pairs.
//
// Elements whose class or id contains "faq" are searched for h2-h4, dt and
// summary elements first. Only when that yields nothing are all details
// elements used as question (summary) and answer pairs. Pairs with an empty
// question are dropped.
func ExtractFAQs(doc *goquery.Document) []storeprofile.FAQ {
	if faqs := faqsFromContainers(doc); len(faqs) > 0 {
		return faqs
	}
	return faqsFromDisclosures(doc)
}

func faqsFromContainers(doc *goquery.Document) []storeprofile.FAQ {
	var faqs []storeprofile.FAQ
	containers := doc.Find("[class], [id]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return faqRe.MatchString(sel.AttrOr("class", "")) || faqRe.MatchString(sel.AttrOr("id", ""))
	})
	containers.Each(func(_ int, container *goquery.Selection) {
		container.Find("h2, h3, h4, dt, summary").Each(func(_ int, q *goquery.Selection) {
			question := strippedText(q, "")
			if question == "" {
				return
			}
			var answer string
			if next := q.Next(); next.Length() > 0 {
				answer = strippedText(next, " ")
			} else if parent := q.Parent(); parent.Length() > 0 {
				answer = strings.TrimSpace(strings.ReplaceAll(strippedText(parent, " "), question, ""))
			}
			faqs = append(faqs, storeprofile.FAQ{Question: question, Answer: answer})
		})
	})
	return faqs
}

func faqsFromDisclosures(doc *goquery.Document) []storeprofile.FAQ {
	var faqs []storeprofile.FAQ
	doc.Find("details").Each(func(_ int, details *goquery.Selection) {
		question := strippedText(details.Find("summary").First(), "")
		if question == "" {
			return
		}
		answer := strings.TrimSpace(strings.ReplaceAll(strippedText(details, " "), question, ""))
		faqs = append(faqs, storeprofile.FAQ{Question: question, Answer: answer})
	})
	return faqs
}

// VisibleText joins the first limit stripped text fragments of the document
// with single spaces. Script, style, noscript and template content is not
// visible and is skipped.
func VisibleText(doc *goquery.Document, limit int) string {
	strs := strippedStrings(doc.Selection, limit)
	return strings.Join(strs, " ")
}

// strippedText joins the stripped text fragments of sel with sep.
func strippedText(sel *goquery.Selection, sep string) string {
	return strings.Join(strippedStrings(sel, 0), sep)
}

// strippedStrings collects the whitespace-trimmed, non-empty text nodes
// under sel in document order. A positive limit caps the result.
func strippedStrings(sel *goquery.Selection, limit int) []string {
	var out []string
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
				if limit > 0 && len(out) >= limit {
					return false
				}
			}
			return true
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return true
			}
		case html.CommentNode:
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	for _, n := range sel.Nodes {
		if !walk(n) {
			break
		}
	}
	return out
}

// resolveURL returns href unchanged when it is already an absolute http(s)
// URL and resolves it against base otherwise.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
