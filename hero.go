package storeprofile

import "strings"

// productPathSegment marks a link as pointing at a product page.
const productPathSegment = "/products/"

// MatchHeroes correlates product links found on the homepage with the
// catalog.
//
// For each distinct link the first catalog product whose URL (ignoring a
// trailing slash) or handle is a substring of the link is used. Links
// without a match yield a placeholder product carrying only the handle
// parsed from the link and the link itself as URL.
//
// Links are visited in the order given, but matching is best-effort: when
// several catalog products match a link, which one wins depends on catalog
// order, and callers must not rely on a particular hero ordering.
func MatchHeroes(links []string, catalog []*Product) []*Product {
	var heroes []*Product
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		if seen[link] || !strings.Contains(link, productPathSegment) {
			continue
		}
		seen[link] = true

		if p := findProduct(link, catalog); p != nil {
			heroes = append(heroes, p)
			continue
		}
		heroes = append(heroes, &Product{
			Handle:   ptr(handleFromLink(link)),
			URL:      ptr(link),
			Variants: []map[string]any{},
			Tags:     []string{},
		})
	}
	return heroes
}

func findProduct(link string, catalog []*Product) *Product {
	trimmed := strings.TrimSuffix(link, "/")
	for _, p := range catalog {
		if p.URL != nil && *p.URL != "" && strings.Contains(trimmed, strings.TrimSuffix(*p.URL, "/")) {
			return p
		}
		if p.Handle != nil && *p.Handle != "" && strings.Contains(link, *p.Handle) {
			return p
		}
	}
	return nil
}

// handleFromLink returns the path segment after the last "/products/",
// without query string and surrounding slashes.
func handleFromLink(link string) string {
	handle := link[strings.LastIndex(link, productPathSegment)+len(productPathSegment):]
	if i := strings.Index(handle, "?"); i >= 0 {
		handle = handle[:i]
	}
	return strings.Trim(handle, "/")
}
