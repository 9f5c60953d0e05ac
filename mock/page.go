package mock

import "github.com/fwojciec/storeprofile"

var _ storeprofile.PageAnalyzer = (*PageAnalyzer)(nil)

// PageAnalyzer is a mock implementation of storeprofile.PageAnalyzer.
type PageAnalyzer struct {
	AnalyzeFn func(html string, baseURL string) (*storeprofile.Page, error)
}

func (a *PageAnalyzer) Analyze(html string, baseURL string) (*storeprofile.Page, error) {
	return a.AnalyzeFn(html, baseURL)
}
