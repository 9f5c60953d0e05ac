// Package extract assembles brand profiles from a storefront's homepage,
// catalog endpoints and the handful of secondary pages its navigation
// links to.
package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/storeprofile"
)

// Ensure Extractor implements storeprofile.ProfileExtractor at compile time.
var _ storeprofile.ProfileExtractor = (*Extractor)(nil)

// Extractor builds brand profiles. It holds no per-request state and is
// safe for concurrent use.
type Extractor struct {
	Fetcher  storeprofile.Fetcher
	Catalog  storeprofile.CatalogService
	Analyzer storeprofile.PageAnalyzer

	// Logger receives step-level debug messages. Defaults to discarding.
	Logger *slog.Logger
}

// Extract builds the profile of the storefront at websiteURL.
//
// Only a homepage failure is fatal and reported as EUNREACHABLE. Every other
// step degrades to an absent field when it fails.
func (e *Extractor) Extract(ctx context.Context, websiteURL string) (profile *storeprofile.BrandProfile, err error) {
	defer func() {
		if r := recover(); r != nil {
			profile = nil
			err = storeprofile.Errorf(storeprofile.EINTERNAL, "extract %s: %v", websiteURL, r)
		}
	}()

	u, err := storeprofile.ParseWebsite(websiteURL)
	if err != nil {
		return nil, err
	}
	origin := storeprofile.Origin(u)

	homeResp, err := e.Fetcher.Fetch(ctx, websiteURL)
	if err != nil {
		return nil, storeprofile.Errorf(storeprofile.EUNREACHABLE, "%s", reason(err))
	}

	home := &storeprofile.Page{}
	e.step("analyze homepage", func() error {
		page, err := e.Analyzer.Analyze(homeResp.Body, origin)
		if err != nil {
			return err
		}
		home = page
		return nil
	})

	products := []*storeprofile.Product{}
	e.step("resolve catalog", func() error {
		found, err := e.Catalog.Products(ctx, origin)
		if err != nil {
			return err
		}
		if found != nil {
			products = found
		}
		return nil
	})

	heroes := []*storeprofile.Product{}
	e.step("match hero products", func() error {
		if matched := storeprofile.MatchHeroes(home.ProductLinks, products); matched != nil {
			heroes = matched
		}
		return nil
	})

	var roles storeprofile.Roles
	e.step("resolve roles", func() error {
		roles = storeprofile.ResolveRoles(home.Links)
		return nil
	})
	if roles.Privacy == "" {
		roles.Privacy = e.probe(ctx, origin+storeprofile.PrivacyPolicyPath)
	}
	if roles.Returns == "" {
		roles.Returns = e.probe(ctx, origin+storeprofile.RefundPolicyPath)
	}

	privacy := e.fetchPage(ctx, "privacy page", roles.Privacy, origin)
	returns := e.fetchPage(ctx, "returns page", roles.Returns, origin)

	contacts := storeprofile.Contacts{Emails: []string{}, Phones: []string{}}
	e.step("find homepage contacts", func() error {
		contacts = storeprofile.FindContacts(homeResp.Body)
		return nil
	})

	about := e.fetchPage(ctx, "about page", roles.About, origin)
	contact := e.fetchPage(ctx, "contact page", roles.Contact, origin)
	for _, page := range []*storeprofile.Page{about, contact} {
		if page == nil || page.Text == "" {
			continue
		}
		e.step("merge page contacts", func() error {
			contacts = contacts.Merge(storeprofile.FindContacts(page.Text))
			return nil
		})
	}

	faqs := []storeprofile.FAQ{}
	if faqPage := e.fetchPage(ctx, "faq page", roles.FAQ, origin); faqPage != nil && len(faqPage.FAQs) > 0 {
		faqs = faqPage.FAQs
	} else if len(home.FAQs) > 0 {
		faqs = home.FAQs
	}

	links := importantLinks(roles)
	raw := rawPages(map[string]*storeprofile.Page{
		storeprofile.PageAbout:              about,
		storeprofile.LinkContact:            contact,
		storeprofile.LinkPrivacyPolicy:      privacy,
		storeprofile.LinkReturnRefundPolicy: returns,
	})

	socials := home.Socials
	if socials == nil {
		socials = map[string]string{}
	}

	return &storeprofile.BrandProfile{
		Website:            websiteURL,
		Title:              optional(home.Title),
		Description:        optional(home.Description),
		Products:           products,
		HeroProducts:       heroes,
		PrivacyPolicy:      pageText(privacy),
		ReturnRefundPolicy: pageText(returns),
		FAQs:               faqs,
		Socials:            socials,
		Contacts:           contacts,
		ImportantLinks:     links,
		RawPages:           raw,
	}, nil
}

// step runs a non-fatal extraction step. Errors and panics are logged and
// leave whatever the step would have produced at its zero value.
func (e *Extractor) step(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger().Warn("extraction step panicked", "step", name, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		e.logger().Debug("extraction step failed", "step", name, "err", err)
	}
}

// probe returns url when it answers 200 and an empty string otherwise.
func (e *Extractor) probe(ctx context.Context, url string) string {
	var found string
	e.step("probe "+url, func() error {
		resp, err := e.Fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusOK {
			found = url
		}
		return nil
	})
	return found
}

// fetchPage fetches and analyzes a secondary page. Returns nil when url is
// empty or the page could not be fetched or parsed.
func (e *Extractor) fetchPage(ctx context.Context, name, url, origin string) *storeprofile.Page {
	if url == "" {
		return nil
	}
	var page *storeprofile.Page
	e.step(name, func() error {
		resp, err := e.Fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		analyzed, err := e.Analyzer.Analyze(resp.Body, origin)
		if err != nil {
			return err
		}
		page = analyzed
		return nil
	})
	return page
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func importantLinks(r storeprofile.Roles) map[string]string {
	links := make(map[string]string)
	for key, url := range map[string]string{
		storeprofile.LinkContact:            r.Contact,
		storeprofile.LinkPrivacyPolicy:      r.Privacy,
		storeprofile.LinkReturnRefundPolicy: r.Returns,
		storeprofile.LinkOrderTracking:      r.Tracking,
		storeprofile.LinkBlogs:              r.Blog,
	} {
		if url != "" {
			links[key] = url
		}
	}
	return links
}

// rawPages keeps the truncated text of every secondary page that was
// fetched.
func rawPages(pages map[string]*storeprofile.Page) map[string]string {
	raw := make(map[string]string)
	for key, page := range pages {
		if page != nil {
			raw[key] = storeprofile.Truncate(page.Text, storeprofile.MaxRawPageChars)
		}
	}
	return raw
}

func pageText(page *storeprofile.Page) *string {
	if page == nil {
		return nil
	}
	text := page.Text
	return &text
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// reason returns the message of an application error or the error text.
func reason(err error) string {
	var e *storeprofile.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
