package storeprofile

import (
	"context"
	"net/url"
	"time"
)

// Keys of BrandProfile.ImportantLinks.
const (
	LinkContact            = "contact"
	LinkPrivacyPolicy      = "privacy_policy"
	LinkReturnRefundPolicy = "return_refund_policy"
	LinkOrderTracking      = "order_tracking"
	LinkBlogs              = "blogs"
)

// PageAbout is the BrandProfile.RawPages key of the about page. The other
// raw page keys reuse the link keys of their role.
const PageAbout = "about"

// MaxRawPageChars caps every entry of BrandProfile.RawPages.
const MaxRawPageChars = 5000

// FAQ is a question and answer pair.
type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// BrandProfile is the normalized public business profile of a storefront.
type BrandProfile struct {
	Website     string  `json:"website"`
	Title       *string `json:"title"`
	Description *string `json:"description"`

	Products     []*Product `json:"products"`
	HeroProducts []*Product `json:"hero_products"`

	PrivacyPolicy      *string `json:"privacy_policy"`
	ReturnRefundPolicy *string `json:"return_refund_policy"`

	FAQs           []FAQ             `json:"faqs"`
	Socials        map[string]string `json:"socials"`
	Contacts       Contacts          `json:"contacts"`
	ImportantLinks map[string]string `json:"important_links"`

	// RawPages keeps truncated page text of secondary pages for debugging.
	RawPages map[string]string `json:"raw_pages"`
}

// Validate returns an error if the profile contains invalid fields.
func (p *BrandProfile) Validate() error {
	if p.Website == "" {
		return Errorf(EINVALID, "profile website required")
	}
	if _, err := ParseWebsite(p.Website); err != nil {
		return err
	}
	return nil
}

// ParseWebsite parses an absolute http(s) website URL.
// Returns EINVALID for anything else.
func ParseWebsite(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid website URL %q: %v", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, Errorf(EINVALID, "website URL %q must be an absolute http(s) URL", rawURL)
	}
	return u, nil
}

// Origin returns the scheme and host of u.
func Origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// ProfileExtractor builds brand profiles.
type ProfileExtractor interface {
	// Extract builds the profile of the storefront at websiteURL.
	// Returns EINVALID for a malformed URL, EUNREACHABLE when the homepage
	// cannot be fetched and EINTERNAL for anything unexpected.
	Extract(ctx context.Context, websiteURL string) (*BrandProfile, error)
}

// StoredProfile is a brand profile persisted after extraction.
type StoredProfile struct {
	ID          string        `json:"id"`
	Website     string        `json:"website"`
	ContentHash string        `json:"contentHash"`
	ExtractedAt time.Time     `json:"extractedAt"`
	Profile     *BrandProfile `json:"profile"`
}

// Validate returns an error if the stored profile contains invalid fields.
func (s *StoredProfile) Validate() error {
	if s.Profile == nil {
		return Errorf(EINVALID, "stored profile requires a profile")
	}
	return s.Profile.Validate()
}

// ProfileService represents a service for managing stored profiles.
type ProfileService interface {
	// CreateProfile stores a new profile.
	CreateProfile(ctx context.Context, profile *StoredProfile) error

	// FindProfileByID retrieves a profile by ID.
	// Returns ENOTFOUND if the profile does not exist.
	FindProfileByID(ctx context.Context, id string) (*StoredProfile, error)

	// FindProfiles retrieves profiles matching the filter, newest first.
	FindProfiles(ctx context.Context, filter ProfileFilter) ([]*StoredProfile, error)

	// DeleteProfile permanently removes a profile.
	// Returns ENOTFOUND if the profile does not exist.
	DeleteProfile(ctx context.Context, id string) error
}

// ProfileFilter represents a filter for FindProfiles.
type ProfileFilter struct {
	ID      *string `json:"id"`
	Website *string `json:"website"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ProfileExporter writes profiles to an output location. Exported profiles
// become visible together on Commit; Abort discards them.
type ProfileExporter interface {
	Export(ctx context.Context, profile *BrandProfile) error
	Commit() error
	Abort() error
}
