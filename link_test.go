package storeprofile_test

import (
	"testing"

	"github.com/fwojciec/storeprofile"
	"github.com/stretchr/testify/assert"
)

func TestLinkIndex(t *testing.T) {
	t.Parallel()

	t.Run("later duplicate labels overwrite earlier ones", func(t *testing.T) {
		t.Parallel()

		idx := storeprofile.NewLinkIndex()
		idx.Set("Contact", "https://shop.example/pages/contact-old")
		idx.Set("Shop", "https://shop.example/collections/all")
		idx.Set("Contact", "https://shop.example/pages/contact")

		url, ok := idx.Get("Contact")
		assert.True(t, ok)
		assert.Equal(t, "https://shop.example/pages/contact", url)
		assert.Equal(t, 2, idx.Len())
	})

	t.Run("iterates labels in first-seen order", func(t *testing.T) {
		t.Parallel()

		idx := storeprofile.NewLinkIndex()
		idx.Set("b", "https://shop.example/b")
		idx.Set("a", "https://shop.example/a")
		idx.Set("b", "https://shop.example/b2")

		assert.Equal(t, []storeprofile.Link{
			{Label: "b", URL: "https://shop.example/b2"},
			{Label: "a", URL: "https://shop.example/a"},
		}, idx.Links())
	})

	t.Run("nil index is empty", func(t *testing.T) {
		t.Parallel()

		var idx *storeprofile.LinkIndex

		_, ok := idx.Get("x")
		assert.False(t, ok)
		assert.Zero(t, idx.Len())
		assert.Empty(t, idx.Links())
	})
}

func TestResolveRoles(t *testing.T) {
	t.Parallel()

	t.Run("classifies links by label and URL", func(t *testing.T) {
		t.Parallel()

		idx := storeprofile.NewLinkIndex()
		idx.Set("Privacy Policy", "https://shop.example/pages/privacy")
		idx.Set("Shipping & Returns", "https://shop.example/pages/shipping")
		idx.Set("Get in touch", "https://shop.example/pages/contact-us")
		idx.Set("Our Story", "https://shop.example/pages/about")
		idx.Set("Track your order", "https://shop.example/apps/track")
		idx.Set("Journal", "https://shop.example/blogs/news")
		idx.Set("Help", "https://shop.example/pages/faq")

		r := storeprofile.ResolveRoles(idx)

		assert.Equal(t, "https://shop.example/pages/privacy", r.Privacy)
		assert.Equal(t, "https://shop.example/pages/shipping", r.Returns)
		assert.Equal(t, "https://shop.example/pages/contact-us", r.Contact)
		assert.Equal(t, "https://shop.example/pages/about", r.About)
		assert.Equal(t, "https://shop.example/apps/track", r.Tracking)
		assert.Equal(t, "https://shop.example/blogs/news", r.Blog)
		assert.Equal(t, "https://shop.example/pages/faq", r.FAQ)
	})

	t.Run("keeps the last match for contact and the first for faq", func(t *testing.T) {
		t.Parallel()

		idx := storeprofile.NewLinkIndex()
		idx.Set("Contact", "https://shop.example/pages/contact")
		idx.Set("FAQ", "https://shop.example/pages/faq")
		idx.Set("Contact sales", "https://shop.example/pages/sales")
		idx.Set("Shipping FAQ", "https://shop.example/pages/shipping-faq")

		r := storeprofile.ResolveRoles(idx)

		assert.Equal(t, "https://shop.example/pages/sales", r.Contact)
		assert.Equal(t, "https://shop.example/pages/faq", r.FAQ)
	})

	t.Run("matches refund in URL for returns", func(t *testing.T) {
		t.Parallel()

		idx := storeprofile.NewLinkIndex()
		idx.Set("Policies", "https://shop.example/policies/refund-policy")

		r := storeprofile.ResolveRoles(idx)

		assert.Equal(t, "https://shop.example/policies/refund-policy", r.Returns)
	})

	t.Run("does not classify tracking by URL alone", func(t *testing.T) {
		t.Parallel()

		idx := storeprofile.NewLinkIndex()
		idx.Set("Help", "https://shop.example/pages/order-tracking")

		r := storeprofile.ResolveRoles(idx)

		assert.Empty(t, r.Tracking)
	})

	t.Run("returns empty roles for empty index", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, storeprofile.Roles{}, storeprofile.ResolveRoles(storeprofile.NewLinkIndex()))
		assert.Equal(t, storeprofile.Roles{}, storeprofile.ResolveRoles(nil))
	})
}
