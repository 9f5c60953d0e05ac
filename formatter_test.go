package storeprofile_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/storeprofile"
	"github.com/fwojciec/storeprofile/mock"
	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestFormatProfile(t *testing.T) {
	t.Parallel()

	t.Run("uses website as heading when title is missing", func(t *testing.T) {
		t.Parallel()

		result := storeprofile.FormatProfile(&storeprofile.BrandProfile{Website: "https://shop.example"}, nil)

		assert.Equal(t, "# https://shop.example\n\nhttps://shop.example\n", result)
	})

	t.Run("renders products, contacts, links and faqs", func(t *testing.T) {
		t.Parallel()

		p := &storeprofile.BrandProfile{
			Website: "https://shop.example",
			Title:   strPtr("Example Shop"),
			Products: []*storeprofile.Product{{
				Title:    strPtr("Mug"),
				Handle:   strPtr("mug"),
				URL:      strPtr("https://shop.example/products/mug"),
				PriceMin: floatPtr(9.99),
				PriceMax: floatPtr(12.5),
			}},
			Contacts: storeprofile.Contacts{Emails: []string{"contact@shop.com"}, Phones: []string{"5551234567"}},
			Socials:  map[string]string{"instagram": "https://instagram.com/shop", "facebook": "https://facebook.com/shop"},
			FAQs:     []storeprofile.FAQ{{Question: "Do you ship?", Answer: "Worldwide."}},
		}

		result := storeprofile.FormatProfile(p, nil)

		assert.Contains(t, result, "# Example Shop\n")
		assert.Contains(t, result, "- Mug (9.99 - 12.50) <https://shop.example/products/mug>\n")
		assert.Contains(t, result, "- Email: contact@shop.com\n")
		assert.Contains(t, result, "- Phone: 5551234567\n")
		assert.Contains(t, result, "**Do you ship?**\n\nWorldwide.\n")
		assert.Less(t, strings.Index(result, "- facebook:"), strings.Index(result, "- instagram:"))
	})

	t.Run("converts product descriptions", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Equal(t, "<p>Stoneware</p>", html)
				return "Stoneware", nil
			},
		}
		p := &storeprofile.BrandProfile{
			Website:  "https://shop.example",
			Products: []*storeprofile.Product{{Title: strPtr("Mug"), BodyHTML: strPtr("<p>Stoneware</p>")}},
		}

		result := storeprofile.FormatProfile(p, conv)

		assert.Contains(t, result, "- Mug\n  Stoneware\n")
	})

	t.Run("omits description when conversion fails", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(string) (string, error) { return "", errors.New("bad html") },
		}
		p := &storeprofile.BrandProfile{
			Website:  "https://shop.example",
			Products: []*storeprofile.Product{{Title: strPtr("Mug"), BodyHTML: strPtr("<p>")}},
		}

		result := storeprofile.FormatProfile(p, conv)

		assert.Contains(t, result, "- Mug\n")
		assert.NotContains(t, result, "bad html")
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", storeprofile.Truncate("héllo", 4))
	assert.Equal(t, "hi", storeprofile.Truncate("hi", 10))
	assert.Empty(t, storeprofile.Truncate("hi", 0))
}
