package storeprofile

import (
	"fmt"
	"sort"
	"strings"
)

// policyPreviewChars limits policy text shown by FormatProfile.
const policyPreviewChars = 500

// FormatProfile renders a profile as a Markdown report for human review.
// Product descriptions are converted with conv; when conv is nil or fails,
// descriptions are omitted. Sections without content are skipped.
func FormatProfile(p *BrandProfile, conv Converter) string {
	var b strings.Builder

	title := p.Website
	if p.Title != nil && *p.Title != "" {
		title = *p.Title
	}
	fmt.Fprintf(&b, "# %s\n\n%s\n", title, p.Website)
	if p.Description != nil && *p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", *p.Description)
	}

	if len(p.HeroProducts) > 0 {
		fmt.Fprintf(&b, "\n## Hero products (%d)\n\n", len(p.HeroProducts))
		for _, prod := range p.HeroProducts {
			b.WriteString(formatProductLine(prod))
		}
	}

	if len(p.Products) > 0 {
		fmt.Fprintf(&b, "\n## Products (%d)\n\n", len(p.Products))
		for _, prod := range p.Products {
			b.WriteString(formatProductLine(prod))
			if desc := convertDescription(prod, conv); desc != "" {
				for _, line := range strings.Split(desc, "\n") {
					if line == "" {
						b.WriteString("\n")
						continue
					}
					b.WriteString("  " + line + "\n")
				}
			}
		}
	}

	if len(p.Contacts.Emails) > 0 || len(p.Contacts.Phones) > 0 {
		b.WriteString("\n## Contacts\n\n")
		for _, email := range p.Contacts.Emails {
			fmt.Fprintf(&b, "- Email: %s\n", email)
		}
		for _, phone := range p.Contacts.Phones {
			fmt.Fprintf(&b, "- Phone: %s\n", phone)
		}
	}

	writeLinkSection(&b, "Socials", p.Socials)
	writeLinkSection(&b, "Important links", p.ImportantLinks)

	if len(p.FAQs) > 0 {
		fmt.Fprintf(&b, "\n## FAQs (%d)\n", len(p.FAQs))
		for _, faq := range p.FAQs {
			fmt.Fprintf(&b, "\n**%s**\n\n%s\n", faq.Question, faq.Answer)
		}
	}

	writePolicySection(&b, "Privacy policy", p.PrivacyPolicy)
	writePolicySection(&b, "Return and refund policy", p.ReturnRefundPolicy)

	return b.String()
}

func formatProductLine(p *Product) string {
	name := "(untitled)"
	if p.Title != nil && *p.Title != "" {
		name = *p.Title
	} else if p.Handle != nil && *p.Handle != "" {
		name = *p.Handle
	}

	line := "- " + name
	switch {
	case p.PriceMin != nil && p.PriceMax != nil && *p.PriceMin != *p.PriceMax:
		line += fmt.Sprintf(" (%.2f - %.2f)", *p.PriceMin, *p.PriceMax)
	case p.PriceMin != nil:
		line += fmt.Sprintf(" (%.2f)", *p.PriceMin)
	}
	if p.URL != nil && *p.URL != "" {
		line += " <" + *p.URL + ">"
	}
	return line + "\n"
}

func convertDescription(p *Product, conv Converter) string {
	if conv == nil || p.BodyHTML == nil || strings.TrimSpace(*p.BodyHTML) == "" {
		return ""
	}
	md, err := conv.Convert(*p.BodyHTML)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(md)
}

func writeLinkSection(b *strings.Builder, heading string, links map[string]string) {
	if len(links) == 0 {
		return
	}
	keys := make([]string, 0, len(links))
	for k := range links {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %s\n", k, links[k])
	}
}

func writePolicySection(b *strings.Builder, heading string, text *string) {
	if text == nil || *text == "" {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n%s\n", heading, Truncate(*text, policyPreviewChars))
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
