package storeprofile

import "regexp"

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?(?:\(?\d{2,4}\)?[-.\s]?)?\d{5,12}`)
)

// minPhoneDigits rejects short numeric noise such as years or counts.
const minPhoneDigits = 6

// Contacts holds deduplicated contact channels.
type Contacts struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// FindEmails returns the distinct email addresses in text, in order of
// first appearance.
func FindEmails(text string) []string {
	return distinct(emailRe.FindAllString(text, -1), nil)
}

// FindPhones returns the distinct phone number candidates in text carrying
// at least six digits, in order of first appearance.
func FindPhones(text string) []string {
	return distinct(phoneRe.FindAllString(text, -1), func(s string) bool {
		return countDigits(s) >= minPhoneDigits
	})
}

// FindContacts extracts emails and phones from text.
func FindContacts(text string) Contacts {
	return Contacts{
		Emails: FindEmails(text),
		Phones: FindPhones(text),
	}
}

// Merge returns the union of c and other. Entries of c keep their order and
// new entries of other are appended; duplicates are matched on exact string
// equality. Neither input is modified.
func (c Contacts) Merge(other Contacts) Contacts {
	return Contacts{
		Emails: distinct(append(append([]string{}, c.Emails...), other.Emails...), nil),
		Phones: distinct(append(append([]string{}, c.Phones...), other.Phones...), nil),
	}
}

// distinct returns the unique values accepted by keep, preserving order.
// The result is never nil.
func distinct(values []string, keep func(string) bool) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] || (keep != nil && !keep(v)) {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
