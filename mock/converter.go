package mock

import "github.com/fwojciec/storeprofile"

var _ storeprofile.Converter = (*Converter)(nil)

// Converter is a mock implementation of storeprofile.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
