package mock

import "github.com/asafar/dockb"

var _ dockb.Converter = (*Converter)(nil)

// Converter is a mock implementation of dockb.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
