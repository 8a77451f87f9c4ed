package module

import (
	"cmp"
	"errors"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Descriptor is one manifest entry.
type Descriptor struct {
	ID     string `mapstructure:"id" yaml:"id"`
	Active bool   `mapstructure:"active" yaml:"active"`
	Order  int    `mapstructure:"order" yaml:"order"`
}

// LoadManifest reads
//
//	modules:
//	  - id: dashboard
//	    active: true
//	    order: 10
func LoadManifest(r io.Reader) ([]Descriptor, error) {
	var doc struct {
		Modules []Descriptor `yaml:"modules"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrManifest, err)
	}
	return doc.Modules, nil
}

// sortDescriptors orders by Order, then ID.
func sortDescriptors(ds []Descriptor) {
	slices.SortStableFunc(ds, func(a, b Descriptor) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
