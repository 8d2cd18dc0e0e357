package catalog

import (
	"strings"

	"github.com/fliamecomm/storefront/internal/domain/shared"
)

// Brand is the manufacturer a product belongs to
type Brand struct {
	shared.BaseAggregateRoot
	Name string
}

// NewBrand creates a new brand
func NewBrand(name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if err := validateName("brand", name); err != nil {
		return nil, err
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename changes the brand name
func (b *Brand) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName("brand", name); err != nil {
		return err
	}
	b.Name = name
	b.Touch()
	return nil
}
