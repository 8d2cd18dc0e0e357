package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/fliamecomm/storefront/internal/domain/shared"
)

// MaxNameLength bounds category, brand and product names
const MaxNameLength = 100

// Category groups products for browsing and filtering on the home page
type Category struct {
	shared.BaseAggregateRoot
	Name string
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateName("category", name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}
	return category, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName("category", name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

func validateName(kind, name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", kind+" name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return shared.NewDomainError("INVALID_NAME", kind+" name cannot exceed 100 characters")
	}
	return nil
}
