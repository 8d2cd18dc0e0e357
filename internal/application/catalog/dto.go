package catalog

import (
	"io"
	"strings"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductQuery filters the home page listing
type ProductQuery struct {
	Q          string
	CategoryID *uuid.UUID
}

// ParseProductQuery builds a query from raw request values.
// A category that is not a valid id is ignored, so the listing falls back to every category.
func ParseProductQuery(q, category string) ProductQuery {
	query := ProductQuery{Q: strings.TrimSpace(q)}
	if id, err := uuid.Parse(strings.TrimSpace(category)); err == nil && id != uuid.Nil {
		query.CategoryID = &id
	}
	return query
}

// ProductView is a product as seen by one viewer
type ProductView struct {
	catalog.Product
	LikesCount int64
	Liked      bool
}

// CategoryOption is a category in the filter list
type CategoryOption struct {
	ID       uuid.UUID
	Name     string
	Selected bool
}

// CatalogPage is the data behind the home page
type CatalogPage struct {
	Query      ProductQuery
	Products   []ProductView
	Categories []CategoryOption
}

// CreateProductInput carries a staff product submission
type CreateProductInput struct {
	Name        string
	Description string
	BrandID     uuid.UUID
	CategoryID  uuid.UUID
	RAM         string
	Storage     string
	Battery     string
	Price       decimal.Decimal
	// Image is optional; nil means the product has no picture
	Image io.Reader
}

// ExportColumns are the header cells of the product export
var ExportColumns = []string{"Name", "Brand", "Category", "Price"}
