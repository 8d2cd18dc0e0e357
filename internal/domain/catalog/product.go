package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product constraints
const (
	MaxSpecLength = 50
	DefaultRating = 4.0
	MaxRating     = 5.0
)

// Product is a sellable phone listing
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	BrandID     uuid.UUID
	CategoryID  uuid.UUID
	RAM         string
	Storage     string
	Battery     string
	Price       decimal.Decimal
	// Image is the object storage key, empty when no image was uploaded
	Image  string
	Rating float64

	// Populated by read queries only
	BrandName    string
	CategoryName string
}

// ProductSpec carries the free-text hardware specs of a product
type ProductSpec struct {
	RAM     string
	Storage string
	Battery string
}

// NewProduct creates a new product with the default rating
func NewProduct(name, description string, brandID, categoryID uuid.UUID, spec ProductSpec, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateName("product", name); err != nil {
		return nil, err
	}
	if brandID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand is required")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       strings.TrimSpace(description),
		BrandID:           brandID,
		CategoryID:        categoryID,
		RAM:               strings.TrimSpace(spec.RAM),
		Storage:           strings.TrimSpace(spec.Storage),
		Battery:           strings.TrimSpace(spec.Battery),
		Price:             price.Round(2),
		Rating:            DefaultRating,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// SetImage records the storage key of the product image
func (p *Product) SetImage(key string) {
	p.Image = key
	p.Touch()
}

// SetRating updates the rating, clamped to [0, MaxRating]
func (p *Product) SetRating(rating float64) error {
	if rating < 0 || rating > MaxRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	p.Rating = rating
	p.Touch()
	return nil
}

// HasImage reports whether an image was uploaded
func (p *Product) HasImage() bool {
	return p.Image != ""
}

func validateSpec(spec ProductSpec) error {
	fields := map[string]string{"ram": spec.RAM, "storage": spec.Storage, "battery": spec.Battery}
	for field, value := range fields {
		if utf8.RuneCountInString(strings.TrimSpace(value)) > MaxSpecLength {
			return shared.NewDomainError("INVALID_SPEC", field+" cannot exceed 50 characters")
		}
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	// decimal(10,2) holds at most 8 integer digits
	if price.Abs().GreaterThanOrEqual(decimal.New(1, 8)) {
		return shared.NewDomainError("INVALID_PRICE", "Price is too large")
	}
	return nil
}
