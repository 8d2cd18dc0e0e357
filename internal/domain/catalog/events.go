package catalog

import (
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
)

// ProductCreatedEvent is published when staff add a product
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	BrandID    uuid.UUID       `json:"brand_id"`
	CategoryID uuid.UUID       `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		BrandID:         product.BrandID,
		CategoryID:      product.CategoryID,
		Price:           product.Price,
	}
}
