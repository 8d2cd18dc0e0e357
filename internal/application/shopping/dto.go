package shopping

import (
	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one row of the cart page
type CartLine struct {
	ProductID uuid.UUID
	Product   catalog.Product
	Quantity  int
	Subtotal  decimal.Decimal
}

// CartView is a user's cart with totals
type CartView struct {
	Lines     []CartLine
	ItemCount int
	Total     decimal.Decimal
}

// IsEmpty reports whether the cart has no lines
func (v *CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}

// Favorites groups what a user liked and what sits in their cart
type Favorites struct {
	Liked  []catalog.Product
	InCart []catalog.Product
}
