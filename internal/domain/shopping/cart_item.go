package shopping

import (
	"fmt"
	"time"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a per-user, per-product quantity. A user holds at most one
// item per product; adding the same product again raises the quantity.
type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	AddedAt   time.Time

	// Product is populated by read queries only
	Product *catalog.Product
}

// String describes the line for logs
func (c *CartItem) String() string {
	return fmt.Sprintf("%d x product %s", c.Quantity, c.ProductID)
}

// Subtotal is unit price times quantity. It is zero when the product is not loaded.
func (c *CartItem) Subtotal() decimal.Decimal {
	if c.Product == nil {
		return decimal.Zero
	}
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Cart is the read model of a user's cart
type Cart struct {
	UserID uuid.UUID
	Items  []CartItem
}

// Total sums the line subtotals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// ItemCount sums the quantities
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Products projects the cart to its products, in cart order
func (c *Cart) Products() []catalog.Product {
	products := make([]catalog.Product, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Product != nil {
			products = append(products, *item.Product)
		}
	}
	return products
}
