package models

import (
	"time"

	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/google/uuid"
)

// CartItemModel is one cart line; (user_id, product_id) is unique.
type CartItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cart_items_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_cart_items_user_product;index"`
	Quantity  int       `gorm:"not null;default:1"`
	AddedAt   time.Time `gorm:"not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem
func (m *CartItemModel) ToDomain() *shopping.CartItem {
	item := &shopping.CartItem{
		ID:        m.ID,
		UserID:    m.UserID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		AddedAt:   m.AddedAt,
	}
	if m.Product != nil {
		item.Product = m.Product.ToDomain()
	}
	return item
}

// ProductLikeModel is the user/product join row backing the liked-by set.
type ProductLikeModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductLikeModel) TableName() string {
	return "product_likes"
}

// ToDomain converts the persistence model to a domain ProductLike
func (m *ProductLikeModel) ToDomain() shopping.ProductLike {
	return shopping.ProductLike{
		UserID:    m.UserID,
		ProductID: m.ProductID,
		CreatedAt: m.CreatedAt,
	}
}

// ProductLikeModelFromDomain creates a new persistence model from a domain ProductLike
func ProductLikeModelFromDomain(l shopping.ProductLike) *ProductLikeModel {
	return &ProductLikeModel{
		UserID:    l.UserID,
		ProductID: l.ProductID,
		CreatedAt: l.CreatedAt,
	}
}
