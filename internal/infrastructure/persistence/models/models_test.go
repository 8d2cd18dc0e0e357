package models

import (
	"testing"
	"time"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "categories", CategoryModel{}.TableName())
	assert.Equal(t, "brands", BrandModel{}.TableName())
	assert.Equal(t, "products", ProductModel{}.TableName())
	assert.Equal(t, "users", UserModel{}.TableName())
	assert.Equal(t, "cart_items", CartItemModel{}.TableName())
	assert.Equal(t, "product_likes", ProductLikeModel{}.TableName())
}

func TestProductModel_RoundTrip(t *testing.T) {
	brandID, categoryID := uuid.New(), uuid.New()
	product, err := catalog.NewProduct("Galaxy S24", "Flagship", brandID, categoryID,
		catalog.ProductSpec{RAM: "8GB", Storage: "256GB", Battery: "4000mAh"},
		decimal.RequireFromString("999.99"))
	require.NoError(t, err)
	product.SetImage("products/galaxy.jpg")

	model := ProductModelFromDomain(product)
	model.Brand = &BrandModel{Name: "Samsung"}
	model.Category = &CategoryModel{Name: "Phones"}

	got := model.ToDomain()
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, "Galaxy S24", got.Name)
	assert.Equal(t, brandID, got.BrandID)
	assert.Equal(t, categoryID, got.CategoryID)
	assert.Equal(t, "8GB", got.RAM)
	assert.True(t, product.Price.Equal(got.Price))
	assert.Equal(t, "products/galaxy.jpg", got.Image)
	assert.Equal(t, catalog.DefaultRating, got.Rating)
	assert.Equal(t, "Samsung", got.BrandName)
	assert.Equal(t, "Phones", got.CategoryName)
	assert.Empty(t, got.GetDomainEvents())
}

func TestProductModel_ToDomainWithoutAssociations(t *testing.T) {
	model := &ProductModel{BaseModel: BaseModel{ID: uuid.New()}, Name: "Pixel"}

	got := model.ToDomain()
	assert.Empty(t, got.BrandName)
	assert.Empty(t, got.CategoryName)
}

func TestUserModel_RoundTrip(t *testing.T) {
	now := time.Now()
	user := &identity.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		IsStaff:      true,
		IsActive:     true,
		LastLoginAt:  &now,
	}
	user.ID = uuid.New()

	got := UserModelFromDomain(user).ToDomain()
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, got.IsStaff)
	assert.True(t, got.IsActive)
	assert.Equal(t, &now, got.LastLoginAt)
}

func TestCartItemModel_ToDomain(t *testing.T) {
	model := &CartItemModel{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ProductID: uuid.New(),
		Quantity:  3,
		Product:   &ProductModel{Name: "Pixel", Price: decimal.NewFromInt(100)},
	}

	item := model.ToDomain()
	require.NotNil(t, item.Product)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, decimal.NewFromInt(300).Equal(item.Subtotal()))
}
