package persistence

import (
	"context"
	"time"

	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/fliamecomm/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// AddOne inserts a cart line with quantity 1 or increments the existing one.
// The increment happens in a single upsert so concurrent adds are never lost.
func (r *GormCartRepository) AddOne(ctx context.Context, userID, productID uuid.UUID) (*shopping.CartItem, error) {
	model := &models.CartItemModel{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		AddedAt:   time.Now(),
	}

	if err := upsertIncrement(r.db.WithContext(ctx), model).Error; err != nil {
		return nil, translateError(err)
	}

	return r.Find(ctx, userID, productID)
}

// upsertIncrement inserts model or bumps the quantity of the conflicting (user, product) row
func upsertIncrement(db *gorm.DB, model *models.CartItemModel) *gorm.DB {
	return db.Omit("Product").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + 1"),
		}),
	}).Create(model)
}

// Remove deletes the cart line for (user, product) and reports whether one existed
func (r *GormCartRepository) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItemModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Find returns the cart line for (user, product) with its product loaded
func (r *GormCartRepository) Find(ctx context.Context, userID, productID uuid.UUID) (*shopping.CartItem, error) {
	var model models.CartItemModel
	if err := r.withProduct(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns every cart line owned by the user, oldest first
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]shopping.CartItem, error) {
	var rows []models.CartItemModel
	if err := r.withProduct(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]shopping.CartItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

func (r *GormCartRepository) withProduct(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Brand").
		Preload("Product.Category")
}

// Ensure GormCartRepository implements CartRepository
var _ shopping.CartRepository = (*GormCartRepository)(nil)
