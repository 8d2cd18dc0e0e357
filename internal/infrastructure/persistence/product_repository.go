package persistence

import (
	"context"
	"strings"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withAssociations preloads the brand and category used for display names
func (r *GormProductRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Brand").Preload("Category")
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.withAssociations(ctx).First(&model, "products.id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns products matching the filter.
// Search matches a case-insensitive substring of the name; an empty filter returns everything.
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	query := r.withAssociations(ctx).Model(&models.ProductModel{})

	// whitespace is part of the needle; only an empty search is no filter
	if filter.Search != "" {
		query = query.Where(`LOWER(products.name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}

	var rows []models.ProductModel
	if err := query.Order("products.created_at ASC, products.id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

// FindByIDs returns the products with the given IDs; unknown IDs are skipped
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.withAssociations(ctx).
		Where("products.id IN ?", ids).
		Order("products.created_at ASC, products.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return translateError(r.db.WithContext(ctx).Omit("Brand", "Category").Save(model).Error)
}

// Delete deletes a product by its ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByID checks if a product exists
func (r *GormProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
