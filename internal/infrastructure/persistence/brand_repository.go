package persistence

import (
	"context"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBrandRepository implements BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// FindByID finds a brand by its ID
func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	var model models.BrandModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every brand ordered by name
func (r *GormBrandRepository) FindAll(ctx context.Context) ([]catalog.Brand, error) {
	var rows []models.BrandModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	brands := make([]catalog.Brand, len(rows))
	for i := range rows {
		brands[i] = *rows[i].ToDomain()
	}
	return brands, nil
}

// Save creates or updates a brand
func (r *GormBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	return translateError(r.db.WithContext(ctx).Save(models.BrandModelFromDomain(brand)).Error)
}

// Delete removes a brand together with every product it makes
func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("brand_id = ?", id).Delete(&models.ProductModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.BrandModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByID checks if a brand exists
func (r *GormBrandRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BrandModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormBrandRepository implements BrandRepository
var _ catalog.BrandRepository = (*GormBrandRepository)(nil)
