package persistence

import (
	"context"

	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/fliamecomm/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLikeRepository implements LikeRepository using GORM
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// Toggle flips the user's like on a product and returns the new state with the fresh count.
// Deleting first decides the direction; the insert ignores a concurrent duplicate.
func (r *GormLikeRepository) Toggle(ctx context.Context, userID, productID uuid.UUID) (shopping.LikeResult, error) {
	var result shopping.LikeResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.ProductLikeModel{})
		if deleted.Error != nil {
			return deleted.Error
		}

		if deleted.RowsAffected == 0 {
			like := models.ProductLikeModelFromDomain(shopping.NewProductLike(userID, productID))
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return err
			}
			result.Liked = true
		}

		return tx.Model(&models.ProductLikeModel{}).
			Where("product_id = ?", productID).
			Count(&result.LikesCount).Error
	})
	if err != nil {
		return shopping.LikeResult{}, translateError(err)
	}
	return result, nil
}

// Exists reports whether the user likes the product
func (r *GormLikeRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductLikeModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByProduct returns the number of users who like the product
func (r *GormLikeRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductLikeModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type likeCountRow struct {
	ProductID uuid.UUID
	Total     int64
}

// CountByProducts returns like counts keyed by product; products without likes are absent
func (r *GormLikeRepository) CountByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}

	var rows []likeCountRow
	if err := r.db.WithContext(ctx).Model(&models.ProductLikeModel{}).
		Select("product_id, COUNT(*) AS total").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProductID] = row.Total
	}
	return counts, nil
}

// LikedProductIDs returns the subset of productIDs the user likes.
// An empty productIDs slice returns every product the user likes.
func (r *GormLikeRepository) LikedProductIDs(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductLikeModel{}).Where("user_id = ?", userID)
	if len(productIDs) > 0 {
		query = query.Where("product_id IN ?", productIDs)
	}

	var ids []uuid.UUID
	if err := query.Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	liked := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// FindProductIDsByUser returns the products the user likes, most recent first
func (r *GormLikeRepository) FindProductIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.ProductLikeModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Ensure GormLikeRepository implements LikeRepository
var _ shopping.LikeRepository = (*GormLikeRepository)(nil)
