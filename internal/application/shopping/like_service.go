package shopping

import (
	"context"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/fliamecomm/storefront/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// LikeService toggles product likes
type LikeService struct {
	productRepo catalog.ProductRepository
	likeRepo    shopping.LikeRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewLikeService creates a new LikeService
func NewLikeService(
	productRepo catalog.ProductRepository,
	likeRepo shopping.LikeRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *LikeService {
	return &LikeService{
		productRepo: productRepo,
		likeRepo:    likeRepo,
		events:      events,
		logger:      logger,
	}
}

// Toggle likes the product if the user does not like it yet, and unlikes it otherwise
func (s *LikeService) Toggle(ctx context.Context, userID, productID uuid.UUID) (result shopping.LikeResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "LikeService", "Toggle",
		attribute.String("product_id", productID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if err = requireProduct(ctx, s.productRepo, productID); err != nil {
		return shopping.LikeResult{}, err
	}

	result, err = s.likeRepo.Toggle(ctx, userID, productID)
	if err != nil {
		return shopping.LikeResult{}, err
	}

	s.logger.Debug("Like toggled",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.Bool("liked", result.Liked),
		zap.Int64("likes_count", result.LikesCount),
	)
	publish(ctx, s.events, s.logger, shopping.NewProductLikeToggledEvent(userID, productID, result))

	return result, nil
}

func requireProduct(ctx context.Context, repo catalog.ProductRepository, productID uuid.UUID) error {
	exists, err := repo.ExistsByID(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, events ...shared.DomainEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish shopping events", zap.Error(err))
	}
}
