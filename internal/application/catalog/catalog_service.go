package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/fliamecomm/storefront/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CatalogService handles catalog browsing and staff catalog management
type CatalogService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	likeRepo     shopping.LikeRepository
	images       ImageStorage
	processor    ImageProcessor
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	likeRepo shopping.LikeRepository,
	images ImageStorage,
	processor ImageProcessor,
	events shared.EventPublisher,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		likeRepo:     likeRepo,
		images:       images,
		processor:    processor,
		events:       events,
		logger:       logger,
	}
}

// Search lists the products matching query, annotated with like counts and
// whether viewer likes each one, together with the category filter options.
func (s *CatalogService) Search(ctx context.Context, viewer identity.Identity, query ProductQuery) (page *CatalogPage, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "CatalogService", "Search", attribute.String("q", query.Q))
	defer func() { telemetry.EndSpan(span, err) }()

	products, err := s.productRepo.FindAll(ctx, catalog.ProductFilter{
		Search:     query.Q,
		CategoryID: query.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	views, err := s.annotate(ctx, viewer, products)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]CategoryOption, len(categories))
	for i, c := range categories {
		options[i] = CategoryOption{
			ID:       c.ID,
			Name:     c.Name,
			Selected: query.CategoryID != nil && *query.CategoryID == c.ID,
		}
	}

	return &CatalogPage{Query: query, Products: views, Categories: options}, nil
}

func (s *CatalogService) annotate(ctx context.Context, viewer identity.Identity, products []catalog.Product) ([]ProductView, error) {
	views := make([]ProductView, len(products))
	if len(products) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}

	counts, err := s.likeRepo.CountByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked := map[uuid.UUID]bool{}
	if viewer.IsAuthenticated() {
		liked, err = s.likeRepo.LikedProductIDs(ctx, viewer.UserID(), ids)
		if err != nil {
			return nil, err
		}
	}

	for i := range products {
		views[i] = ProductView{
			Product:    products[i],
			LikesCount: counts[products[i].ID],
			Liked:      liked[products[i].ID],
		}
	}
	return views, nil
}

// ListCategories returns every category ordered by name
func (s *CatalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

// ListBrands returns every brand ordered by name
func (s *CatalogService) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	return s.brandRepo.FindAll(ctx)
}

// ListAllProducts returns every product for the staff dashboard
func (s *CatalogService) ListAllProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.productRepo.FindAll(ctx, catalog.ProductFilter{})
}

// CreateCategory adds a category
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*catalog.Category, error) {
	category, err := catalog.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("Category created", zap.String("category_id", category.ID.String()), zap.String("name", category.Name))
	return category, nil
}

// CreateBrand adds a brand
func (s *CatalogService) CreateBrand(ctx context.Context, name string) (*catalog.Brand, error) {
	brand, err := catalog.NewBrand(name)
	if err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	s.logger.Info("Brand created", zap.String("brand_id", brand.ID.String()), zap.String("name", brand.Name))
	return brand, nil
}

// DeleteCategory removes a category and its products
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

// DeleteBrand removes a brand and its products
func (s *CatalogService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Brand deleted", zap.String("brand_id", id.String()))
	return nil
}

// CreateProduct validates and stores a new product, uploading its image when one is given
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (product *catalog.Product, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "CatalogService", "CreateProduct")
	defer func() { telemetry.EndSpan(span, err) }()

	product, err = catalog.NewProduct(input.Name, input.Description, input.BrandID, input.CategoryID,
		catalog.ProductSpec{RAM: input.RAM, Storage: input.Storage, Battery: input.Battery}, input.Price)
	if err != nil {
		return nil, err
	}

	if err := s.requireExists(ctx, input.BrandID, input.CategoryID); err != nil {
		return nil, err
	}

	if input.Image != nil {
		key, err := s.storeImage(ctx, product.ID, input.Image)
		if err != nil {
			return nil, err
		}
		product.SetImage(key)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		if product.HasImage() {
			if delErr := s.images.Delete(ctx, product.Image); delErr != nil {
				s.logger.Warn("Failed to remove orphaned image", zap.String("key", product.Image), zap.Error(delErr))
			}
		}
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.Bool("has_image", product.HasImage()),
	)
	s.publish(ctx, product.GetDomainEvents()...)
	product.ClearDomainEvents()

	return product, nil
}

func (s *CatalogService) requireExists(ctx context.Context, brandID, categoryID uuid.UUID) error {
	ok, err := s.brandRepo.ExistsByID(ctx, brandID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("NOT_FOUND", "Brand not found")
	}
	ok, err = s.categoryRepo.ExistsByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("NOT_FOUND", "Category not found")
	}
	return nil
}

func (s *CatalogService) storeImage(ctx context.Context, productID uuid.UUID, r io.Reader) (string, error) {
	processed, err := s.processor.Process(r)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("products/%s%s", productID, processed.Extension)
	if err := s.images.Put(ctx, key, processed.Data, processed.ContentType); err != nil {
		return "", fmt.Errorf("failed to store product image: %w", err)
	}
	return key, nil
}

// OpenImage streams a stored product image
func (s *CatalogService) OpenImage(ctx context.Context, key string) (io.ReadCloser, *StoredObject, error) {
	rc, obj, err := s.images.Get(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewDomainError("NOT_FOUND", "Image not found")
		}
		return nil, nil, err
	}
	return rc, obj, nil
}

func (s *CatalogService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish catalog events", zap.Error(err))
	}
}
