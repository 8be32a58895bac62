package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/PeterMetero/metero-store/internal/api/middleware"
	"github.com/PeterMetero/metero-store/internal/cache"
	"github.com/PeterMetero/metero-store/internal/config"
	appErrors "github.com/PeterMetero/metero-store/internal/errors"
	"github.com/PeterMetero/metero-store/internal/models"
	repository "github.com/PeterMetero/metero-store/internal/repositories"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
	// InvalidateProducts drops cached copies after stock changed elsewhere.
	InvalidateProducts(ctx context.Context, ids ...uuid.UUID)
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache, cfg *config.Cache) ProductService {
	return &productService{repo: repo, cache: productCache, ttl: cfg.DefaultTTL}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Price == nil {
		return nil, appErrors.AddValidationError("price", "is required")
	}

	if req.Price.IsNegative() {
		return nil, appErrors.AddValidationError("price", "must not be negative")
	}

	product := &models.Product{
		Name:        plainText.Sanitize(strings.TrimSpace(req.Name)),
		Description: richText.Sanitize(req.Description),
		Price:       req.Price.Round(2),
		Stock:       *req.Stock,
		Image:       req.Image,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// GetProductByID reads through the cache. Cache errors fall back to the database.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.ProductKey(id)

	var cached models.Product

	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if hit {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.ttl); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	fields := *req

	if req.Name != nil {
		name := plainText.Sanitize(strings.TrimSpace(*req.Name))
		fields.Name = &name
	}

	if req.Description != nil {
		description := richText.Sanitize(*req.Description)
		fields.Description = &description
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, appErrors.AddValidationError("price", "must not be negative")
		}

		price := req.Price.Round(2)
		fields.Price = &price
	}

	product, err := s.repo.UpdateProduct(ctx, id, &fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.InvalidateProducts(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return appErrors.NotFoundError("Product not found").WithError(err)
		case errors.Is(err, repository.ErrConflict):
			return appErrors.ConflictError("Product is referenced by existing orders").WithError(err)
		default:
			return appErrors.DatabaseError("Failed to delete product").WithError(err)
		}
	}

	s.InvalidateProducts(ctx, id)

	return nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {
	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) InvalidateProducts(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cache.ProductKey(id))
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}
