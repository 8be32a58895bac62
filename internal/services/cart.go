package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PeterMetero/metero-store/internal/api/middleware"
	appErrors "github.com/PeterMetero/metero-store/internal/errors"
	"github.com/PeterMetero/metero-store/internal/metrics"
	"github.com/PeterMetero/metero-store/internal/models"
	repository "github.com/PeterMetero/metero-store/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	AddToCart(ctx context.Context, userID uuid.UUID, req *models.AddToCartRequest) (*models.Order, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Order, error)
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

// AddToCart adds quantity units of a product to the user's cart, opening a
// cart if the user has none. Stock is checked against the requested quantity
// only and nothing is reserved; checkout re-checks it.
func (s *cartService) AddToCart(ctx context.Context, userID uuid.UUID, req *models.AddToCartRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	if req.ProductID == uuid.Nil {
		return nil, appErrors.ValidationError("Product ID is required")
	}

	quantity := req.RequestedQuantity()
	if quantity < 1 {
		return nil, appErrors.AddValidationError("quantity", "must be at least 1")
	}

	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product.Stock < quantity {
		metrics.RecordCartAdd("insufficient_stock")
		logger.Info("Add to cart rejected", slog.String("productId", product.ID.String()), slog.Int("requested", quantity), slog.Int("stock", product.Stock))

		return nil, appErrors.InsufficientStockError("Insufficient stock").
			WithDetail(fmt.Sprintf("requested %d, available %d", quantity, product.Stock))
	}

	order, err := s.carts.AddLine(ctx, userID, models.OrderLine{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, appErrors.ConflictError("Cart changed while it was being updated, please retry").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	metrics.RecordCartAdd("added")

	return order, nil
}

// GetCart never reports a missing cart: a user without one sees an empty cart.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	order, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			empty := models.EmptyCart()
			empty.UserID = userID

			return empty, nil
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return order, nil
}
