package service

import (
	"context"
	"errors"
	"fmt"

	appErrors "github.com/PeterMetero/metero-store/internal/errors"
	"github.com/PeterMetero/metero-store/internal/metrics"
	"github.com/PeterMetero/metero-store/internal/models"
	repository "github.com/PeterMetero/metero-store/internal/repositories"
	"github.com/google/uuid"
)

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID, requester *models.Claims) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	carts    repository.CartRepository
	orders   repository.OrderRepository
	products ProductService
}

func NewOrderService(carts repository.CartRepository, orders repository.OrderRepository, products ProductService) OrderService {
	return &orderService{carts: carts, orders: orders, products: products}
}

// Checkout turns the user's cart into a pending order. The next AddToCart
// after a successful checkout opens a new cart.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	order, err := s.carts.Checkout(ctx, userID)
	if err != nil {
		var stockErr *repository.StockError

		switch {
		case errors.As(err, &stockErr):
			metrics.RecordCheckout("insufficient_stock")

			return nil, appErrors.InsufficientStockError("Insufficient stock").
				WithDetail(fmt.Sprintf("product %s can not cover %d units", stockErr.ProductID, stockErr.Requested)).
				WithError(err)
		case errors.Is(err, repository.ErrNotFound):
			metrics.RecordCheckout("no_cart")
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		case errors.Is(err, repository.ErrEmptyCart):
			metrics.RecordCheckout("empty_cart")
			return nil, appErrors.EmptyCartError("Cart is empty").WithError(err)
		default:
			metrics.RecordCheckout("error")
			return nil, appErrors.DatabaseError("Failed to place order").WithError(err)
		}
	}

	metrics.RecordCheckout("placed")
	s.products.InvalidateProducts(ctx, productIDs(order)...)

	return order, nil
}

// GetOrder returns the order to its owner or to an admin.
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID, requester *models.Claims) (*models.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.UserID != requester.UserID && !requester.IsAdmin {
		return nil, appErrors.ForbiddenError("You do not have access to this order")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Order, int, error) {
	orders, total, err := s.orders.ListOrdersByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	current, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if !models.CanTransition(current.Status, status) {
		return nil, appErrors.ConflictError(fmt.Sprintf("Cannot move order from %s to %s", current.Status, status))
	}

	order, err := s.orders.UpdateOrderStatus(ctx, id, current.Status, status)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, appErrors.ConflictError("Order status changed concurrently").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	if status == models.OrderStatusCancelled {
		s.products.InvalidateProducts(ctx, productIDs(order)...)
	}

	return order, nil
}

func productIDs(order *models.Order) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(order.Lines))
	for _, line := range order.Lines {
		ids = append(ids, line.ProductID)
	}

	return ids
}
