package mocks

import (
	"context"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (_m *OrderService) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, userID)

	return order(ret), ret.Error(1)
}

func (_m *OrderService) GetOrder(ctx context.Context, id uuid.UUID, requester *models.Claims) (*models.Order, error) {
	ret := _m.Called(ctx, id, requester)

	return order(ret), ret.Error(1)
}

func (_m *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Order, int, error) {
	ret := _m.Called(ctx, userID, page, pageSize)

	var r0 []*models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	ret := _m.Called(ctx, id, status)

	return order(ret), ret.Error(1)
}

func NewOrderService(t testingT) *OrderService {
	m := &OrderService{}
	register(t, &m.Mock)

	return m
}
