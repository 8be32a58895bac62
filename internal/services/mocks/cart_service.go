package mocks

import (
	"context"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (_m *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req *models.AddToCartRequest) (*models.Order, error) {
	ret := _m.Called(ctx, userID, req)

	return order(ret), ret.Error(1)
}

func (_m *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, userID)

	return order(ret), ret.Error(1)
}

func NewCartService(t testingT) *CartService {
	m := &CartService{}
	register(t, &m.Mock)

	return m
}

func order(args mock.Arguments) *models.Order {
	if v := args.Get(0); v != nil {
		return v.(*models.Order)
	}

	return nil
}
