package mocks

import (
	"context"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (_m *CartRepository) AddLine(ctx context.Context, userID uuid.UUID, line models.OrderLine) (*models.Order, error) {
	ret := _m.Called(ctx, userID, line)

	return order(ret, 0), ret.Error(1)
}

func (_m *CartRepository) GetCart(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, userID)

	return order(ret, 0), ret.Error(1)
}

func (_m *CartRepository) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, userID)

	return order(ret, 0), ret.Error(1)
}

func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func order(args mock.Arguments, i int) *models.Order {
	if v := args.Get(i); v != nil {
		return v.(*models.Order)
	}

	return nil
}
