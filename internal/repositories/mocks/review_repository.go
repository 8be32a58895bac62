package mocks

import (
	"context"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ReviewRepository struct {
	mock.Mock
}

func (_m *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	ret := _m.Called(ctx, review)

	return ret.Error(0)
}

func (_m *ReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Review, error) {
	ret := _m.Called(ctx, productID)

	var r0 []*models.Review
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Review)
	}

	return r0, ret.Error(1)
}

func NewReviewRepository(t testingT) *ReviewRepository {
	m := &ReviewRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
