package mocks

import (
	"context"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ReviewService struct {
	mock.Mock
}

func (_m *ReviewService) AddReview(ctx context.Context, userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {
	ret := _m.Called(ctx, userID, req)

	var r0 *models.Review
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Review)
	}

	return r0, ret.Error(1)
}

func (_m *ReviewService) ListReviews(ctx context.Context, productID uuid.UUID) ([]*models.Review, error) {
	ret := _m.Called(ctx, productID)

	var r0 []*models.Review
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Review)
	}

	return r0, ret.Error(1)
}

func NewReviewService(t testingT) *ReviewService {
	m := &ReviewService{}
	register(t, &m.Mock)

	return m
}
