package mocks

import (
	"context"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (_m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	ret := _m.Called(ctx, req)

	return product(ret), ret.Error(1)
}

func (_m *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)

	return product(ret), ret.Error(1)
}

func (_m *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	ret := _m.Called(ctx, id, req)

	return product(ret), ret.Error(1)
}

func (_m *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *ProductService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {
	ret := _m.Called(ctx, page, pageSize)

	var r0 []*models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Product)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *ProductService) InvalidateProducts(ctx context.Context, ids ...uuid.UUID) {
	_m.Called(ctx, ids)
}

func NewProductService(t testingT) *ProductService {
	m := &ProductService{}
	register(t, &m.Mock)

	return m
}

func product(args mock.Arguments) *models.Product {
	if v := args.Get(0); v != nil {
		return v.(*models.Product)
	}

	return nil
}
