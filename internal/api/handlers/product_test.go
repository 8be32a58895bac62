package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PeterMetero/metero-store/internal/api/handlers"
	"github.com/PeterMetero/metero-store/internal/errors"
	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/PeterMetero/metero-store/internal/services/mocks"
	"github.com/PeterMetero/metero-store/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	adminID := uuid.New()

	t.Run("Success - Product Created", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		expected := &models.Product{
			ID:          uuid.New(),
			Name:        "Mug",
			Description: "Ceramic",
			Price:       decimal.RequireFromString("12.50"),
			Stock:       5,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		mockProductService.On("CreateProduct", mock.Anything, mock.MatchedBy(func(r *models.CreateProductRequest) bool {
			return r.Name == "Mug" && r.Price != nil && r.Price.Equal(expected.Price) && r.Stock != nil && *r.Stock == 5
		})).Return(expected, nil).Once()

		body := strings.NewReader(`{"name":"Mug","description":"Ceramic","price":"12.50","stock":5}`)
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/products", body, adminID, nil)
		rr := httptest.NewRecorder()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var product models.Product
		decodeData(t, rr, &product)
		assert.Equal(t, expected.ID, product.ID)
		assert.True(t, expected.Price.Equal(product.Price))
	})

	t.Run("Invalid Input - Bad JSON", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/products", strings.NewReader("{invalid json"), adminID, nil)
		rr := httptest.NewRecorder()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, errors.ErrCodeBadRequest, decodeError(t, rr).Code)
		mockProductService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Input - Missing Stock", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		body := strings.NewReader(`{"name":"Mug","description":"Ceramic","price":"12.50"}`)
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/products", body, adminID, nil)
		rr := httptest.NewRecorder()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errResp := decodeError(t, rr)
		assert.Equal(t, errors.ErrCodeValidation, errResp.Code)
		assert.Contains(t, errResp.Details, "Field Stock is required")
	})

	t.Run("Invalid Input - Missing Price", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		body := strings.NewReader(`{"name":"Mug","description":"Ceramic","stock":5}`)
		req := testutils.CreateAdminTestRequest(http.MethodPost, "/api/v1/products", body, adminID, nil)
		rr := httptest.NewRecorder()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errResp := decodeError(t, rr)
		assert.Equal(t, errors.ErrCodeValidation, errResp.Code)
		assert.Contains(t, errResp.Details, "Field Price is required")
		mockProductService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestGetProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("GetProductByID", mock.Anything, productID).
			Return(&models.Product{ID: productID, Name: "Mug", Price: decimal.NewFromInt(10), Stock: 3}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String(), nil,
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var product models.Product
		decodeData(t, rr, &product)
		assert.Equal(t, 3, product.Stock)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/abc", nil, map[string]string{"id": "abc"})
		rr := httptest.NewRecorder()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("GetProductByID", mock.Anything, productID).Return(nil, errors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String(), nil,
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, errors.ErrCodeNotFound, decodeError(t, rr).Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	adminID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Partial Update", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("UpdateProduct", mock.Anything, productID, mock.MatchedBy(func(r *models.UpdateProductRequest) bool {
			return r.Stock != nil && *r.Stock == 42 && r.Name == nil && r.Price == nil
		})).Return(&models.Product{ID: productID, Name: "Mug", Stock: 42}, nil).Once()

		req := testutils.CreateAdminTestRequest(http.MethodPut, "/api/v1/products/"+productID.String(),
			strings.NewReader(`{"stock":42}`), adminID, map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		productHandler.UpdateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var product models.Product
		decodeData(t, rr, &product)
		assert.Equal(t, 42, product.Stock)
	})

	t.Run("Failure - Negative Stock", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		req := testutils.CreateAdminTestRequest(http.MethodPut, "/api/v1/products/"+productID.String(),
			strings.NewReader(`{"stock":-1}`), adminID, map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		productHandler.UpdateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteProduct(t *testing.T) {
	adminID := uuid.New()
	productID := uuid.New()

	t.Run("Success - No Content", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("DeleteProduct", mock.Anything, productID).Return(nil).Once()

		req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil, adminID,
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		productHandler.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("Failure - Referenced By Orders", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("DeleteProduct", mock.Anything, productID).
			Return(errors.ConflictError("Product is referenced by existing orders")).Once()

		req := testutils.CreateAdminTestRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil, adminID,
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		productHandler.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, errors.ErrCodeConflict, decodeError(t, rr).Code)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("Success - Custom Pagination", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewProductService(t)
		productHandler := handlers.NewProductHandler(mockProductService)

		products := []*models.Product{{ID: uuid.New(), Name: "Mug"}, {ID: uuid.New(), Name: "Spoon"}}
		mockProductService.On("ListProducts", mock.Anything, 2, 5).Return(products, 7, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?page=2&pageSize=5", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var page models.PaginatedResponse
		decodeData(t, rr, &page)
		assert.Equal(t, 7, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 5, page.PageSize)
		require.Len(t, page.Data, 2)
	})

	t.Run("Success - Limit Alias And Defaults", func(t *testing.T) {
		testCases := []struct {
			name     string
			query    string
			page     int
			pageSize int
		}{
			{name: "limit alias", query: "?limit=20", page: 1, pageSize: 20},
			{name: "garbage", query: "?page=abc&pageSize=-4", page: 1, pageSize: 10},
			{name: "too large", query: "?page=3&pageSize=1000", page: 3, pageSize: 10},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				// Arrange
				mockProductService := mocks.NewProductService(t)
				productHandler := handlers.NewProductHandler(mockProductService)

				mockProductService.On("ListProducts", mock.Anything, tc.page, tc.pageSize).Return([]*models.Product{}, 0, nil).Once()

				req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products"+tc.query, nil, nil)
				rr := httptest.NewRecorder()

				// Act
				productHandler.ListProducts().ServeHTTP(rr, req)

				// Assert
				assert.Equal(t, http.StatusOK, rr.Code)
			})
		}
	})
}
