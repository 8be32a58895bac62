package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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

func TestAddToCart(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Quantity Defaults To One", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		cart := &models.Order{
			ID:     uuid.New(),
			UserID: userID,
			Status: models.OrderStatusCart,
			Lines: []models.OrderLine{{
				ProductID: productID,
				Quantity:  1,
				UnitPrice: decimal.NewFromInt(10),
				Product:   &models.ProductSummary{ID: productID, Name: "Mug", Price: decimal.NewFromInt(10)},
			}},
			Total: decimal.NewFromInt(10),
		}

		mockCartService.On("AddToCart", mock.Anything, userID, mock.MatchedBy(func(r *models.AddToCartRequest) bool {
			return r.ProductID == productID && r.Quantity == nil
		})).Return(cart, nil).Once()

		body := strings.NewReader(fmt.Sprintf(`{"productId":%q}`, productID))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/add", body, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.AddToCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"products":[`)

		var got models.Order
		decodeData(t, rr, &got)
		assert.Equal(t, models.OrderStatusCart, got.Status)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, "Mug", got.Lines[0].Product.Name)
		assert.True(t, got.Total.Equal(decimal.NewFromInt(10)))
	})

	t.Run("Failure - Zero Quantity", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		body := strings.NewReader(fmt.Sprintf(`{"productId":%q,"quantity":0}`, productID))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/add", body, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.AddToCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, errors.ErrCodeValidation, decodeError(t, rr).Code)
		mockCartService.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		body := strings.NewReader(fmt.Sprintf(`{"productId":%q}`, productID))
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/cart/add", body, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.AddToCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Failure - Insufficient Stock", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("AddToCart", mock.Anything, userID, mock.AnythingOfType("*models.AddToCartRequest")).
			Return(nil, errors.InsufficientStockError("Not enough stock").WithDetail("requested 5, available 2")).Once()

		body := strings.NewReader(fmt.Sprintf(`{"productId":%q,"quantity":5}`, productID))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/add", body, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.AddToCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errResp := decodeError(t, rr)
		assert.Equal(t, errors.ErrCodeInsufficientStock, errResp.Code)
		assert.Equal(t, []string{"requested 5, available 2"}, errResp.Details)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("AddToCart", mock.Anything, userID, mock.AnythingOfType("*models.AddToCartRequest")).
			Return(nil, errors.NotFoundError("Product not found")).Once()

		body := strings.NewReader(fmt.Sprintf(`{"productId":%q}`, productID))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/add", body, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.AddToCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		empty := models.EmptyCart()
		empty.UserID = userID
		mockCartService.On("GetCart", mock.Anything, userID).Return(empty, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"products":[]`)
		assert.Contains(t, rr.Body.String(), `"total":0`)
		assert.NotContains(t, rr.Body.String(), `"id":`)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockCartService.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		mockCartService.On("GetCart", mock.Anything, userID).Return(nil, fmt.Errorf("connection reset")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "connection reset")
	})
}
