package handlers

import (
	"log/slog"
	"net/http"

	"github.com/PeterMetero/metero-store/internal/api/middleware"
	"github.com/PeterMetero/metero-store/internal/errors"
	"github.com/PeterMetero/metero-store/internal/models"
	service "github.com/PeterMetero/metero-store/internal/services"
	"github.com/PeterMetero/metero-store/internal/utils"
	"github.com/PeterMetero/metero-store/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// AddToCart godoc
//	@Summary		Add a product to the cart
//	@Description	Adds quantity units of a product to the caller's cart, creating the cart on first use. Adding a product already in the cart increases its quantity and keeps the price it entered with.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddToCartRequest	true	"Product and quantity (defaults to 1)"
//	@Success		200		{object}	models.Order			"The updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or not enough stock"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Cart changed concurrently"
//	@Failure		429		{object}	response.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/add [post]
func (h *CartHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized add to cart attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.AddToCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		cart, err := h.cartService.AddToCart(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to add to cart", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product added to cart", slog.String("cartId", cart.ID.String()), slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the caller's open cart, or an empty one if none exists yet.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Order			"The caller's cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("userID", claims.UserID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
