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

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

// AddReview godoc
//	@Summary		Review a product
//	@Description	Adds the authenticated user's rating and comment for a product. One review per user and product.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			review	body		models.CreateReviewRequest	true	"Review Details"
//	@Success		201		{object}	models.Review				"Successfully added review"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Failure		409		{object}	response.ErrorResponse		"Product already reviewed"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/reviews [post]
func (h *ReviewHandler) AddReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized review attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.CreateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid review input")
			return
		}

		review, err := h.reviewService.AddReview(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add review", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Review added", slog.String("productId", review.ProductID.String()))
		response.Success(w, http.StatusCreated, review)
	}
}

// ListReviews godoc
//	@Summary		List a product's reviews
//	@Tags			Reviews
//	@Produce		json
//	@Param			productId	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200			{array}		models.Review			"Reviews, newest first"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product ID format"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/reviews/{productId} [get]
func (h *ReviewHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		reviews, err := h.reviewService.ListReviews(r.Context(), productID)
		if err != nil {
			logger.Error("Failed to list reviews", slog.String("productId", productID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}
