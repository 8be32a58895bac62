package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PeterMetero/metero-store/internal/errors"
	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/PeterMetero/metero-store/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

// UserContextKey holds the *models.Claims of the authenticated caller.
var UserContextKey = contextKey(uuid.New())

// legacyTokenHeader is accepted for clients that predate bearer tokens.
const legacyTokenHeader = "x-auth-token"

type AuthMiddleware struct {
	jwtKey []byte
	parser *jwt.Parser
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{
		jwtKey: jwtKey,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Authenticate rejects the request with 401 unless it carries a valid token,
// and puts the token claims into the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		tokenString, appErr := bearerToken(r)
		if appErr != nil {
			logger.Warn("Rejected request without usable token", slog.String("reason", appErr.Message))
			response.Error(w, appErr)

			return
		}

		claims := &models.Claims{}

		token, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
			return m.jwtKey, nil
		})
		if err != nil || !token.Valid {
			logger.Warn("JWT validation failed", slog.Any("error", err))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

			return
		}

		if claims.UserID == uuid.Nil {
			logger.Warn("JWT without user id")
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

			return
		}

		requestLogger := logger.With(slog.String("userId", claims.UserID.String()))

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		ctx = context.WithValue(ctx, LoggerKey, requestLogger)

		requestLogger.Debug("User authenticated", slog.Bool("isAdmin", claims.IsAdmin))

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if !claims.IsAdmin {
			LoggerFromContext(r.Context()).Warn("Admin route denied")
			response.Error(w, errors.ForbiddenError("Admin access required"))

			return
		}

		next.ServeHTTP(w, r)
	}
}

func bearerToken(r *http.Request) (string, *errors.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if token := strings.TrimSpace(r.Header.Get(legacyTokenHeader)); token != "" {
			return token, nil
		}

		return "", errors.UnauthorizedError("Authorization header is required")
	}

	// Token is of format : "Bearer <token>"
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errors.UnauthorizedError("Invalid authorization format")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.UnauthorizedError("Invalid authorization format")
	}

	return token, nil
}
