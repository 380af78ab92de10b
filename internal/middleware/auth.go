package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"sso-server/internal/auth"
	"sso-server/internal/shared/cookies"
	"sso-server/internal/shared/errors"
	"sso-server/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

type tokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

type JWTAuth struct {
	validator tokenValidator
}

func NewJWTAuth(validator tokenValidator) *JWTAuth {
	return &JWTAuth{validator: validator}
}

// Middleware accepts the session from the auth cookie or, for clients that
// cannot hold cookies, an auth header carrying the same value.
func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "jwt",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing JWT authentication")

		token := r.Header.Get(cookies.AuthCookie)
		if cookie, err := r.Cookie(cookies.AuthCookie); err == nil && cookie.Value != "" {
			token = cookie.Value
		}
		if token == "" {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		claims, err := a.validator.Validate(token)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		logger.Debug("JWT authentication successful", "user_id", claims.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
