package auth

import (
	"net/http"
	"strings"

	apperrors "coworking/internal/errors"
	"coworking/internal/response"
)

// Authenticate requires a valid "Authorization: Bearer <token>" header and stores the
// caller in the request context.
func Authenticate(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Error(w, apperrors.Unauthorized("Authentication required"))
				return
			}
			p, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				response.Error(w, apperrors.Unauthorized("Invalid or expired token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				response.Error(w, apperrors.Unauthorized("Authentication required"))
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, apperrors.Forbidden("You do not have permission to perform this action"))
		})
	}
}
