package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nattapon-dev/hotel-booking-api/internal/models"
	"github.com/nattapon-dev/hotel-booking-api/internal/utils"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// tokenFromRequest accepts the session from the token cookie or an
// Authorization bearer header.
func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "none" {
		return cookie.Value
	}

	return ""
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			utils.JSONError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := utils.VerifyToken(token, m.jwtSecret)
		if err != nil {
			utils.JSONError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), utils.CtxClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || claims.Role != models.RoleAdmin {
			utils.JSONError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func ClaimsFromContext(ctx context.Context) *utils.SessionClaims {
	claims, ok := ctx.Value(utils.CtxClaimsKey).(*utils.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
