package middleware

import (
	"context"
	"net/http"
	"tindahan_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// Context keys for storing session data in request context
type contextKey string

const (
	SellerContextKey contextKey = "seller_id"
	ClaimsContextKey contextKey = "claims"
)

// SellerAuthMiddleware protects routes to authenticated sellers only
func (mw *Middleware) SellerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractSessionClaims(r, mw.cfg.Auth.SessionCookieName, mw.cfg.Auth.SessionTokenSecret)
		if err != nil {
			mw.logger.Warn("Failed to extract session claims from request", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing session token"), gecho.Send())
			return
		}

		if claims.Role != "seller" {
			mw.logger.Warn("Non-seller attempted to access seller route",
				gecho.Field("sub", claims.Sub.String()),
				gecho.Field("role", claims.Role),
			)
			gecho.Forbidden(w, gecho.WithMessage("Seller access required"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), SellerContextKey, claims.Sub)
		ctx = context.WithValue(ctx, ClaimsContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSellerIDFromContext extracts the authenticated seller id from request context
func GetSellerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SellerContextKey).(uuid.UUID)
	return id, ok
}

// GetClaimsFromContext extracts the session claims from request context
func GetClaimsFromContext(ctx context.Context) (*lib.SessionClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*lib.SessionClaims)
	return claims, ok
}
