package middleware

import (
	"net/http"

	"laundry-be/internal/auth"
	"laundry-be/internal/logger"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthMiddleware loads the caller from the token cookie or Bearer header.
// Requests without a token pass through anonymously; a token that fails
// verification is rejected.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseJWT(tokenStr)
		if err != nil {
			logger.FromCtx(r.Context()).Info("rejected token", zap.Error(err))
			transport.WriteJSONError(w, transport.ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}

		userID := uuid.MustParse(claims.UserID)
		noteUser(r.Context(), userID)

		ctx := utils.SetUserContext(r.Context(), userID, claims.Username, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			transport.WriteJSONError(w, "not authorized, no token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly must run after RequireAuth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsAdmin(r.Context()) {
			transport.WriteJSONError(w, transport.ErrForbidden.Error(), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
