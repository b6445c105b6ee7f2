package token

import (
	"context"
	"net/http"
	"strings"

	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/httpx"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// Middleware returns a chi-style middleware that validates the
// "Authorization: Bearer <token>" header locally and stores the subject user
// id in the request context. It never contacts the identity authority.
func Middleware(secret []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.WriteError(w, common.ErrUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				httpx.WriteError(w, common.ErrUnauthorized)
				return
			}

			userID, err := Verify(parts[1], secret)
			if err != nil {
				httpx.WriteError(w, common.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id stored by Middleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
