package middleware

import (
	"context"
	"net/http"

	"github.com/Chamas111/booking-airbnb/internal/session"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Claims, error)
}

// SessionMiddleware resolves the token cookie. A valid session puts the claims in
// the request context; anything else leaves the request anonymous.
func SessionMiddleware(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), claims)))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserFromContext(r.Context()); !ok {
			writeError(w, "Not logged in", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
