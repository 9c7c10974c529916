package middleware

import (
	"net/http"

	"agenda/internal/platform/logger"
	pnet "agenda/internal/platform/net"
)

// Writer renders a status and body, usually as JSON
type Writer func(w http.ResponseWriter, status int, body any)

// AuthPort resolves the user behind a request
type AuthPort interface {
	Parse(r *http.Request) (userID string, err error)
}

// Auth rejects requests p cannot resolve and puts the user on the context and
// the request logger; a nil port lets every request through anonymously
func Auth(p AuthPort, write Writer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Failure(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = logger.With(ctx, "user_id", uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
