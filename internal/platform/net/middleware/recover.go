package middleware

import (
	"net/http"
	"runtime/debug"

	perr "agenda/internal/platform/errors"
	"agenda/internal/platform/logger"
	pnet "agenda/internal/platform/net"
)

// Recover turns a panic into a logged 500 envelope; http.ErrAbortHandler is re-raised
func Recover(write Writer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				status, body := pnet.Failure(perr.PanicErrf("internal error"), pnet.RequestID(r.Context()))
				write(w, status, body)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
