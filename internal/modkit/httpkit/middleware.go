package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "agenda/internal/platform/net/http"
	"agenda/internal/platform/net/middleware"
)

// CommonStack is the middleware every api route runs through; origins feeds CORS
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(500 * time.Millisecond),
		middleware.Recover(phttp.JSON),
		middleware.NoCache(),
		middleware.CORS(origins),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth resolves the caller through p and answers failures with the JSON envelope
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
