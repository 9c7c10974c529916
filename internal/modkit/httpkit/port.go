package httpkit

import (
	"context"
	"net/http"

	perr "agenda/internal/platform/errors"
)

// TokenFunc resolves a bearer token to a user id
type TokenFunc func(token string) (userID string, err error)

// TokenCtxFunc is a TokenFunc that needs the request context, e.g. for a store lookup
type TokenCtxFunc func(ctx context.Context, token string) (userID string, err error)

// Port implements middleware.AuthPort over the Authorization header
type Port struct{ resolve TokenCtxFunc }

// NewPortFunc builds a Port from fn; a nil fn rejects every token
func NewPortFunc(fn TokenFunc) *Port {
	if fn == nil {
		return &Port{}
	}
	return &Port{resolve: func(_ context.Context, tok string) (string, error) { return fn(tok) }}
}

// NewPortCtx builds a Port from a context aware fn
func NewPortCtx(fn TokenCtxFunc) *Port { return &Port{resolve: fn} }

// Parse returns the user behind the bearer token; every failure is unauthorized
// and the resolver's own error is not echoed back
func (p *Port) Parse(r *http.Request) (string, error) {
	tok, err := Bearer(r)
	if err != nil {
		return "", err
	}
	if p.resolve == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.resolve(r.Context(), tok)
	if err != nil || uid == "" {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}
