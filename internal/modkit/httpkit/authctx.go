package httpkit

import (
	"net/http"
	"strings"

	perr "agenda/internal/platform/errors"
	pnet "agenda/internal/platform/net"
)

// User is the id the Auth middleware resolved, unauthorized when there is none
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", perr.Unauthorizedf("missing bearer token")
}

// Bearer returns the token of an "Authorization: Bearer <token>" header;
// the scheme is matched case-insensitively
func Bearer(r *http.Request) (string, error) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	tok = strings.TrimSpace(tok)
	if !ok || !strings.EqualFold(scheme, "bearer") || tok == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return tok, nil
}
