package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perrs "agenda/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

// Param returns the named path parameter of the matched route
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// Query returns a trimmed query parameter, empty when absent
func Query(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryInt parses an optional integer query parameter
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := Query(r, key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perrs.Validationf(key, "%s must be an integer", key)
	}
	return n, nil
}

// QueryBool parses an optional boolean query parameter (true/false/1/0)
func QueryBool(r *http.Request, key string, def bool) (bool, error) {
	raw := Query(r, key)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, perrs.Validationf(key, "%s must be true or false", key)
	}
	return b, nil
}
