// Package net carries request scoped values shared by the http layers
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type userKey struct{}

// WithUser stores the authenticated user id; an empty id leaves ctx untouched
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the authenticated user id or ""
func UserID(ctx context.Context) string {
	s, _ := ctx.Value(userKey{}).(string)
	return s
}

// RequestID returns the id assigned by the RequestID middleware
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
