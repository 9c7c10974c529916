package domain

import "context"

// ServicePort defines the service contract for auth
type ServicePort interface {
	Register(ctx context.Context, in RegisterInput) (Session, error)
	Login(ctx context.Context, in LoginInput) (Session, error)
	Current(ctx context.Context, userID string) (User, error)
	Logout(ctx context.Context, token string) error

	// Resolve maps a bearer token to its user id
	Resolve(ctx context.Context, token string) (string, error)
}
