package module

import (
	"time"

	"agenda/internal/platform/config"
	authsvc "agenda/internal/services/api/auth/service"

	"golang.org/x/crypto/bcrypt"
)

// Options controls sessions and password hashing
type Options struct {
	SessionTTL time.Duration
	BcryptCost int
}

// FromConfig reads CORE_API_SESSION_TTL and CORE_API_BCRYPT_COST from the api scoped config
func FromConfig(cfg config.Conf) Options {
	return Options{
		SessionTTL: cfg.MayDuration("SESSION_TTL", authsvc.DefaultSessionTTL),
		BcryptCost: cfg.MayInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}
