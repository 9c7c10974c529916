// Package config reads typed settings from the environment; modules get a view
// scoped by prefix, e.g. config.New().Prefix("CORE_API_")
package config

import (
	"strconv"
	"strings"
	"time"

	"agenda/internal/platform/config/raw"
	"agenda/internal/platform/logger"
)

// Conf is a prefixed view over the environment
type Conf struct{ env raw.Conf }

// New returns the unprefixed root view
func New() Conf { return Conf{env: raw.New()} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

// MustString returns the value of key and panics when it is unset
func (c Conf) MustString(key string) string {
	v, ok := c.env.Lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.env.Name(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the value of key or def
func (c Conf) MayString(key, def string) string { return c.env.Get(key, def) }

// MayInt returns the value of key or def when unset or malformed
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool returns the value of key or def when unset or malformed
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns the value of key (250ms, 1h) or def when unset or malformed
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayList splits a comma separated value, dropping blanks; def when nothing is left
func (c Conf) MayList(key string, def []string) []string {
	return may(c, key, def, func(s string) ([]string, error) {
		var out []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return def, nil
		}
		return out, nil
	})
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.env.Name(key)).Str("value", s).Msg("unparsable env, using default")
		return def
	}
	return v
}
