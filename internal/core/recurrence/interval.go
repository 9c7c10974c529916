// Package recurrence expands recurring appointment definitions into concrete occurrences.
// Times are naive wall-clock values; the location carried by a time.Time is preserved but
// never converted.
package recurrence

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Interval is the fixed step between two occurrences of a series
type Interval uint8

const (
	// Daily advances one calendar day
	Daily Interval = iota
	// Weekly advances seven calendar days
	Weekly
	// Monthly advances one calendar month, clamping the day of month
	Monthly
)

// ErrUnknownInterval is returned for interval values outside the closed set
var ErrUnknownInterval = errors.New("recurrence: unknown interval")

var intervalNames = [...]string{Daily: "daily", Weekly: "weekly", Monthly: "monthly"}

// Valid reports whether iv is one of Daily, Weekly, Monthly
func (iv Interval) Valid() bool { return int(iv) < len(intervalNames) }

func (iv Interval) String() string {
	if !iv.Valid() {
		return "interval(" + strconv.Itoa(int(iv)) + ")"
	}
	return intervalNames[iv]
}

// ParseInterval accepts a name (any case) or the legacy numeric form 0, 1, 2
func ParseInterval(s string) (Interval, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range intervalNames {
		if s == n || s == strconv.Itoa(i) {
			return Interval(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
}

// MarshalText implements encoding.TextMarshaler
func (iv Interval) MarshalText() ([]byte, error) {
	if !iv.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInterval, iv)
	}
	return []byte(intervalNames[iv]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (iv *Interval) UnmarshalText(b []byte) error {
	v, err := ParseInterval(string(b))
	if err != nil {
		return err
	}
	*iv = v
	return nil
}

// UnmarshalJSON accepts both "weekly" and 1
func (iv *Interval) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) >= 2 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		return iv.UnmarshalText([]byte(s))
	}
	return iv.UnmarshalText(b)
}
