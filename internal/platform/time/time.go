// Package time contains time related helpers
// Calendar values are naive wall-clock times: parsing keeps the digits the client sent
// and pins them to UTC so storage and comparison never shift them
package time

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted for naive date-times, most specific first
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// DateLayout is the wire form of a calendar date
const DateLayout = "2006-01-02"

// NaiveLayout is the wire form of a naive date-time
const NaiveLayout = "2006-01-02T15:04:05"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Wall drops the location of t and keeps its clock reading
func Wall(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseNaive parses a date-time without offset; an RFC 3339 offset is accepted and dropped
func ParseNaive(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range naiveLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Wall(t), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q, want YYYY-MM-DDTHH:MM[:SS]", s)
}

// ParseDate parses YYYY-MM-DD, tolerating a trailing time part which is discarded
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		if t, err := ParseNaive(s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// Naive is a JSON friendly naive date-time
type Naive struct{ time.Time }

// MarshalJSON writes YYYY-MM-DDTHH:MM:SS without offset
func (n Naive) MarshalJSON() ([]byte, error) {
	if n.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(n.Format(NaiveLayout))), nil
}

// UnmarshalJSON accepts any layout ParseNaive understands
func (n *Naive) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	t, err := ParseNaive(s)
	if err != nil {
		return err
	}
	n.Time = t
	return nil
}

// Date is a JSON friendly calendar date
type Date struct{ time.Time }

// MarshalJSON writes YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(DateLayout))), nil
}

// UnmarshalJSON accepts YYYY-MM-DD or a full date-time whose clock part is dropped
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Ptr returns the wrapped time or nil when zero
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	return Ptr(d.Time)
}
