package recurrence

import (
	"errors"
	"sort"
	"time"
)

// ErrInvalidInterval is returned when a definition does not start strictly before it ends
var ErrInvalidInterval = errors.New("recurrence: end time must be after start time")

// Definition is the unit the expander works on: one stored appointment row
type Definition struct {
	ID        string
	OwnerID   string
	Start     time.Time
	End       time.Time
	Recurring bool
	Interval  Interval
	// Until is an inclusive date bound, only the date part is used
	Until *time.Time
}

// Occurrence is one concrete instance of a definition
// all occurrences of a series carry the definition id
type Occurrence struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Duration returns End - Start
func (d Definition) Duration() time.Duration { return d.End.Sub(d.Start) }

// Validate checks the interval ordering first, then the recurrence interval
func (d Definition) Validate() error {
	if !d.Start.Before(d.End) {
		return ErrInvalidInterval
	}
	if d.Recurring && !d.Interval.Valid() {
		return ErrUnknownInterval
	}
	return nil
}

// Step advances t by one interval
// Monthly keeps the day of month and clamps it to the last day of the target month,
// so Jan 31 steps to Feb 28 (or 29) and the series continues from there
func Step(t time.Time, iv Interval) time.Time {
	switch iv {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		y, m, d := t.Date()
		if last := daysIn(y, m+1, t.Location()); d > last {
			d = last
		}
		return time.Date(y, m+1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	default:
		return t.AddDate(0, 0, 1)
	}
}

// daysIn returns the number of days in month m of year y, m may overflow into the next year
func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

// Expand returns the ascending start times of def up to horizon
// the stop test compares calendar dates only, so an end date of 2023-10-03 keeps
// an occurrence at 2023-10-03 23:00
// the result always holds at least def.Start
func Expand(def Definition, horizon time.Time) []time.Time {
	if !def.Recurring {
		return []time.Time{def.Start}
	}

	end := horizon
	if def.Until != nil && def.Until.Before(horizon) {
		end = *def.Until
	}
	last := dateKey(end)

	out := []time.Time{def.Start}
	cur := def.Start
	for {
		cur = Step(cur, def.Interval)
		if dateKey(cur) > last {
			break
		}
		out = append(out, cur)
	}
	return out
}

// Occurrences expands def and pairs every start with its end
func Occurrences(def Definition, horizon time.Time) []Occurrence {
	starts := Expand(def, horizon)
	dur := def.Duration()
	out := make([]Occurrence, len(starts))
	for i, s := range starts {
		out[i] = Occurrence{ID: def.ID, Start: s, End: s.Add(dur)}
	}
	return out
}

// Between returns the occurrences of def starting within [from, to], both inclusive,
// under the same end date rule as Expand with horizon to.
// Stepping begins near from rather than at def.Start, so the cost follows the
// width of the range and not the age of the series
func Between(def Definition, from, to time.Time) []Occurrence {
	if !def.Recurring {
		if def.Start.Before(from) || def.Start.After(to) {
			return nil
		}
		return []Occurrence{{ID: def.ID, Start: def.Start, End: def.End}}
	}

	end := to
	if def.Until != nil && def.Until.Before(to) {
		end = *def.Until
	}
	last := dateKey(end)
	dur := def.Duration()

	var out []Occurrence
	for cur := seek(def, from); !cur.After(to); cur = Step(cur, def.Interval) {
		if !cur.Equal(def.Start) && dateKey(cur) > last {
			break
		}
		out = append(out, Occurrence{ID: def.ID, Start: cur, End: cur.Add(dur)})
	}
	return out
}

// seek returns the first start of the series at or after t
// daily and weekly series jump straight there; a monthly series jumps once its day of
// month can no longer be clamped, which takes at most a few years of single steps
func seek(def Definition, t time.Time) time.Time {
	cur := def.Start
	if !cur.Before(t) {
		return cur
	}
	switch def.Interval {
	case Daily, Weekly:
		days := 1
		if def.Interval == Weekly {
			days = 7
		}
		if n := int((t.Unix()-cur.Unix())/86400)/days - 1; n > 0 {
			cur = cur.AddDate(0, 0, n*days)
		}
	case Monthly:
		for cur.Before(t) && cur.Day() > 28 {
			cur = Step(cur, Monthly)
		}
		months := (t.Year()-cur.Year())*12 + int(t.Month()) - int(cur.Month()) - 1
		if months > 0 {
			cur = cur.AddDate(0, months, 0)
		}
	}
	for cur.Before(t) {
		cur = Step(cur, def.Interval)
	}
	return cur
}

// Window flattens every definition into the occurrences starting within [from, to]
// both bounds are inclusive; the result is sorted by start time
func Window(defs []Definition, from, to time.Time) []Occurrence {
	var out []Occurrence
	for _, d := range defs {
		out = append(out, Between(d, from, to)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// DefaultHorizon is the expansion bound used when a series has to be checked without a window
func DefaultHorizon(start time.Time) time.Time { return start.AddDate(0, 3, 0) }

// DefaultWindow is the read window used when a caller gives no range:
// one month before today through three months after
func DefaultWindow(now time.Time) (from, to time.Time) {
	today := DateOf(now)
	return today.AddDate(0, -1, 0), today.AddDate(0, 3, 0)
}

// DateOf truncates t to midnight in its own location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameOrBeforeDate reports whether a's calendar date is not after b's
func SameOrBeforeDate(a, b time.Time) bool { return dateKey(a) <= dateKey(b) }

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
