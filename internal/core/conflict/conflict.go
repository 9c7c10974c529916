// Package conflict decides whether a candidate appointment collides with an owner's
// existing appointments, expanding recurring series on either side
package conflict

import (
	"sort"
	"time"

	"agenda/internal/core/recurrence"
)

// Overlaps reports whether [s1,e1) and [s2,e2) intersect
// touching intervals (e1 == s2) do not overlap
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Hit describes the first collision found
type Hit struct {
	// Candidate is the occurrence of the checked definition that collided
	Candidate recurrence.Occurrence
	// Existing is the stored occurrence it collided with
	Existing recurrence.Occurrence
}

// Date returns the calendar date of the colliding candidate occurrence
func (h Hit) Date() time.Time { return recurrence.DateOf(h.Candidate.Start) }

// Check scans existing for the first occurrence overlapping candidate
//
// Definitions of other owners and the one whose id equals excludeID are skipped.
// When expandSeries is set and candidate recurs, the whole series is expanded up to
// min(Until, Start+3 months); otherwise only [Start, End) is tested.
// Each recurring existing definition is expanded once, over the span the candidate
// occurrences cover, and searched per candidate occurrence.
func Check(candidate recurrence.Definition, existing []recurrence.Definition, excludeID string, expandSeries bool) (Hit, bool) {
	cands := []recurrence.Occurrence{{ID: candidate.ID, Start: candidate.Start, End: candidate.End}}
	if expandSeries && candidate.Recurring {
		cands = recurrence.Occurrences(candidate, recurrence.DefaultHorizon(candidate.Start))
	}
	first, last := cands[0], cands[len(cands)-1]

	var scope []series
	for _, d := range existing {
		if d.OwnerID != candidate.OwnerID {
			continue
		}
		if excludeID != "" && d.ID == excludeID {
			continue
		}
		// an occurrence starting at or before first.Start-dur ends before first starts
		from := first.Start.Add(-d.Duration())
		scope = append(scope, series{occ: recurrence.Between(d, from, last.End)})
	}

	for _, c := range cands {
		for _, sr := range scope {
			if o, ok := sr.overlapping(c); ok {
				return Hit{Candidate: c, Existing: o}, true
			}
		}
	}
	return Hit{}, false
}

// HasConflict is Check with series expansion, reduced to a bool
func HasConflict(candidate recurrence.Definition, existing []recurrence.Definition, excludeID string) bool {
	_, ok := Check(candidate, existing, excludeID, true)
	return ok
}

// series holds the occurrences of one existing definition, ascending by start
// all share one duration, so their ends ascend too
type series struct{ occ []recurrence.Occurrence }

// overlapping returns the earliest occurrence overlapping c
func (s series) overlapping(c recurrence.Occurrence) (recurrence.Occurrence, bool) {
	i := sort.Search(len(s.occ), func(i int) bool { return s.occ[i].End.After(c.Start) })
	if i < len(s.occ) && Overlaps(c.Start, c.End, s.occ[i].Start, s.occ[i].End) {
		return s.occ[i], true
	}
	return recurrence.Occurrence{}, false
}
