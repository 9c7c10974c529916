// Package ics renders appointment definitions as an iCalendar (RFC 5545) document
//
// Times are floating: DTSTART and DTEND carry no TZID and no Z suffix, matching the
// naive wall-clock model of the calendar. Daily, weekly and monthly series starting
// on day 1-28 map one to one onto an RRULE. Monthly series starting later in the
// month are clamped to shorter months (Jan 31 -> Feb 28 -> Mar 28), which has no
// RRULE form, so those are written as one VEVENT per occurrence up to the horizon.
package ics

import (
	"fmt"
	"strings"
	"time"

	"agenda/internal/core/recurrence"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

// ProdID identifies the generator in exported calendars
const ProdID = "-//agenda//appointments//EN"

const floating = "20060102T150405"

// Calendar describes the exported document
type Calendar struct {
	Name string
	// Horizon bounds discrete expansion of series without an RRULE form
	Horizon time.Time
	// Stamp is written as DTSTAMP on every event
	Stamp time.Time
}

// Series is one definition plus the text shown in calendar clients
type Series struct {
	Def         recurrence.Definition
	Title       string
	Description string
	Location    string
	Category    string
}

// Build renders items into a VCALENDAR
func Build(c Calendar, items []Series) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProdID)
	if c.Name != "" {
		cal.SetXWRCalName(c.Name)
	}
	stamp := c.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	for _, it := range items {
		d := it.Def
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("ics: %s: %w", d.ID, err)
		}
		if !d.Recurring {
			addEvent(cal, d.ID, d.Start, d.End, it, stamp)
			continue
		}
		rule, ok := RRule(d)
		if ok {
			ev := addEvent(cal, d.ID, d.Start, d.End, it, stamp)
			ev.AddProperty(ical.ComponentPropertyRrule, rule)
			continue
		}
		horizon := c.Horizon
		if horizon.IsZero() {
			horizon = recurrence.DefaultHorizon(d.Start)
		}
		for _, o := range recurrence.Occurrences(d, horizon) {
			uid := d.ID + "-" + o.Start.Format("20060102")
			addEvent(cal, uid, o.Start, o.End, it, stamp)
		}
	}
	return []byte(cal.Serialize()), nil
}

// RRule returns the RRULE value for d when its stepping has an exact RRULE form
func RRule(d recurrence.Definition) (string, bool) {
	if !d.Recurring {
		return "", false
	}
	opt := rrule.ROption{Dtstart: d.Start}
	switch d.Interval {
	case recurrence.Daily:
		opt.Freq = rrule.DAILY
	case recurrence.Weekly:
		opt.Freq = rrule.WEEKLY
	case recurrence.Monthly:
		if d.Start.Day() > 28 {
			return "", false
		}
		opt.Freq = rrule.MONTHLY
	default:
		return "", false
	}
	var until string
	if d.Until != nil {
		// last second of the inclusive end date
		u := recurrence.DateOf(*d.Until).Add(24*time.Hour - time.Second)
		opt.Until = u
		until = u.UTC().Format(floating)
	}
	s := opt.RRuleString()
	if until != "" {
		// a floating DTSTART needs a floating UNTIL
		s = strings.Replace(s, "UNTIL="+until+"Z", "UNTIL="+until, 1)
	}
	return s, true
}

func addEvent(cal *ical.Calendar, uid string, start, end time.Time, it Series, stamp time.Time) *ical.VEvent {
	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(stamp)
	ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(floating))
	ev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floating))
	ev.SetSummary(it.Title)
	if it.Description != "" {
		ev.SetDescription(it.Description)
	}
	if it.Location != "" {
		ev.SetLocation(it.Location)
	}
	if it.Category != "" {
		ev.AddProperty(ical.ComponentPropertyCategories, strings.ToUpper(it.Category))
	}
	return ev
}
