// Package ical renders projected occurrences as an iCalendar feed so
// parishioners can subscribe from their own calendar apps.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"parish/internal/domain/occurrence"
)

// defaultSlotLength pads occurrences that have no end time; calendar apps
// render zero-length events poorly.
const defaultSlotLength = time.Hour

// Feed builds a VCALENDAR document from occurrences.
// PRE: none
// POST: one VEVENT per occurrence, serialised as an ICS string
func Feed(name string, occs []occurrence.Occurrence, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//parish//calendar//EN")
	cal.SetName(name)

	for _, o := range occs {
		ev := cal.AddEvent(eventUID(o))
		ev.SetDtStampTime(now)
		ev.SetStartAt(o.Start)
		end := o.End
		if end.IsZero() {
			end = o.Start.Add(defaultSlotLength)
		}
		ev.SetEndAt(end)
		ev.SetSummary(o.Title)
		if o.Description != "" {
			ev.SetDescription(o.Description)
		}
	}
	return cal.Serialize()
}

// eventUID derives a stable per-occurrence UID so resubscribing clients see
// updates instead of duplicates.
func eventUID(o occurrence.Occurrence) string {
	return fmt.Sprintf("%s-%d@parish", o.SourceID, o.Start.Unix())
}
