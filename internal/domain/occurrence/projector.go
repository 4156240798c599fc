// Package occurrence turns date/time rules into concrete calendar instants.
// Both projections in the system — an event's single date crossed with its
// time slots, and a duty's weekday recurrence crossed with its time range —
// are expressed through one Expand primitive so the two cannot drift apart.
// Occurrences are computed on read and never persisted.
package occurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"parish/internal/domain/duty"
	"parish/internal/domain/event"
)

// Occurrence is one concrete calendar instant derived from an event or duty.
type Occurrence struct {
	SourceID    string
	Title       string
	Start       time.Time
	End         time.Time // zero when the source has no end time
	Description string
	Past        bool // display derivation, never stored
}

// Slot is a clock-time range within a day. End may be empty.
type Slot struct {
	Start string // HH:MM or HH:MM:SS
	End   string
}

// LocalDate returns the occurrence's calendar date (YYYY-MM-DD) in the
// location it was projected for. Day aggregation must compare this value,
// not the UTC date of Start, or late-evening slots shift a day.
func (o Occurrence) LocalDate(loc *time.Location) string {
	return o.Start.In(loc).Format("2006-01-02")
}

// ParseClock parses a time-of-day string in HH:MM or HH:MM:SS form. A
// trailing UTC offset marker ("Z", "+00", "+05:30", "-04:00") is ignored:
// slot strings describe wall-clock time in the parish's own zone regardless
// of how the client serialised them.
// PRE: none
// POST: returns the offset from midnight, or an error for malformed input
func ParseClock(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSuffix(trimmed, "Z")
	// The clock digits contain no '+' or '-', so anything from the first
	// sign onward is an offset marker.
	if i := strings.IndexAny(trimmed, "+-"); i != -1 {
		trimmed = trimmed[:i]
	}
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("malformed time %q", s)
		}
		nums[i] = n
	}
	hour, minute := nums[0], nums[1]
	second := 0
	if len(nums) == 3 {
		second = nums[2]
	}
	if hour > 23 || minute > 59 || second > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second, nil
}

// Expand combines every day with every slot, producing one occurrence per
// pair. Days are calendar dates interpreted in loc. Malformed slots fail
// closed: the pair is skipped, the rest of the projection continues, and the
// skip count is returned so callers can surface a load warning.
// PRE: days are zero-clock times in loc
// POST: returns len(days)*len(slots) occurrences minus skipped pairs
func Expand(sourceID, title, description string, days []time.Time, slots []Slot, loc *time.Location, now time.Time) ([]Occurrence, int) {
	var out []Occurrence
	skipped := 0
	for _, day := range days {
		y, m, d := day.In(loc).Date()
		midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
		for _, slot := range slots {
			startOfs, err := ParseClock(slot.Start)
			if err != nil {
				skipped++
				continue
			}
			occ := Occurrence{
				SourceID:    sourceID,
				Title:       title,
				Start:       midnight.Add(startOfs),
				Description: description,
			}
			if slot.End != "" {
				endOfs, err := ParseClock(slot.End)
				if err != nil {
					skipped++
					continue
				}
				occ.End = midnight.Add(endOfs)
			}
			occ.Past = isPast(occ, now)
			out = append(out, occ)
		}
	}
	return out, skipped
}

// FromEvents projects catalog events into occurrences, one per (date, time)
// pair. Events with an unparseable date are skipped entirely and counted.
// PRE: none
// POST: each event with k valid slots yields k occurrences
func FromEvents(events []event.Event, loc *time.Location, now time.Time) ([]Occurrence, int) {
	var out []Occurrence
	skipped := 0
	for _, e := range events {
		day, err := time.ParseInLocation("2006-01-02", e.Date, loc)
		if err != nil {
			skipped += len(e.Times)
			continue
		}
		slots := make([]Slot, len(e.Times))
		for i, t := range e.Times {
			slots[i] = Slot{Start: t}
		}
		occs, n := Expand(e.ID, e.Name, e.Description, []time.Time{day}, slots, loc, now)
		out = append(out, occs...)
		skipped += n
	}
	return out, skipped
}

// FromDuties projects duties into occurrences for the month containing
// monthAnchor: one occurrence per matching weekday, spanning the duty's
// start and end times.
// PRE: monthAnchor is any instant within the target month
// POST: occurrences only for days whose weekday is in the duty's recurrence set
func FromDuties(duties []duty.Duty, monthAnchor time.Time, loc *time.Location, now time.Time) ([]Occurrence, int) {
	var out []Occurrence
	skipped := 0
	for _, d := range duties {
		days := monthDays(monthAnchor, loc, d.RecursOn)
		occs, n := Expand(d.ID, d.Name, d.Description, days, []Slot{{Start: d.StartTime, End: d.EndTime}}, loc, now)
		out = append(out, occs...)
		skipped += n
	}
	return out, skipped
}

// On returns the occurrences whose local calendar date equals date.
// PRE: date is YYYY-MM-DD
// POST: string comparison on the local date, not the UTC instant's date
func On(occs []Occurrence, date string, loc *time.Location) []Occurrence {
	var out []Occurrence
	for _, o := range occs {
		if o.LocalDate(loc) == date {
			out = append(out, o)
		}
	}
	return out
}

// monthDays returns every day of monthAnchor's month (in loc) accepted by
// the predicate, at midnight local time.
func monthDays(monthAnchor time.Time, loc *time.Location, keep func(time.Weekday) bool) []time.Time {
	y, m, _ := monthAnchor.In(loc).Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	var days []time.Time
	for day := first; day.Month() == m; day = day.AddDate(0, 0, 1) {
		if keep(day.Weekday()) {
			days = append(days, day)
		}
	}
	return days
}

// isPast marks occurrences whose end (or start, if no end) is strictly
// earlier than now.
func isPast(o Occurrence, now time.Time) bool {
	ref := o.Start
	if !o.End.IsZero() {
		ref = o.End
	}
	return ref.Before(now)
}
