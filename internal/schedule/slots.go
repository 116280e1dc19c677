// Package schedule maps raw class slot times onto the institution's fixed
// timetable grid.
package schedule

import "strings"

// Slot is one timetable block: a display range and the weekdays it runs.
type Slot struct {
	Display  string `json:"display"`
	Weekdays string `json:"weekdays"`
}

const (
	displayFallback  = "Not scheduled"
	weekdaysFallback = "Schedule not set"
	defaultWeekdays  = "Mon, Wed, Fri"
)

// Slot start times arrive either bare ("09:00"), with seconds
// ("09:00:00"), or prefixed with a date ("2025-03-01 09:00:00").
var grid = map[string]Slot{
	"09:00": {Display: "09:00 - 10:30", Weekdays: "Mon, Wed, Fri"},
	"10:30": {Display: "10:30 - 12:00", Weekdays: "Tue, Thu"},
	"14:00": {Display: "14:00 - 15:30", Weekdays: "Mon, Wed"},
	"15:30": {Display: "15:30 - 17:00", Weekdays: "Tue, Thu, Fri"},
}

func timePart(raw string) string {
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[i+1:]
	}
	return raw
}

func lookup(raw string) (Slot, bool) {
	part := timePart(raw)
	if s, ok := grid[part]; ok {
		return s, true
	}
	// Seconds-qualified form.
	if s, ok := grid[strings.TrimSuffix(part, ":00")]; ok {
		return s, true
	}
	return Slot{}, false
}

// Display renders the block's time range. Times outside the grid pass
// through as-is; an empty time is reported as unscheduled.
func Display(raw string) string {
	if raw == "" {
		return displayFallback
	}
	if s, ok := lookup(raw); ok {
		return s.Display
	}
	return timePart(raw)
}

// Weekdays renders the block's day set. Times outside the grid fall back
// to the default Mon/Wed/Fri pattern; an empty time reports the schedule
// as unset.
func Weekdays(raw string) string {
	if raw == "" {
		return weekdaysFallback
	}
	if s, ok := lookup(raw); ok {
		return s.Weekdays
	}
	return defaultWeekdays
}
