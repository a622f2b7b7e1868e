// Package analytics derives the dashboard report from the order list.
// Everything here is a pure read-side projection: no caching, no state,
// recomputed on every call. Callers re-invoke after any order mutation.
package analytics

import (
	"fmt"
	"time"
)

// WindowKind selects the reporting period.
type WindowKind string

const (
	WindowToday  WindowKind = "today"
	Window7Days  WindowKind = "7d"
	Window30Days WindowKind = "30d"
	WindowAll    WindowKind = "all"
	WindowCustom WindowKind = "custom"
)

// Window is a reporting period. Start/End matter only for WindowCustom
// and are interpreted as inclusive calendar days in local time.
type Window struct {
	Kind  WindowKind
	Start time.Time
	End   time.Time
}

// ParseWindow maps the query parameter to a window kind.
func ParseWindow(kind, start, end string) (Window, error) {
	switch WindowKind(kind) {
	case WindowToday, Window7Days, Window30Days, WindowAll:
		return Window{Kind: WindowKind(kind)}, nil
	case WindowCustom:
		s, err := time.ParseInLocation("2006-01-02", start, time.Local)
		if err != nil {
			return Window{}, fmt.Errorf("parse window start: %w", err)
		}
		e, err := time.ParseInLocation("2006-01-02", end, time.Local)
		if err != nil {
			return Window{}, fmt.Errorf("parse window end: %w", err)
		}
		return Window{Kind: WindowCustom, Start: s, End: e}, nil
	case "":
		return Window{Kind: WindowAll}, nil
	default:
		return Window{}, fmt.Errorf("unknown window kind %q", kind)
	}
}

// Bounds resolves the window against the evaluation instant. The second
// return value is false for the all-time window. Custom windows span the
// full calendar days: start at 00:00:00 and end at the last nanosecond of
// the end day.
func (w Window) Bounds(now time.Time) (time.Time, time.Time, bool) {
	switch w.Kind {
	case WindowToday:
		start := startOfDay(now)
		return start, endOfDay(now), true
	case Window7Days:
		return now.AddDate(0, 0, -7), now, true
	case Window30Days:
		return now.AddDate(0, 0, -30), now, true
	case WindowCustom:
		return startOfDay(w.Start), endOfDay(w.End), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Contains reports whether a timestamp falls inside the window, both
// bounds inclusive.
func (w Window) Contains(t, now time.Time) bool {
	start, end, bounded := w.Bounds(now)
	if !bounded {
		return true
	}
	return !t.Before(start) && !t.After(end)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
