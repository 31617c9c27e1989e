// Package calendar implements the bounded month-grid picker used by the
// booking form: a 6x7 day grid over a visible month, navigable from the
// current month through three months ahead, with weekends and past dates
// never selectable.
package calendar

import (
	"time"
)

// WindowMonths is how far ahead of today a consultation may be booked.
// Fixed product policy, together with the weekend exclusion.
const WindowMonths = 3

// GridCells is the fixed number of day cells, a stable 6-row week layout
// for every month.
const GridCells = 42

// Direction selects which way Navigate shifts the visible month.
type Direction int

const (
	Previous Direction = iota
	Next
)

// Month identifies a calendar month.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// First returns midnight UTC on the 1st of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Add shifts the month by n, normalizing across year boundaries.
func (m Month) Add(n int) Month {
	return MonthOf(m.First().AddDate(0, n, 0))
}

// String renders e.g. "September 2026" for display headers.
func (m Month) String() string {
	return m.First().Format("January 2006")
}

// Cell is one day in the 42-cell grid. The classification flags are
// computed independently; Selectable combines them.
type Cell struct {
	Date           time.Time `json:"date"`
	Day            int       `json:"day"`
	InMonth        bool      `json:"inMonth"`
	IsToday        bool      `json:"isToday"`
	IsPast         bool      `json:"isPast"`
	IsBeyondWindow bool      `json:"isBeyondWindow"`
	IsWeekend      bool      `json:"isWeekend"`
	IsSelected     bool      `json:"isSelected"`
}

// Selectable reports whether a pick on this cell is accepted.
func (c Cell) Selectable() bool {
	return c.InMonth && !c.IsPast && !c.IsBeyondWindow && !c.IsWeekend
}

// Midnight truncates t to midnight UTC. Date comparisons throughout the
// widget are performed on midnight values.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
