package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, so today itself is selectable.
var wednesday = time.Date(2026, time.September, 2, 14, 30, 0, 0, time.UTC)

func TestGridAlways42CellsAcrossWindow(t *testing.T) {
	w := New(wednesday)

	for {
		grid := w.Grid()
		require.Len(t, grid, GridCells, "month %s", w.VisibleMonth())
		for _, idx := range []int{0, 7, 14, 21, 28, 35} {
			assert.Equal(t, time.Sunday, grid[idx].Date.Weekday(),
				"cell %d of %s should start a week", idx, w.VisibleMonth())
		}
		// Consecutive days with no gaps.
		for i := 1; i < len(grid); i++ {
			assert.Equal(t, grid[i-1].Date.AddDate(0, 0, 1), grid[i].Date)
		}
		if !w.Navigate(Next) {
			break
		}
	}
}

func TestGridStartsOnSundayBeforeFirst(t *testing.T) {
	w := New(wednesday)
	grid := w.Grid()

	// September 1 2026 is a Tuesday; the grid opens on Sunday August 30.
	assert.Equal(t, time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC), grid[0].Date)
	assert.False(t, grid[0].InMonth)
	assert.True(t, grid[2].InMonth)
	assert.Equal(t, 1, grid[2].Day)
}

func TestCellClassifications(t *testing.T) {
	w := New(wednesday)
	grid := w.Grid()

	byDate := func(y int, m time.Month, d int) Cell {
		want := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		for _, c := range grid {
			if c.Date.Equal(want) {
				return c
			}
		}
		t.Fatalf("date %v not in grid", want)
		return Cell{}
	}

	today := byDate(2026, time.September, 2)
	assert.True(t, today.IsToday)
	assert.False(t, today.IsPast)
	assert.True(t, today.Selectable())

	yesterday := byDate(2026, time.September, 1)
	assert.True(t, yesterday.IsPast)
	assert.False(t, yesterday.Selectable())

	saturday := byDate(2026, time.September, 5)
	assert.True(t, saturday.IsWeekend)
	assert.False(t, saturday.Selectable())

	outside := byDate(2026, time.August, 31)
	assert.False(t, outside.InMonth)
	assert.False(t, outside.Selectable())
}

func TestSelectabilityProperty(t *testing.T) {
	w := New(wednesday)
	today := Midnight(wednesday)
	maxDate := today.AddDate(0, WindowMonths, 0)

	for {
		for _, c := range w.Grid() {
			inWindow := !c.Date.Before(today) && !c.Date.After(maxDate)
			want := c.InMonth && inWindow && !isWeekend(c.Date)
			assert.Equal(t, want, c.Selectable(), "date %v in %s", c.Date, w.VisibleMonth())
		}
		if !w.Navigate(Next) {
			break
		}
	}
}

func TestNavigatePreviousClampsAtCurrentMonth(t *testing.T) {
	w := New(wednesday)

	assert.False(t, w.Navigate(Previous))
	assert.Equal(t, Month{2026, time.September}, w.VisibleMonth())

	require.True(t, w.Navigate(Next))
	require.True(t, w.Navigate(Previous))
	assert.Equal(t, Month{2026, time.September}, w.VisibleMonth())
}

func TestNavigateNextClampsAtWindowEdge(t *testing.T) {
	w := New(wednesday)

	// September -> October -> November -> December. The cap is December 2,
	// so January 2027 (first day beyond the cap) is rejected.
	for _, want := range []Month{
		{2026, time.October},
		{2026, time.November},
		{2026, time.December},
	} {
		require.True(t, w.Navigate(Next))
		assert.Equal(t, want, w.VisibleMonth())
	}
	assert.False(t, w.Navigate(Next))
	assert.Equal(t, Month{2026, time.December}, w.VisibleMonth())
}

func TestSelectAcceptsOnlySelectableDates(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		ok   bool
	}{
		{"weekday in window", time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC), true},
		{"today", time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC), true},
		{"saturday", time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC), false},
		{"past date", time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), false},
		{"outside visible month", time.Date(2026, time.October, 6, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(wednesday)
			w.Open()
			got := w.Select(tt.date)
			assert.Equal(t, tt.ok, got)
			sel, has := w.Selected()
			if tt.ok {
				require.True(t, has)
				assert.Equal(t, Midnight(tt.date), sel)
				assert.False(t, w.IsOpen(), "successful pick closes the grid")
			} else {
				assert.False(t, has, "rejected pick must not set a date")
				assert.True(t, w.IsOpen(), "rejected pick leaves the grid open")
			}
		})
	}
}

func TestSelectDisabledCellLeavesSelectionUnchanged(t *testing.T) {
	w := New(wednesday)
	tuesday := time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC)
	require.True(t, w.Select(tuesday))

	assert.False(t, w.Select(time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)))
	sel, has := w.Selected()
	require.True(t, has)
	assert.Equal(t, tuesday, sel)
}

func TestSelectBeyondWindowRejected(t *testing.T) {
	w := New(wednesday)
	for w.Navigate(Next) {
	}
	// Visible month is December; December 3 is past the December 2 cap.
	assert.False(t, w.Select(time.Date(2026, time.December, 3, 0, 0, 0, 0, time.UTC)))
	// December 1 is a Tuesday inside the cap.
	assert.True(t, w.Select(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCloseKeepsSelection(t *testing.T) {
	w := New(wednesday)
	require.True(t, w.Select(time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC)))
	w.Open()
	w.Close()
	_, has := w.Selected()
	assert.True(t, has)
}

func TestStateRoundTrip(t *testing.T) {
	w := New(wednesday)
	require.True(t, w.Navigate(Next))
	w.Open()

	data, err := json.Marshal(w.State())
	require.NoError(t, err)

	var state State
	require.NoError(t, json.Unmarshal(data, &state))
	restored := Restore(state)

	assert.Equal(t, w.VisibleMonth(), restored.VisibleMonth())
	assert.True(t, restored.IsOpen())
	assert.Equal(t, w.Grid(), restored.Grid())
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "September 2026", Month{2026, time.September}.String())
}
