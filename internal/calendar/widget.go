package calendar

import "time"

// State is the serializable snapshot of a Widget, stored with the form
// session between requests.
type State struct {
	VisibleMonth Month      `json:"visibleMonth"`
	Selected     *time.Time `json:"selected,omitempty"`
	Today        time.Time  `json:"today"`
	MaxDate      time.Time  `json:"maxDate"`
	Open         bool       `json:"open"`
}

// Widget holds the picker state for one form session. It is not safe for
// concurrent use; the session engine serializes access.
type Widget struct {
	visible  Month
	selected *time.Time
	today    time.Time
	maxDate  time.Time
	open     bool
}

// New creates a widget anchored at today. The selectable window runs from
// today through today plus three months.
func New(today time.Time) *Widget {
	day := Midnight(today)
	return &Widget{
		visible: MonthOf(day),
		today:   day,
		maxDate: day.AddDate(0, WindowMonths, 0),
	}
}

// Restore rebuilds a widget from a stored State.
func Restore(s State) *Widget {
	w := &Widget{
		visible: s.VisibleMonth,
		today:   Midnight(s.Today),
		maxDate: Midnight(s.MaxDate),
		open:    s.Open,
	}
	if s.Selected != nil {
		sel := Midnight(*s.Selected)
		w.selected = &sel
	}
	return w
}

// State exports the widget for storage.
func (w *Widget) State() State {
	s := State{
		VisibleMonth: w.visible,
		Today:        w.today,
		MaxDate:      w.maxDate,
		Open:         w.open,
	}
	if w.selected != nil {
		sel := *w.selected
		s.Selected = &sel
	}
	return s
}

// Open shows the day grid.
func (w *Widget) Open() {
	w.open = true
}

// Close hides the day grid. The selected date is kept.
func (w *Widget) Close() {
	w.open = false
}

// IsOpen reports grid visibility.
func (w *Widget) IsOpen() bool {
	return w.open
}

// VisibleMonth returns the month the grid currently shows.
func (w *Widget) VisibleMonth() Month {
	return w.visible
}

// Selected returns the chosen date, if any.
func (w *Widget) Selected() (time.Time, bool) {
	if w.selected == nil {
		return time.Time{}, false
	}
	return *w.selected, true
}

// Navigate shifts the visible month one step in the given direction.
// It returns false, leaving the month unchanged, when the step would leave
// the navigable window: previous never precedes today's month, next never
// starts beyond the window cap.
func (w *Widget) Navigate(dir Direction) bool {
	var target Month
	switch dir {
	case Previous:
		target = w.visible.Add(-1)
		if target.First().Before(MonthOf(w.today).First()) {
			return false
		}
	case Next:
		target = w.visible.Add(1)
		if target.First().After(w.maxDate) {
			return false
		}
	default:
		return false
	}
	w.visible = target
	return true
}

// Grid computes the 42-cell day grid for the visible month, starting at the
// Sunday on or before the 1st. It is recomputed fresh on every call; no
// classification is cached between renders.
func (w *Widget) Grid() []Cell {
	first := w.visible.First()
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		date := start.AddDate(0, 0, i)
		cells = append(cells, w.classify(date))
	}
	return cells
}

func (w *Widget) classify(date time.Time) Cell {
	date = Midnight(date)
	return Cell{
		Date:           date,
		Day:            date.Day(),
		InMonth:        MonthOf(date) == w.visible,
		IsToday:        date.Equal(w.today),
		IsPast:         date.Before(w.today),
		IsBeyondWindow: date.After(w.maxDate),
		IsWeekend:      isWeekend(date),
		IsSelected:     w.selected != nil && date.Equal(*w.selected),
	}
}

// Select records a pick on date. Picks on dates that are not selectable in
// the current grid are ignored and return false; a successful pick stores
// the date and closes the grid.
func (w *Widget) Select(date time.Time) bool {
	cell := w.classify(date)
	if !cell.Selectable() {
		return false
	}
	sel := cell.Date
	w.selected = &sel
	w.Close()
	return true
}
