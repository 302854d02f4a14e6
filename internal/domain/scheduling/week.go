package scheduling

import "time"

// DateLayout is the calendar-date format used throughout the schedule.
const DateLayout = "2006-01-02"

// businessDays is the number of columns on the schedule grid, Monday through
// Friday.
const businessDays = 5

// Direction pages the week window.
type Direction int

const (
	DirPrevious Direction = -1
	DirNext     Direction = 1
)

// WeekWindow tracks the currently viewed week. The week always starts on
// Monday; paging moves in whole weeks with no bounds.
type WeekWindow struct {
	anchor time.Time
	now    func() time.Time
}

// NewWeekWindow returns a window anchored at the clock's current day. A nil
// clock defaults to time.Now.
func NewWeekWindow(now func() time.Time) *WeekWindow {
	if now == nil {
		now = time.Now
	}
	return &WeekWindow{anchor: now(), now: now}
}

// NewWeekWindowAt returns a window anchored at the given date.
func NewWeekWindowAt(anchor time.Time, now func() time.Time) *WeekWindow {
	if now == nil {
		now = time.Now
	}
	return &WeekWindow{anchor: anchor, now: now}
}

// mondayOf truncates t to midnight on the Monday of its ISO week.
func mondayOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset)
}

// Start returns the Monday of the viewed week.
func (w *WeekWindow) Start() time.Time {
	return mondayOf(w.anchor)
}

// End returns the Friday of the viewed week.
func (w *WeekWindow) End() time.Time {
	return w.Start().AddDate(0, 0, businessDays-1)
}

// Dates returns the five business days of the viewed week as "YYYY-MM-DD"
// strings, ascending.
func (w *WeekWindow) Dates() []string {
	start := w.Start()
	dates := make([]string, businessDays)
	for i := 0; i < businessDays; i++ {
		dates[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}

// Advance pages the window one week backward or forward.
func (w *WeekWindow) Advance(dir Direction) {
	w.anchor = w.anchor.AddDate(0, 0, int(dir)*7)
}

// ResetToToday re-anchors the window at the clock's current day.
func (w *WeekWindow) ResetToToday() {
	w.anchor = w.now()
}
