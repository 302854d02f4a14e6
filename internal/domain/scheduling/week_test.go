package scheduling

import (
	"testing"
	"time"
)

func fixedClock(date string) func() time.Time {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestWeekWindow_StartIsMonday(t *testing.T) {
	cases := []struct {
		anchor string
		want   string
	}{
		{"2024-06-10", "2024-06-10"}, // Monday
		{"2024-06-12", "2024-06-10"}, // Wednesday
		{"2024-06-14", "2024-06-10"}, // Friday
		{"2024-06-15", "2024-06-10"}, // Saturday
		{"2024-06-16", "2024-06-10"}, // Sunday stays in the preceding week
		{"2024-06-17", "2024-06-17"}, // next Monday
	}
	for _, tc := range cases {
		w := NewWeekWindow(fixedClock(tc.anchor))
		if got := w.Start().Format(DateLayout); got != tc.want {
			t.Errorf("anchor %s: expected start %s, got %s", tc.anchor, tc.want, got)
		}
		if w.Start().Weekday() != time.Monday {
			t.Errorf("anchor %s: start is %s, not Monday", tc.anchor, w.Start().Weekday())
		}
	}
}

func TestWeekWindow_Dates(t *testing.T) {
	w := NewWeekWindow(fixedClock("2024-06-12"))

	dates := w.Dates()
	want := []string{"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13", "2024-06-14"}
	if len(dates) != 5 {
		t.Fatalf("expected 5 dates, got %d", len(dates))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d]: expected %s, got %s", i, want[i], dates[i])
		}
	}
	if got := w.End().Format(DateLayout); got != "2024-06-14" {
		t.Errorf("expected end 2024-06-14, got %s", got)
	}
}

func TestWeekWindow_Advance(t *testing.T) {
	w := NewWeekWindow(fixedClock("2024-06-12"))

	w.Advance(DirNext)
	if got := w.Start().Format(DateLayout); got != "2024-06-17" {
		t.Errorf("after next: expected 2024-06-17, got %s", got)
	}

	w.Advance(DirPrevious)
	if got := w.Start().Format(DateLayout); got != "2024-06-10" {
		t.Errorf("after previous: expected round-trip to 2024-06-10, got %s", got)
	}

	w.Advance(DirPrevious)
	if got := w.Start().Format(DateLayout); got != "2024-06-03" {
		t.Errorf("after previous: expected 2024-06-03, got %s", got)
	}
}

func TestWeekWindow_AdvanceAcrossYearBoundary(t *testing.T) {
	w := NewWeekWindow(fixedClock("2024-12-30"))

	w.Advance(DirNext)
	if got := w.Start().Format(DateLayout); got != "2025-01-06" {
		t.Errorf("expected 2025-01-06, got %s", got)
	}
}

func TestWeekWindow_ResetToToday(t *testing.T) {
	w := NewWeekWindow(fixedClock("2024-06-12"))

	w.Advance(DirNext)
	w.Advance(DirNext)
	w.ResetToToday()

	if got := w.Start().Format(DateLayout); got != "2024-06-10" {
		t.Errorf("expected reset to 2024-06-10, got %s", got)
	}
}

func TestNewWeekWindowAt(t *testing.T) {
	anchor, _ := time.Parse(DateLayout, "2024-03-07") // Thursday
	w := NewWeekWindowAt(anchor, fixedClock("2024-06-12"))

	if got := w.Start().Format(DateLayout); got != "2024-03-04" {
		t.Errorf("expected 2024-03-04, got %s", got)
	}

	// Reset uses the clock, not the anchor
	w.ResetToToday()
	if got := w.Start().Format(DateLayout); got != "2024-06-10" {
		t.Errorf("expected 2024-06-10 after reset, got %s", got)
	}
}
