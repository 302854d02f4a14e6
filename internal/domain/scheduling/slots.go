package scheduling

import "fmt"

// Working day: 08:00 through 18:00 in 30-minute steps, 21 bookable labels.
const (
	dayStartHour        = 8
	dayEndHour          = 18
	slotIntervalMinutes = 30
)

// DaySlots returns the fixed catalog of bookable time labels for one day,
// formatted as zero-padded "HH:MM", ascending.
func DaySlots() []string {
	var slots []string
	for h := dayStartHour; h <= dayEndHour; h++ {
		for m := 0; m < 60; m += slotIntervalMinutes {
			if h == dayEndHour && m > 0 {
				break
			}
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

// IsBookable reports whether label is one of the day's slot labels.
func IsBookable(label string) bool {
	for _, s := range DaySlots() {
		if s == label {
			return true
		}
	}
	return false
}

// EndTime adds a duration in minutes to a wall-clock "HH:MM" label, carrying
// across hour boundaries.
func EndTime(start string, minutes int) (string, error) {
	var h, m int
	if _, err := fmt.Sscanf(start, "%d:%d", &h, &m); err != nil {
		return "", fmt.Errorf("invalid time label %q: %w", start, err)
	}
	total := h*60 + m + minutes
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60), nil
}
