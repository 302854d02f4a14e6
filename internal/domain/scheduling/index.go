package scheduling

// WeekIndex resolves schedule cells to appointments in constant time. Keys
// combine the calendar date with the slot label; start times are compared on
// their "HH:MM" prefix so stored seconds do not break the match.
type WeekIndex struct {
	byCell map[string]*Appointment
}

func indexKey(date, slot string) string {
	return date + "|" + slot
}

// NewWeekIndex builds an index over the given appointments. When two
// appointments contest the same cell, the first one in input order wins.
func NewWeekIndex(appts []*Appointment) *WeekIndex {
	idx := &WeekIndex{byCell: make(map[string]*Appointment, len(appts))}
	for _, a := range appts {
		start := a.StartTime
		if len(start) > 5 {
			start = start[:5]
		}
		key := indexKey(a.AppointmentDate, start)
		if _, taken := idx.byCell[key]; !taken {
			idx.byCell[key] = a
		}
	}
	return idx
}

// At returns the appointment occupying the given cell, or nil if the cell is
// free.
func (idx *WeekIndex) At(date, slot string) *Appointment {
	return idx.byCell[indexKey(date, slot)]
}
