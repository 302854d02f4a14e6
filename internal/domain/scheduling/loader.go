package scheduling

import (
	"context"
	"sync"
)

// WeekLoader serializes concurrent week fetches. Each load takes a
// monotonically increasing sequence number; a response that arrives after a
// newer request has started is discarded, so rapid paging can never leave the
// grid showing a stale week.
type WeekLoader struct {
	svc *Service

	mu      sync.Mutex
	seq     uint64
	applied uint64
	view    *WeekScheduleView
}

func NewWeekLoader(svc *Service) *WeekLoader {
	return &WeekLoader{svc: svc}
}

// Load fetches the week for anchor. The returned bool reports whether this
// response was applied; false means a newer request superseded it and the
// caller got the most recently applied view instead.
func (l *WeekLoader) Load(ctx context.Context, anchor string) (*WeekScheduleView, bool, error) {
	l.mu.Lock()
	l.seq++
	mine := l.seq
	l.mu.Unlock()

	view, err := l.svc.WeekSchedule(ctx, anchor)

	l.mu.Lock()
	defer l.mu.Unlock()

	if mine < l.seq || mine <= l.applied {
		// Superseded while in flight.
		return l.view, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	l.applied = mine
	l.view = view
	return view, true, nil
}

// Current returns the most recently applied view, or nil before the first
// successful load.
func (l *WeekLoader) Current() *WeekScheduleView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view
}
