package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestToastCenter_ShowAndRecent(t *testing.T) {
	tc := NewToastCenter()

	tc.Show("Saved", "Patient created", SeveritySuccess)
	tc.Show("Error", "Could not load week", SeverityError)

	toasts := tc.Recent(0)
	if len(toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(toasts))
	}

	// Newest first
	if toasts[0].Title != "Error" {
		t.Errorf("expected newest toast first, got %s", toasts[0].Title)
	}
	if toasts[1].Severity != SeveritySuccess {
		t.Errorf("expected success severity, got %s", toasts[1].Severity)
	}
	if toasts[0].ID == "" {
		t.Error("expected toast to have an id")
	}
	if toasts[0].CreatedAt.IsZero() {
		t.Error("expected toast to have a timestamp")
	}
}

func TestToastCenter_RecentLimit(t *testing.T) {
	tc := NewToastCenter()
	for i := 0; i < 10; i++ {
		tc.Show("t", "m", SeverityInfo)
	}

	if got := len(tc.Recent(3)); got != 3 {
		t.Errorf("expected 3 toasts, got %d", got)
	}
	if got := len(tc.Recent(0)); got != 10 {
		t.Errorf("expected 10 toasts, got %d", got)
	}
}

func TestToastCenter_EvictsOldest(t *testing.T) {
	tc := NewToastCenter()
	tc.max = 3

	for _, title := range []string{"one", "two", "three", "four"} {
		tc.Show(title, "m", SeverityInfo)
	}

	toasts := tc.Recent(0)
	if len(toasts) != 3 {
		t.Fatalf("expected 3 retained toasts, got %d", len(toasts))
	}
	for _, toast := range toasts {
		if toast.Title == "one" {
			t.Error("expected oldest toast to be evicted")
		}
	}
}

func TestToastCenter_Clear(t *testing.T) {
	tc := NewToastCenter()
	tc.Show("t", "m", SeverityInfo)
	tc.Clear()

	if got := len(tc.Recent(0)); got != 0 {
		t.Errorf("expected 0 toasts after clear, got %d", got)
	}
}

func TestToastCenter_Timestamps(t *testing.T) {
	tc := NewToastCenter()
	fixed := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
	tc.now = func() time.Time { return fixed }

	tc.Show("t", "m", SeverityInfo)

	toasts := tc.Recent(1)
	if !toasts[0].CreatedAt.Equal(fixed) {
		t.Errorf("expected timestamp %v, got %v", fixed, toasts[0].CreatedAt)
	}
}

func TestLogNotifier_ForwardsToNext(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	mock := &MockNotifier{}
	n := NewLogNotifier(logger, mock)

	n.Show("Saved", "done", SeveritySuccess)

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 forwarded call, got %d", len(calls))
	}
	if calls[0].Title != "Saved" || calls[0].Severity != SeveritySuccess {
		t.Errorf("unexpected forwarded call: %+v", calls[0])
	}
}

func TestLogNotifier_NilNext(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	n := NewLogNotifier(logger, nil)

	// Must not panic
	n.Show("Error", "boom", SeverityError)
}

func TestHandler_List(t *testing.T) {
	center := NewToastCenter()
	center.Show("Saved", "Patient created", SeveritySuccess)
	h := NewHandler(center)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/toasts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.HandleList(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var toasts []Toast
	if err := json.Unmarshal(rec.Body.Bytes(), &toasts); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(toasts) != 1 {
		t.Fatalf("expected 1 toast, got %d", len(toasts))
	}
	if toasts[0].Message != "Patient created" {
		t.Errorf("unexpected message: %s", toasts[0].Message)
	}
}

func TestHandler_Clear(t *testing.T) {
	center := NewToastCenter()
	center.Show("t", "m", SeverityInfo)
	h := NewHandler(center)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/toasts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.HandleClear(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if got := len(center.Recent(0)); got != 0 {
		t.Errorf("expected 0 toasts, got %d", got)
	}
}
