// Package notify provides the user-facing notification channel for the front
// desk: services report outcomes through a Notifier, and a ToastCenter retains
// recent messages in memory and serves them over HTTP.
package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Severity classifies a toast message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier is the collaborator services use to surface outcomes to the user.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Show(title, message string, severity Severity)
}

// Toast is a single retained notification.
type Toast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// defaultRetention caps how many toasts the center keeps.
const defaultRetention = 100

// ToastCenter retains the most recent toasts in memory, newest first.
type ToastCenter struct {
	mu     sync.RWMutex
	toasts []Toast
	max    int
	now    func() time.Time
}

func NewToastCenter() *ToastCenter {
	return &ToastCenter{
		max: defaultRetention,
		now: time.Now,
	}
}

// Show records a toast, evicting the oldest once the retention cap is reached.
func (tc *ToastCenter) Show(title, message string, severity Severity) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	t := Toast{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: tc.now().UTC(),
	}
	tc.toasts = append([]Toast{t}, tc.toasts...)
	if len(tc.toasts) > tc.max {
		tc.toasts = tc.toasts[:tc.max]
	}
}

// Recent returns up to limit toasts, newest first. A non-positive limit
// returns all retained toasts.
func (tc *ToastCenter) Recent(limit int) []Toast {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	n := len(tc.toasts)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Toast, n)
	copy(out, tc.toasts[:n])
	return out
}

// Clear discards all retained toasts.
func (tc *ToastCenter) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.toasts = nil
}

// LogNotifier mirrors every toast into the structured log and forwards it to
// an optional next Notifier.
type LogNotifier struct {
	logger zerolog.Logger
	next   Notifier
}

func NewLogNotifier(logger zerolog.Logger, next Notifier) *LogNotifier {
	return &LogNotifier{logger: logger, next: next}
}

func (l *LogNotifier) Show(title, message string, severity Severity) {
	evt := l.logger.Info()
	if severity == SeverityError {
		evt = l.logger.Error()
	}
	evt.
		Str("title", title).
		Str("severity", string(severity)).
		Msg(message)

	if l.next != nil {
		l.next.Show(title, message, severity)
	}
}

// ShowCall records a single call to Show on the mock.
type ShowCall struct {
	Title    string
	Message  string
	Severity Severity
}

// MockNotifier is a test double for Notifier.
type MockNotifier struct {
	mu    sync.Mutex
	calls []ShowCall
}

func (m *MockNotifier) Show(title, message string, severity Severity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, ShowCall{Title: title, Message: message, Severity: severity})
}

// Calls returns a copy of recorded calls.
func (m *MockNotifier) Calls() []ShowCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ShowCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Handler exposes the toast feed over HTTP via Echo.
type Handler struct {
	center *ToastCenter
}

func NewHandler(center *ToastCenter) *Handler {
	return &Handler{center: center}
}

// RegisterRoutes registers toast routes on the given Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/toasts", h.HandleList)
	g.DELETE("/toasts", h.HandleClear)
}

// HandleList handles GET /toasts?limit=...
func (h *Handler) HandleList(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}
	return c.JSON(http.StatusOK, h.center.Recent(limit))
}

// HandleClear handles DELETE /toasts.
func (h *Handler) HandleClear(c echo.Context) error {
	h.center.Clear()
	return c.NoContent(http.StatusNoContent)
}
