package booking

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
	"github.com/clinicdesk/clinicdesk/internal/platform/notify"
)

// Manager holds the in-flight wizard sessions. Sessions are server state
// only; nothing is persisted until a wizard confirms.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Wizard

	patients  *patient.Service
	catalog   *catalog.Service
	scheduler *scheduling.Service
	notifier  notify.Notifier
	now       func() time.Time
}

func NewManager(patients *patient.Service, cat *catalog.Service,
	scheduler *scheduling.Service, notifier notify.Notifier) *Manager {
	return &Manager{
		sessions:  make(map[uuid.UUID]*Wizard),
		patients:  patients,
		catalog:   cat,
		scheduler: scheduler,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Start opens a fresh wizard session.
func (m *Manager) Start() *Wizard {
	w := newWizard(m.patients, m.catalog, m.scheduler, m.notifier, m.now)

	m.mu.Lock()
	m.sessions[w.ID] = w
	m.mu.Unlock()
	return w
}

// Get returns the wizard for an open session.
func (m *Manager) Get(id uuid.UUID) (*Wizard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("booking session %s not found", id)
	}
	return w, nil
}

// Close discards a session. Abandoning a wizard leaves no trace beyond any
// patient it already registered.
func (m *Manager) Close(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
