package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
	"github.com/clinicdesk/clinicdesk/internal/platform/notify"
)

// Step is a stage of the booking wizard.
type Step int

const (
	StepPatient Step = iota
	StepService
	StepStaff
	StepDateTime
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepPatient:
		return "patient"
	case StepService:
		return "service"
	case StepStaff:
		return "staff"
	case StepDateTime:
		return "datetime"
	case StepConfirm:
		return "confirm"
	}
	return "unknown"
}

// Wizard walks one receptionist through booking one visit. All state lives
// here until Confirm; the only writes before that point are new-patient
// registrations, which must succeed before the wizard advances.
type Wizard struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	step      Step
	patient   *patient.Patient
	service   *catalog.ClinicService
	staff     *catalog.Staff
	date      string
	startTime string
	endTime   string
	notes     string
	week      *scheduling.WeekWindow

	patients  *patient.Service
	catalog   *catalog.Service
	scheduler *scheduling.Service
	notifier  notify.Notifier
}

func newWizard(patients *patient.Service, cat *catalog.Service,
	scheduler *scheduling.Service, notifier notify.Notifier,
	now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	return &Wizard{
		ID:        uuid.New(),
		CreatedAt: now(),
		step:      StepPatient,
		week:      scheduling.NewWeekWindow(now),
		patients:  patients,
		catalog:   cat,
		scheduler: scheduler,
		notifier:  notifier,
	}
}

// Step returns the wizard's current stage.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SelectExistingPatient attaches an already registered patient and advances.
// No write happens.
func (w *Wizard) SelectExistingPatient(ctx context.Context, id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepPatient {
		return fmt.Errorf("cannot select patient at step %s", w.step)
	}
	p, err := w.patients.GetPatient(ctx, id)
	if err != nil {
		return fmt.Errorf("patient %s: %w", id, err)
	}
	w.patient = p
	w.step = StepService
	return nil
}

// SubmitNewPatient registers a patient and advances only once the write has
// succeeded. On failure the wizard stays at the patient step and the error is
// surfaced as a toast.
func (w *Wizard) SubmitNewPatient(ctx context.Context, p *patient.Patient) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepPatient {
		return fmt.Errorf("cannot submit patient at step %s", w.step)
	}
	if err := w.patients.CreatePatient(ctx, p); err != nil {
		w.notifier.Show("Error", "Could not save the new patient.", notify.SeverityError)
		return fmt.Errorf("create patient: %w", err)
	}
	w.notifier.Show("Saved", "Patient registered.", notify.SeveritySuccess)
	w.patient = p
	w.step = StepService
	return nil
}

// SelectService attaches a service and advances.
func (w *Wizard) SelectService(ctx context.Context, id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepService {
		return fmt.Errorf("cannot select service at step %s", w.step)
	}
	svc, err := w.catalog.GetClinicService(ctx, id)
	if err != nil {
		return fmt.Errorf("service %s: %w", id, err)
	}
	w.service = svc
	w.step = StepStaff
	return nil
}

// SelectStaff attaches a staff member and advances. Inactive staff cannot be
// booked.
func (w *Wizard) SelectStaff(ctx context.Context, id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepStaff {
		return fmt.Errorf("cannot select staff at step %s", w.step)
	}
	st, err := w.catalog.GetStaff(ctx, id)
	if err != nil {
		return fmt.Errorf("staff %s: %w", id, err)
	}
	if !st.Active {
		return fmt.Errorf("staff %s is not active", id)
	}
	w.staff = st
	w.step = StepDateTime
	return nil
}

// AdvanceWeek pages the wizard's week view without touching any committed
// selection.
func (w *Wizard) AdvanceWeek(dir scheduling.Direction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.week.Advance(dir)
}

// ResetWeek re-anchors the week view to today.
func (w *Wizard) ResetWeek() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.week.ResetToToday()
}

// WeekDates returns the five business days currently shown by the wizard's
// week view.
func (w *Wizard) WeekDates() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.week.Dates()
}

// SelectDateTime commits a date and start slot. A service must already be
// selected because the end time derives from its duration.
func (w *Wizard) SelectDateTime(date, slot string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepDateTime {
		return fmt.Errorf("cannot select date at step %s", w.step)
	}
	if w.service == nil {
		return fmt.Errorf("no service selected")
	}
	if _, err := time.Parse(scheduling.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q", date)
	}
	if !scheduling.IsBookable(slot) {
		return fmt.Errorf("slot %q is not bookable", slot)
	}
	end, err := scheduling.EndTime(slot, w.service.DurationMinutes)
	if err != nil {
		return err
	}
	w.date = date
	w.startTime = slot
	w.endTime = end
	w.step = StepConfirm
	return nil
}

// Confirm books the appointment with a single create. On failure the wizard
// stays at the confirm step with the notes preserved.
func (w *Wizard) Confirm(ctx context.Context, notes string) (*scheduling.Appointment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepConfirm {
		return nil, fmt.Errorf("cannot confirm at step %s", w.step)
	}
	w.notes = notes

	in := scheduling.CreateAppointmentInput{
		PatientID: w.patient.ID,
		ServiceID: w.service.ID,
		StaffID:   w.staff.ID,
		Date:      w.date,
		StartTime: w.startTime,
	}
	if notes != "" {
		in.Notes = &notes
	}

	a, err := w.scheduler.CreateAppointment(ctx, in)
	if err != nil {
		w.notifier.Show("Error", "Could not book the appointment.", notify.SeverityError)
		return nil, fmt.Errorf("confirm booking: %w", err)
	}
	w.notifier.Show("Booked", "Appointment confirmed.", notify.SeveritySuccess)
	return a, nil
}

// Edit jumps back to an earlier step. Later selections stay committed so the
// receptionist can change one thing without redoing the rest.
func (w *Wizard) Edit(target Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if target < StepPatient || target > StepConfirm {
		return fmt.Errorf("unknown step %d", target)
	}
	if target >= w.step {
		return fmt.Errorf("can only edit earlier steps")
	}
	w.step = target
	return nil
}

// State is the wizard rendered for the API.
type State struct {
	ID        uuid.UUID              `json:"id"`
	Step      string                 `json:"step"`
	Patient   *patient.Patient       `json:"patient,omitempty"`
	Service   *catalog.ClinicService `json:"service,omitempty"`
	Staff     *catalog.Staff         `json:"staff,omitempty"`
	Date      string                 `json:"date,omitempty"`
	StartTime string                 `json:"start_time,omitempty"`
	EndTime   string                 `json:"end_time,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
	WeekDates []string               `json:"week_dates"`
}

// Snapshot renders the wizard's current state.
func (w *Wizard) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	return State{
		ID:        w.ID,
		Step:      w.step.String(),
		Patient:   w.patient,
		Service:   w.service,
		Staff:     w.staff,
		Date:      w.date,
		StartTime: w.startTime,
		EndTime:   w.endTime,
		Notes:     w.notes,
		WeekDates: w.week.Dates(),
	}
}
