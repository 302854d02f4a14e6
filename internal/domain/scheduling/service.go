package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/platform/notify"
)

const (
	unknownPatient = "Unknown patient"
	unknownService = "Unknown service"
)

type Service struct {
	appointments AppointmentRepository
	patients     patient.Repository
	services     catalog.ServiceRepository
	staff        catalog.StaffRepository
	notifier     notify.Notifier
	now          func() time.Time
}

func NewService(appts AppointmentRepository, patients patient.Repository,
	services catalog.ServiceRepository, staff catalog.StaffRepository,
	notifier notify.Notifier) *Service {
	return &Service{
		appointments: appts,
		patients:     patients,
		services:     services,
		staff:        staff,
		notifier:     notifier,
		now:          time.Now,
	}
}

// CreateAppointmentInput carries everything needed to book one visit. The end
// time is derived from the service duration, never supplied by the caller.
type CreateAppointmentInput struct {
	PatientID uuid.UUID `json:"patient_id"`
	ServiceID uuid.UUID `json:"service_id"`
	StaffID   uuid.UUID `json:"staff_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	Notes     *string   `json:"notes,omitempty"`
	Status    string    `json:"status,omitempty"`
}

// CreateAppointment validates the references and the slot, computes the end
// time from the service duration, and stores the appointment. Overlapping
// bookings are allowed; the front desk resolves conflicts by eye.
func (s *Service) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*Appointment, error) {
	if in.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("service_id is required")
	}
	if in.StaffID == uuid.Nil {
		return nil, fmt.Errorf("staff_id is required")
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q", in.Date)
	}
	if !IsBookable(in.StartTime) {
		return nil, fmt.Errorf("start_time %q is not a bookable slot", in.StartTime)
	}

	if _, err := s.patients.GetByID(ctx, in.PatientID); err != nil {
		return nil, fmt.Errorf("patient %s: %w", in.PatientID, err)
	}
	svc, err := s.services.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", in.ServiceID, err)
	}
	if _, err := s.staff.GetByID(ctx, in.StaffID); err != nil {
		return nil, fmt.Errorf("staff %s: %w", in.StaffID, err)
	}

	end, err := EndTime(in.StartTime, svc.DurationMinutes)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusConfirmed
	}
	if !validAppointmentStatuses[status] {
		return nil, fmt.Errorf("invalid appointment status: %s", status)
	}

	a := &Appointment{
		PatientID:       in.PatientID,
		ServiceID:       in.ServiceID,
		StaffID:         in.StaffID,
		AppointmentDate: in.Date,
		StartTime:       in.StartTime,
		EndTime:         end,
		Status:          status,
		Notes:           in.Notes,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = NormalizeStatus(a.Status)
	return a, nil
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	items, total, err := s.appointments.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, a := range items {
		a.Status = NormalizeStatus(a.Status)
	}
	return items, total, nil
}

// -- Week schedule presentation --

// CellAppointment is an appointment rendered for one grid cell.
type CellAppointment struct {
	ID          uuid.UUID `json:"id"`
	PatientName string    `json:"patient_name"`
	ServiceName string    `json:"service_name"`
	StaffName   string    `json:"staff_name,omitempty"`
	Status      string    `json:"status"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Notes       *string   `json:"notes,omitempty"`
}

// ScheduleCell is one slot on one day: either an appointment or a booking
// affordance.
type ScheduleCell struct {
	Slot        string           `json:"slot"`
	Appointment *CellAppointment `json:"appointment,omitempty"`
	Bookable    bool             `json:"bookable"`
}

// DayColumn is one business day of the grid.
type DayColumn struct {
	Date  string         `json:"date"`
	Cells []ScheduleCell `json:"cells"`
}

// WeekScheduleView is the full grid for one week: rows are slots, columns are
// the five business days.
type WeekScheduleView struct {
	WeekStart string      `json:"week_start"`
	WeekEnd   string      `json:"week_end"`
	Slots     []string    `json:"slots"`
	Days      []DayColumn `json:"days"`
}

// emptyWeekView renders the grid with every cell free.
func emptyWeekView(w *WeekWindow) *WeekScheduleView {
	return buildWeekView(w, nil, nil, nil, nil)
}

func buildWeekView(w *WeekWindow, appts []*Appointment,
	patients map[uuid.UUID]*patient.Patient,
	services map[uuid.UUID]*catalog.ClinicService,
	staff map[uuid.UUID]*catalog.Staff) *WeekScheduleView {

	idx := NewWeekIndex(appts)
	slots := DaySlots()
	dates := w.Dates()

	days := make([]DayColumn, 0, len(dates))
	for _, date := range dates {
		cells := make([]ScheduleCell, 0, len(slots))
		for _, slot := range slots {
			cell := ScheduleCell{Slot: slot, Bookable: true}
			if a := idx.At(date, slot); a != nil {
				cell.Bookable = false
				cell.Appointment = renderCell(a, patients, services, staff)
			}
			cells = append(cells, cell)
		}
		days = append(days, DayColumn{Date: date, Cells: cells})
	}

	return &WeekScheduleView{
		WeekStart: w.Start().Format(DateLayout),
		WeekEnd:   w.End().Format(DateLayout),
		Slots:     slots,
		Days:      days,
	}
}

func renderCell(a *Appointment,
	patients map[uuid.UUID]*patient.Patient,
	services map[uuid.UUID]*catalog.ClinicService,
	staff map[uuid.UUID]*catalog.Staff) *CellAppointment {

	cell := &CellAppointment{
		ID:          a.ID,
		PatientName: unknownPatient,
		ServiceName: unknownService,
		Status:      NormalizeStatus(a.Status),
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Notes:       a.Notes,
	}
	if p, ok := patients[a.PatientID]; ok {
		cell.PatientName = p.FullName()
	}
	if svc, ok := services[a.ServiceID]; ok {
		cell.ServiceName = svc.Name
	}
	if st, ok := staff[a.StaffID]; ok {
		cell.StaffName = st.FullName()
	}
	return cell
}

// weekWindowFor parses an anchor date, falling back to today when empty.
func (s *Service) weekWindowFor(anchor string) (*WeekWindow, error) {
	if anchor == "" {
		return NewWeekWindow(s.now), nil
	}
	t, err := time.Parse(DateLayout, anchor)
	if err != nil {
		return nil, fmt.Errorf("invalid anchor date %q", anchor)
	}
	return NewWeekWindowAt(t, s.now), nil
}

// WeekSchedule assembles the grid for the week containing anchor. A storage
// failure never bubbles up as an error page: the user gets an empty grid and
// a toast.
func (s *Service) WeekSchedule(ctx context.Context, anchor string) (*WeekScheduleView, error) {
	w, err := s.weekWindowFor(anchor)
	if err != nil {
		return nil, err
	}

	dates := w.Dates()
	appts, err := s.appointments.ListByDateRange(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		s.notifier.Show("Error", "Could not load appointments for the week.", notify.SeverityError)
		return emptyWeekView(w), nil
	}

	patients, services, staff, err := s.references(ctx, appts)
	if err != nil {
		s.notifier.Show("Error", "Could not load appointment details.", notify.SeverityError)
		return emptyWeekView(w), nil
	}

	return buildWeekView(w, appts, patients, services, staff), nil
}

// references loads the patient, service, and staff rows the given
// appointments point at. Missing rows are tolerated; the grid renders
// placeholders for them.
func (s *Service) references(ctx context.Context, appts []*Appointment) (
	map[uuid.UUID]*patient.Patient,
	map[uuid.UUID]*catalog.ClinicService,
	map[uuid.UUID]*catalog.Staff,
	error) {

	patientIDs := make([]uuid.UUID, 0, len(appts))
	serviceIDs := make([]uuid.UUID, 0, len(appts))
	staffIDs := make([]uuid.UUID, 0, len(appts))
	seenP := map[uuid.UUID]bool{}
	seenSvc := map[uuid.UUID]bool{}
	seenSt := map[uuid.UUID]bool{}
	for _, a := range appts {
		if !seenP[a.PatientID] {
			seenP[a.PatientID] = true
			patientIDs = append(patientIDs, a.PatientID)
		}
		if !seenSvc[a.ServiceID] {
			seenSvc[a.ServiceID] = true
			serviceIDs = append(serviceIDs, a.ServiceID)
		}
		if !seenSt[a.StaffID] {
			seenSt[a.StaffID] = true
			staffIDs = append(staffIDs, a.StaffID)
		}
	}

	patients, err := s.patients.GetByIDs(ctx, patientIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	services, err := s.services.GetByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	staff, err := s.staff.GetByIDs(ctx, staffIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	return patients, services, staff, nil
}

// AppointmentRow is one line of the tabular week listing.
type AppointmentRow struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	PatientName string    `json:"patient_name"`
	ServiceName string    `json:"service_name"`
	StaffName   string    `json:"staff_name,omitempty"`
	Status      string    `json:"status"`
}

// WeekAppointments returns the week's appointments as a flat list for the
// tabular view, ordered by date and start time.
func (s *Service) WeekAppointments(ctx context.Context, anchor string) ([]AppointmentRow, error) {
	w, err := s.weekWindowFor(anchor)
	if err != nil {
		return nil, err
	}

	dates := w.Dates()
	appts, err := s.appointments.ListByDateRange(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	patients, services, staff, err := s.references(ctx, appts)
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}

	rows := make([]AppointmentRow, 0, len(appts))
	for _, a := range appts {
		cell := renderCell(a, patients, services, staff)
		rows = append(rows, AppointmentRow{
			ID:          a.ID,
			Date:        a.AppointmentDate,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			PatientName: cell.PatientName,
			ServiceName: cell.ServiceName,
			StaffName:   cell.StaffName,
			Status:      cell.Status,
		})
	}
	return rows, nil
}
