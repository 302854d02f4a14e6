package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses shown on the schedule.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
	StatusCompleted = "completed"
)

var validAppointmentStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCanceled:  true,
	StatusCompleted: true,
}

// NormalizeStatus maps any unrecognized status value to pending so the grid
// never renders an unknown state.
func NormalizeStatus(status string) string {
	if validAppointmentStatuses[status] {
		return status
	}
	return StatusPending
}

// Appointment maps to the appointments table. The calendar date and the two
// time labels are stored as strings ("YYYY-MM-DD", "HH:MM") because the grid
// matches appointments to cells by label, not by instant.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	ServiceID       uuid.UUID `db:"service_id" json:"service_id"`
	StaffID         uuid.UUID `db:"staff_id" json:"staff_id"`
	AppointmentDate string    `db:"appointment_date" json:"appointment_date"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`
	Status          string    `db:"status" json:"status"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
