package domain

import (
	"time"

	"github.com/kappsme/appo/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment.
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	return s == StatusActive || s == StatusCancelled || s == StatusCompleted
}

// Appointment represents a booked time slot, possibly part of a recurring
// series. Children of a recurring appointment reference their parent by id
// only (arena-style foreign key); children never recur themselves.
type Appointment struct {
	ID        int64
	Date      time.Time
	Time      types.TimeString
	Client    string
	Phone     string
	ServiceID int64

	Recurrence          RecurrenceKind
	RecurrenceEnd       *time.Time
	ParentAppointmentID *int64

	Status AppointmentStatus
	Notes  *string

	// Resolved from the services table at read time; nil when the
	// service row is missing or inactive.
	ServiceName     *string
	ServiceDuration *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment participates in conflict and
// slot-availability checks.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusActive
}

// IsCancelled reports whether the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsRecurring reports whether this appointment is the parent of a
// recurring series.
func (a *Appointment) IsRecurring() bool {
	return a.Recurrence != RecurrenceNone
}

// EffectiveDurationMinutes returns the appointment's interval length for
// overlap checks. When the service duration cannot be resolved it falls
// back to DefaultServiceDurationMinutes; the second result reports whether
// the fallback was applied so callers can log the degraded case.
func (a *Appointment) EffectiveDurationMinutes() (int, bool) {
	if a.ServiceDuration == nil || *a.ServiceDuration <= 0 {
		return DefaultServiceDurationMinutes, true
	}
	return *a.ServiceDuration, false
}

// AppointmentsFilter is the filter for listing appointments.
type AppointmentsFilter struct {
	Date   *time.Time         // exact date, optional
	Status *AppointmentStatus // optional, nil = all statuses
}
