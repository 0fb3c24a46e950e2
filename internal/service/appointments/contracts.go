package appointments

import (
	"context"
	"time"

	"github.com/kappsme/appo/internal/domain"
	appointmentRepo "github.com/kappsme/appo/internal/infra/storage/appointment"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, id int64, fields appointmentRepo.UpdateFields) error
	Cancel(ctx context.Context, id int64) error
	CancelChildren(ctx context.Context, parentID int64) ([]time.Time, error)
}

// SlotsInvalidator интерфейс сброса кеша слотов (опционален, может быть nil)
type SlotsInvalidator interface {
	Invalidate(ctx context.Context, dates ...time.Time) error
}

// Mailer интерфейс отправки уведомлений об отмене
type Mailer interface {
	SendCancellation(ctx context.Context, appt *domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
