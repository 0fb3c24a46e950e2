package create_appointment

import (
	"context"
	"time"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// Create создает запись (дубликат по (date, time) среди активных даёт ErrDuplicateSlot)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// GetActiveByDate получает все активные записи на дату (FOR UPDATE внутри транзакции)
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	// ExistsActiveAt проверяет, занято ли точное время на дату активной записью
	ExistsActiveAt(ctx context.Context, date time.Time, t types.TimeString) (bool, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в сериализуемой транзакции
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsInvalidator интерфейс сброса кеша слотов (опционален, может быть nil)
type SlotsInvalidator interface {
	Invalidate(ctx context.Context, dates ...time.Time) error
}

// Mailer интерфейс отправки уведомлений о записи
type Mailer interface {
	SendConfirmation(ctx context.Context, appt *domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
