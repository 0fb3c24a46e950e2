package get_available_slots

import (
	"context"
	"time"

	"github.com/kappsme/appo/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetActiveByDate получает все активные записи на конкретную дату
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// GetEnabledByDayOfWeek получает включенное окно доступности для дня недели (0=Пн .. 6=Вс)
	GetEnabledByDayOfWeek(ctx context.Context, dayOfWeek int) (*domain.Availability, error)
}

// SlotsCache интерфейс кеша сгенерированных слотов (опционален, может быть nil)
type SlotsCache interface {
	Get(ctx context.Context, date time.Time) ([]domain.Slot, error)
	Set(ctx context.Context, date time.Time, slots []domain.Slot) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
