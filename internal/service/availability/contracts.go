package availability

import (
	"context"

	"github.com/kappsme/appo/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, w *domain.Availability) (*domain.Availability, error)
	GetByID(ctx context.Context, id int64) (*domain.Availability, error)
	List(ctx context.Context) ([]*domain.Availability, error)
	Update(ctx context.Context, id int64, w *domain.Availability) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
