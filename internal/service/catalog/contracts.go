package catalog

import (
	"context"

	"github.com/kappsme/appo/internal/domain"
	catalogRepo "github.com/kappsme/appo/internal/infra/storage/catalog"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, id int64, fields catalogRepo.UpdateFields) error
	Deactivate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
