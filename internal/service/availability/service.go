package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/kappsme/appo/internal/domain"
	availabilityRepo "github.com/kappsme/appo/internal/infra/storage/availability"
	"github.com/kappsme/appo/internal/service/availability/models"
	"github.com/kappsme/appo/pkg/types"
)

// Service сервис для работы с окнами доступности
type Service struct {
	windowRepo AvailabilityRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса окон доступности
func NewService(windowRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		windowRepo: windowRepo,
		logger:     logger,
	}
}

// List получает все окна доступности
func (s *Service) List(ctx context.Context) (*models.WindowListResponse, error) {
	s.logger.Info("List: fetching availability windows")

	windows, err := s.windowRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d windows", len(windows))
	return models.FromDomainWindowList(windows), nil
}

// GetByID получает окно доступности по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.WindowResponse, error) {
	s.logger.Info("GetByID: fetching window id=%d", id)

	window, err := s.windowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("GetByID: window id=%d not found", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("GetByID: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindow(window), nil
}

// Create создает окно доступности
// Возвращает domain.ErrInvalidConfiguration при нарушении инвариантов окна
func (s *Service) Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Create: creating window day=%d, %s-%s, step=%d",
		req.DayOfWeek, req.StartTime, req.EndTime, req.SlotDurationMinutes)

	window := req.ToDomainWindow()
	if err := window.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.windowRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// Update обновляет окно доступности
// Итоговое окно перепроверяется целиком: нельзя, например, передвинуть
// начало за конец
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Update: updating window id=%d", id)

	window, err := s.windowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("Update: window id=%d not found", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("Update: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	applyWindowPatch(window, req)

	if err := window.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for window id=%d: %v", id, err)
		return nil, err
	}

	if err := s.windowRepo.Update(ctx, id, window); err != nil {
		s.logger.Error("Update: failed to update window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated window id=%d", id)
	return models.FromDomainWindow(window), nil
}

// Delete удаляет окно доступности (жесткое удаление, без деактивации)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting window id=%d", id)

	if err := s.windowRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: failed to delete window id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted window id=%d", id)
	return nil
}

// applyWindowPatch накладывает непустые поля запроса на окно
func applyWindowPatch(window *domain.Availability, req *models.UpdateWindowRequest) {
	if req.DayOfWeek != nil {
		window.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		window.StartTime = types.TimeString(*req.StartTime)
	}
	if req.EndTime != nil {
		window.EndTime = types.TimeString(*req.EndTime)
	}
	if req.SlotDurationMinutes != nil {
		window.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.Enabled != nil {
		window.Enabled = *req.Enabled
	}
}
