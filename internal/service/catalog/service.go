package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/kappsme/appo/internal/domain"
	catalogRepo "github.com/kappsme/appo/internal/infra/storage/catalog"
	"github.com/kappsme/appo/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List получает все активные услуги, отсортированные по имени
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching active services")

	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q, duration=%d", req.Name, req.DurationMinutes)

	name := domain.SanitizeText(req.Name, domain.MaxServiceNameLength)
	if name == "" {
		s.logger.Warn("Create: service name is empty")
		return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}

	if !domain.ValidServiceDuration(req.DurationMinutes) {
		s.logger.Warn("Create: invalid duration %d", req.DurationMinutes)
		return nil, fmt.Errorf("%w: duration must be %d..%d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if req.Price < 0 {
		s.logger.Warn("Create: negative price %f", req.Price)
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	var description *string
	if req.Description != nil {
		d := domain.SanitizeText(*req.Description, domain.MaxDescriptionLength)
		description = &d
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		Name:            name,
		Description:     description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	if _, err := s.serviceRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	fields, err := buildUpdateFields(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, id, fields); err != nil {
		s.logger.Error("Update: failed to update service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// Delete отключает услугу (soft delete, существующие записи сохраняют ссылку)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deactivating service id=%d", id)

	if _, err := s.serviceRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.serviceRepo.Deactivate(ctx, id); err != nil {
		s.logger.Error("Delete: failed to deactivate service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deactivated service id=%d", id)
	return nil
}

// buildUpdateFields валидирует и санитизирует запрос на обновление услуги
func buildUpdateFields(req *models.UpdateServiceRequest) (catalogRepo.UpdateFields, error) {
	var fields catalogRepo.UpdateFields

	if req.Name != nil {
		name := domain.SanitizeText(*req.Name, domain.MaxServiceNameLength)
		if name == "" {
			return fields, fmt.Errorf("%w: service name cannot be empty", ErrInvalidInput)
		}
		fields.Name = &name
	}

	if req.Description != nil {
		description := domain.SanitizeText(*req.Description, domain.MaxDescriptionLength)
		fields.Description = &description
	}

	if req.DurationMinutes != nil {
		if !domain.ValidServiceDuration(*req.DurationMinutes) {
			return fields, fmt.Errorf("%w: duration must be %d..%d minutes",
				ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
		}
		fields.DurationMinutes = req.DurationMinutes
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return fields, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
		}
		fields.Price = req.Price
	}

	fields.Active = req.Active

	return fields, nil
}
