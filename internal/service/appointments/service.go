package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kappsme/appo/internal/domain"
	appointmentRepo "github.com/kappsme/appo/internal/infra/storage/appointment"
	"github.com/kappsme/appo/internal/service/appointments/models"
)

// Service сервис для работы с записями на приём
type Service struct {
	appointmentRepo  AppointmentRepository
	slotsInvalidator SlotsInvalidator
	mailer           Mailer
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
// slotsInvalidator и mailer могут быть nil, если кеш/почта выключены
func NewService(
	appointmentRepo AppointmentRepository,
	slotsInvalidator SlotsInvalidator,
	mailer Mailer,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		slotsInvalidator: slotsInvalidator,
		mailer:           mailer,
		logger:           logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает записи с опциональными фильтрами по дате и статусу
// Результат отсортирован по (date, time)
func (s *Service) List(ctx context.Context, req *models.GetAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments, date=%v, status=%v", req.Date, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(appts))
	return models.FromDomainAppointmentList(appts), nil
}

// Update частично обновляет запись (клиент, телефон, заметки, статус)
// Строковые поля проходят ту же санитизацию, что и при создании
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Update: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Update: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	fields, statusChanged, err := buildUpdateFields(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for appointment id=%d: %v", id, err)
		return nil, err
	}

	if err := s.appointmentRepo.Update(ctx, id, fields); err != nil {
		s.logger.Error("Update: failed to update appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Смена статуса меняет занятость слотов на дате записи
	if statusChanged {
		s.invalidateSlots(ctx, appt.Date)
	}

	updated, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated appointment id=%d", id)
	return models.FromDomainAppointment(updated), nil
}

// Cancel отменяет запись (статус cancelled, строки не удаляются)
// При cancelAll дополнительно отменяются все активные повторы серии
func (s *Service) Cancel(ctx context.Context, id int64, cancelAll bool) error {
	s.logger.Info("Cancel: cancelling appointment id=%d, cancelAll=%v", id, cancelAll)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.IsCancelled() {
		s.logger.Warn("Cancel: appointment id=%d is already cancelled", id)
		return ErrAlreadyCancelled
	}

	if err := s.appointmentRepo.Cancel(ctx, id); err != nil {
		s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	affectedDates := []time.Time{appt.Date}

	if cancelAll {
		childDates, err := s.appointmentRepo.CancelChildren(ctx, id)
		if err != nil {
			s.logger.Error("Cancel: failed to cancel children of appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		affectedDates = append(affectedDates, childDates...)
		s.logger.Info("Cancel: cancelled %d occurrences of appointment id=%d", len(childDates), id)
	}

	s.invalidateSlots(ctx, affectedDates...)

	// Ошибка почты не откатывает отмену
	if s.mailer != nil {
		if err := s.mailer.SendCancellation(ctx, appt); err != nil {
			s.logger.Warn("Cancel: failed to send cancellation for appointment id=%d: %v", id, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// buildUpdateFields валидирует и санитизирует запрос на обновление
// Возвращает признак смены статуса для сброса кеша слотов
func buildUpdateFields(req *models.UpdateAppointmentRequest) (appointmentRepo.UpdateFields, bool, error) {
	var fields appointmentRepo.UpdateFields

	if req.Client != nil {
		client := domain.SanitizeText(*req.Client, domain.MaxClientNameLength)
		if client == "" {
			return fields, false, fmt.Errorf("%w: client name cannot be empty", ErrInvalidInput)
		}
		fields.Client = &client
	}

	if req.Phone != nil {
		phone := domain.SanitizeText(*req.Phone, domain.MaxPhoneLength)
		if !domain.ValidPhone(phone) {
			return fields, false, fmt.Errorf("%w: invalid phone %q", ErrInvalidInput, phone)
		}
		fields.Phone = &phone
	}

	if req.Notes != nil {
		notes := domain.SanitizeText(*req.Notes, domain.MaxNotesLength)
		fields.Notes = &notes
	}

	statusChanged := false
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			return fields, false, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		fields.Status = &status
		statusChanged = true
	}

	return fields, statusChanged, nil
}

func (s *Service) invalidateSlots(ctx context.Context, dates ...time.Time) {
	if s.slotsInvalidator == nil || len(dates) == 0 {
		return
	}
	if err := s.slotsInvalidator.Invalidate(ctx, dates...); err != nil {
		s.logger.Warn("failed to invalidate slots cache: %v", err)
	}
}
