package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kappsme/appo/internal/domain"
	appointmentRepo "github.com/kappsme/appo/internal/infra/storage/appointment"
	catalogRepo "github.com/kappsme/appo/internal/infra/storage/catalog"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo  AppointmentRepository
	serviceRepo      ServiceRepository
	txManager        TransactionManager
	slotsInvalidator SlotsInvalidator
	mailer           Mailer
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// slotsInvalidator и mailer могут быть nil, если кеш/почта выключены
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	slotsInvalidator SlotsInvalidator,
	mailer Mailer,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		serviceRepo:      serviceRepo,
		txManager:        txManager,
		slotsInvalidator: slotsInvalidator,
		mailer:           mailer,
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
//
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции:
// между чтением занятых слотов и вставкой по той же дате не может
// зафиксироваться конкурирующая запись. Частичный уникальный индекс по
// (date, time) среди активных записей страхует на уровне хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: date=%s, time=%s, service=%d",
		req.Date.Format(domain.DateFormat), req.Time, req.ServiceID)

	// 1. Санитизация и валидация входных данных
	sanitizeRequest(req)

	kind, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		parent       *domain.Appointment
		service      *domain.Service
		createdDates []time.Time
		skippedDates []time.Time
		expanded     []time.Time
	)

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем услугу
		service, err = uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// Отключенная услуга для новых записей не существует
		if !service.Active {
			uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
			return ErrServiceNotFound
		}

		// 2.2. Получаем активные записи на дату с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.GetActiveByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 2.3. Проверяем пересечение с существующими записями
		conflict, err := findConflict(req.Time, service.DurationMinutes, existing, uc.logger)
		if err != nil {
			return err
		}
		if conflict != nil {
			uc.logger.Warn("CreateAppointment: %s %s conflicts with appointment id=%d at %s",
				req.Date.Format(domain.DateFormat), req.Time, conflict.ID, conflict.Time)
			return fmt.Errorf("%w: taken by appointment at %s", ErrSlotConflict, conflict.Time)
		}

		// 2.4. Создаем основную запись
		parent, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			Date:          dateOnly(req.Date),
			Time:          req.Time,
			Client:        req.Client,
			Phone:         req.Phone,
			ServiceID:     req.ServiceID,
			Recurrence:    kind,
			RecurrenceEnd: req.RecurrenceEnd,
			Status:        domain.StatusActive,
			Notes:         req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
				return fmt.Errorf("%w: time already taken", ErrSlotConflict)
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 2.5. Разворачиваем повторы серии
		expanded, err = expandRecurrence(req.Date, kind, req.RecurrenceEnd)
		if err != nil {
			return err
		}

		// 2.6. Создаем повторы; занятые даты молча пропускаем
		// Для повторов проверка деградирует до равенства (date, time):
		// на будущих датах нет снимка занятости в этой транзакции
		for _, d := range expanded {
			taken, err := uc.appointmentRepo.ExistsActiveAt(txCtx, d, req.Time)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to check occurrence %s: %v",
					d.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to check occurrence: %v", ErrInternal, err)
			}
			if taken {
				skippedDates = append(skippedDates, d)
				continue
			}

			if _, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
				Date:                d,
				Time:                req.Time,
				Client:              req.Client,
				Phone:               req.Phone,
				ServiceID:           req.ServiceID,
				Recurrence:          domain.RecurrenceNone,
				ParentAppointmentID: &parent.ID,
				Status:              domain.StatusActive,
				Notes:               req.Notes,
			}); err != nil {
				if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
					skippedDates = append(skippedDates, d)
					continue
				}
				uc.logger.Error("CreateAppointment: failed to create occurrence %s: %v",
					d.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to create occurrence: %v", ErrInternal, err)
			}
			createdDates = append(createdDates, d)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Денормализуем данные услуги для ответа и письма
	parent.ServiceName = &service.Name
	parent.ServiceDuration = &service.DurationMinutes

	uc.logger.Info("CreateAppointment: created appointment id=%d with %d occurrences (%d skipped)",
		parent.ID, occurrenceCount(expanded), len(skippedDates))

	// 3. Сбрасываем кеш слотов по затронутым датам
	if uc.slotsInvalidator != nil {
		dates := append([]time.Time{parent.Date}, createdDates...)
		if err := uc.slotsInvalidator.Invalidate(ctx, dates...); err != nil {
			uc.logger.Warn("CreateAppointment: failed to invalidate slots cache: %v", err)
		}
	}

	// 4. Отправляем подтверждение (ошибка почты не ломает созданную запись)
	if uc.mailer != nil {
		if err := uc.mailer.SendConfirmation(ctx, parent); err != nil {
			uc.logger.Warn("CreateAppointment: failed to send confirmation: %v", err)
		}
	}

	return &Response{
		ID:              parent.ID,
		Date:            parent.Date,
		Time:            parent.Time,
		Client:          parent.Client,
		Phone:           parent.Phone,
		ServiceID:       parent.ServiceID,
		ServiceName:     parent.ServiceName,
		Status:          string(parent.Status),
		Notes:           parent.Notes,
		Recurrence:      string(parent.Recurrence),
		RecurrenceEnd:   parent.RecurrenceEnd,
		OccurrenceCount: occurrenceCount(expanded),
		CreatedDates:    createdDates,
		SkippedDates:    skippedDates,
		CreatedAt:       parent.CreatedAt,
	}, nil
}
