package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/kappsme/appo/internal/domain"
	availabilityRepo "github.com/kappsme/appo/internal/infra/storage/availability"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	slotsCache       SlotsCache
	strictOverlap    bool
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// slotsCache может быть nil, если кеширование выключено
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	slotsCache SlotsCache,
	strictOverlap bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		slotsCache:       slotsCache,
		strictOverlap:    strictOverlap,
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов на дату
// Результат зависит только от окна доступности и записей на эту дату:
// повторный запрос без изменений данных возвращает тот же список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем окно доступности для дня недели
	window, err := uc.availabilityRepo.GetEnabledByDayOfWeek(ctx, domain.DayOfWeekFromDate(req.Date))
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			// Окна на этот день нет - день закрыт, слотов нет
			uc.logger.Info("GetAvailableSlots: no availability window for %s", req.Date.Format(domain.DateFormat))
			return &Response{Date: req.Date, Slots: []domain.Slot{}}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability window: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability window: %v", ErrInternal, err)
	}

	// 3. Проверяем кеш (сброс кеша делают мутации записей)
	if uc.slotsCache != nil {
		cached, err := uc.slotsCache.Get(ctx, req.Date)
		if err == nil {
			uc.logger.Info("GetAvailableSlots: cache hit for %s (%d slots)",
				req.Date.Format(domain.DateFormat), len(cached))
			return &Response{
				Date:                req.Date,
				SlotDurationMinutes: window.SlotDurationMinutes,
				Slots:               cached,
			}, nil
		}
	}

	// 4. Получаем активные записи на дату
	appointments, err := uc.appointmentRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты и отмечаем занятые
	slots, err := generateSlots(window, appointments, uc.strictOverlap)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, err
	}

	// 6. Кладем результат в кеш (ошибка кеша не ломает ответ)
	if uc.slotsCache != nil {
		if err := uc.slotsCache.Set(ctx, req.Date, slots); err != nil {
			uc.logger.Warn("GetAvailableSlots: failed to cache slots for %s: %v",
				req.Date.Format(domain.DateFormat), err)
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s",
		len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:                req.Date,
		SlotDurationMinutes: window.SlotDurationMinutes,
		Slots:               slots,
	}, nil
}
