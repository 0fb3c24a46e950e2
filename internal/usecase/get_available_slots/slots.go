package get_available_slots

import (
	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/pkg/types"
)

// generateSlots генерирует все слоты дня для окна доступности и отмечает занятые
//
// Слоты идут с начала окна с фиксированным шагом SlotDurationMinutes.
// Граница окна проверяется ТОЛЬКО по началу слота: слот включается, пока
// его начало строго раньше конца окна, даже если конец слота выходит за окно.
//
// Примеры (окно 09:00-11:00, шаг 60):
// - 09:00 → включен
// - 10:00 → включен
// - 11:00 → НЕ включен (начало не раньше конца окна)
// Окно 09:00-10:30, шаг 60 → слоты 09:00 и 10:00 (10:00-11:00 выходит за окно, но включен)
func generateSlots(
	window *domain.Availability,
	appointments []*domain.Appointment,
	strictOverlap bool,
) ([]domain.Slot, error) {
	// Некорректное окно (шаг <= 0, start >= end) привело бы к пустому или
	// бесконечному циклу, поэтому отклоняем его явно
	if err := window.Validate(); err != nil {
		return nil, err
	}

	slots := make([]domain.Slot, 0)
	current := window.StartTime

	for current.IsBefore(window.EndTime) {
		slots = append(slots, domain.Slot{
			StartTime: current,
			Available: isSlotFree(current, window.SlotDurationMinutes, appointments, strictOverlap),
		})

		next, err := current.AddMinutes(window.SlotDurationMinutes)
		if err != nil {
			// Следующий слот начался бы за полночь - сетка дня закончилась
			break
		}
		current = next
	}

	return slots, nil
}

// isSlotFree проверяет, свободен ли слот с указанным началом
//
// В обычном режиме слот занят, только если активная запись начинается РОВНО
// во время начала слота. Запись, начавшаяся между слотами, слот не занимает.
//
// В строгом режиме (strictOverlap) слот занят, если интервал записи реально
// пересекается с интервалом слота. Граничные случаи пересечением не считаются:
// запись 10:00-11:00 не занимает слот 11:00-12:00.
func isSlotFree(
	slotStart types.TimeString,
	slotDurationMinutes int,
	appointments []*domain.Appointment,
	strictOverlap bool,
) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		if !strictOverlap {
			if appt.Time.Equal(slotStart) {
				return false
			}
			continue
		}

		if overlapsSlot(slotStart, slotDurationMinutes, appt) {
			return false
		}
	}

	return true
}

// overlapsSlot проверяет реальное пересечение интервалов записи и слота
// Сравниваем в минутах от полуночи, чтобы интервалы, выходящие за полночь,
// не требовали отдельной обработки
func overlapsSlot(slotStart types.TimeString, slotDurationMinutes int, appt *domain.Appointment) bool {
	slotStartMin, err := slotStart.Minutes()
	if err != nil {
		return false
	}
	apptStartMin, err := appt.Time.Minutes()
	if err != nil {
		return false
	}

	duration, _ := appt.EffectiveDurationMinutes()

	slotEndMin := slotStartMin + slotDurationMinutes
	apptEndMin := apptStartMin + duration

	// Строгие неравенства: интервалы, которые только граничат, не пересекаются
	return apptStartMin < slotEndMin && apptEndMin > slotStartMin
}
