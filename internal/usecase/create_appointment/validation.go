package create_appointment

import (
	"fmt"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/pkg/types"
)

// sanitizeRequest чистит строковые поля запроса: обрезает пробелы и
// ограничивает длину до лимитов хранения
func sanitizeRequest(req *Request) {
	req.Client = domain.SanitizeText(req.Client, domain.MaxClientNameLength)
	req.Phone = domain.SanitizeText(req.Phone, domain.MaxPhoneLength)
	if req.Notes != nil {
		notes := domain.SanitizeText(*req.Notes, domain.MaxNotesLength)
		req.Notes = &notes
	}
}

// validateRequest валидирует запрос и возвращает разобранный тип повторения
// Вызывается после sanitizeRequest
func validateRequest(req *Request) (domain.RecurrenceKind, error) {
	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return "", fmt.Errorf("%w: time: %v", ErrInvalidInput, err)
	}

	if req.Client == "" {
		return "", fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return "", fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if err := validatePhone(req.Phone); err != nil {
		return "", err
	}

	kind, err := domain.ParseRecurrenceKind(req.Recurrence)
	if err != nil {
		return "", err
	}

	if !kind.IsNone() {
		if req.RecurrenceEnd == nil {
			return "", fmt.Errorf("%w: recurrence_end is required for %s recurrence", ErrInvalidInput, kind)
		}
		if dateOnly(*req.RecurrenceEnd).Before(dateOnly(req.Date)) {
			return "", fmt.Errorf("%w: recurrence_end is before the appointment date", ErrInvalidInput)
		}
	}

	return kind, nil
}

// validatePhone проверяет телефон после удаления разделителей
func validatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidPhone)
	}

	if !domain.ValidPhone(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	return nil
}

// findConflict ищет первую активную запись, чей интервал пересекается с новым
//
// Интервалы полуоткрытые [start, start+duration): запись, которая
// заканчивается ровно в начале новой (или наоборот), конфликтом не считается.
// Возвращается ПЕРВЫЙ конфликт в порядке переданного списка (список из
// хранилища отсортирован по времени).
//
// Длительность существующей записи берется из ее услуги; если услугу
// разрезолвить не удалось, подставляются 60 минут и пишется предупреждение -
// проверка продолжает работать в деградированном режиме вместо отказа.
func findConflict(
	newStart types.TimeString,
	newDurationMinutes int,
	existing []*domain.Appointment,
	logger Logger,
) (*domain.Appointment, error) {
	newStartMin, err := newStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: time: %v", ErrInvalidInput, err)
	}
	newEndMin := newStartMin + newDurationMinutes

	for _, appt := range existing {
		if !appt.IsActive() {
			continue
		}

		apptStartMin, err := appt.Time.Minutes()
		if err != nil {
			logger.Warn("CreateAppointment: appointment id=%d has malformed time %q, skipping", appt.ID, appt.Time)
			continue
		}

		duration, degraded := appt.EffectiveDurationMinutes()
		if degraded {
			logger.Warn("CreateAppointment: appointment id=%d has no resolvable service duration, assuming %d minutes",
				appt.ID, duration)
		}
		apptEndMin := apptStartMin + duration

		// Строгие неравенства: граничащие интервалы не конфликтуют
		if apptStartMin < newEndMin && apptEndMin > newStartMin {
			return appt, nil
		}
	}

	return nil, nil
}
