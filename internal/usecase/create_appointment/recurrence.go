package create_appointment

import (
	"time"

	"github.com/kappsme/appo/internal/domain"
)

// expandRecurrence возвращает даты повторов серии, НЕ включая стартовую дату
//
// weekly: start + 7n дней. monthly: start + n календарных месяцев с тем же
// числом, что у стартовой даты; если в целевом месяце такого числа нет,
// берется последний день месяца. Привязка всегда к числу СТАРТОВОЙ даты,
// а не предыдущего повтора:
//
//	2024-01-31, monthly, end 2024-04-30 → [2024-02-29, 2024-03-31, 2024-04-30]
//
// Повторы включаются, пока дата не позже end. end раньше start дает пустой
// список. none дает пустой список.
func expandRecurrence(start time.Time, kind domain.RecurrenceKind, end *time.Time) ([]time.Time, error) {
	dates := make([]time.Time, 0)

	if kind.IsNone() || end == nil {
		return dates, nil
	}

	last := dateOnly(*end)
	startDay := dateOnly(start)

	switch kind {
	case domain.RecurrenceWeekly:
		for d := startDay.AddDate(0, 0, 7); !d.After(last); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}

	case domain.RecurrenceMonthly:
		for n := 1; ; n++ {
			d := addMonthsClamped(startDay, n)
			if d.After(last) {
				break
			}
			dates = append(dates, d)
		}

	default:
		return nil, domain.ErrInvalidRecurrenceKind
	}

	return dates, nil
}

// occurrenceCount считает, сколько дат покрывает серия, включая стартовую
func occurrenceCount(expanded []time.Time) int {
	return len(expanded) + 1
}

// addMonthsClamped прибавляет n месяцев, сохраняя число месяца стартовой даты
// и прижимая его к концу более короткого месяца
// time.AddDate здесь не подходит: 31 января + 1 месяц у него дает 2-3 марта
func addMonthsClamped(start time.Time, n int) time.Time {
	year, month, day := start.Date()

	// Первое число целевого месяца, затем прижимаем день
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, start.Location())
	if max := daysInMonth(first); day > max {
		day = max
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, start.Location())
}

// daysInMonth возвращает число дней в месяце указанной даты
func daysInMonth(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
}

// dateOnly обнуляет компонент времени
func dateOnly(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
