package create_appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappsme/appo/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestExpandRecurrence_Weekly(t *testing.T) {
	got, err := expandRecurrence(date(2024, time.January, 1), domain.RecurrenceWeekly, datePtr(2024, time.January, 22))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2024, time.January, 8),
		date(2024, time.January, 15),
		date(2024, time.January, 22),
	}, got)
	assert.Equal(t, 4, occurrenceCount(got))
}

func TestExpandRecurrence_WeeklyEndBetweenOccurrences(t *testing.T) {
	// Конец серии не попадает на повтор - последний повтор до него
	got, err := expandRecurrence(date(2024, time.January, 1), domain.RecurrenceWeekly, datePtr(2024, time.January, 20))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2024, time.January, 8),
		date(2024, time.January, 15),
	}, got)
}

func TestExpandRecurrence_MonthlyClampsToShortMonths(t *testing.T) {
	// 31-е число: февраль и апрель короче, повтор прижимается к концу
	// месяца, но март снова дает 31-е - привязка к стартовой дате
	got, err := expandRecurrence(date(2024, time.January, 31), domain.RecurrenceMonthly, datePtr(2024, time.April, 30))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2024, time.February, 29),
		date(2024, time.March, 31),
		date(2024, time.April, 30),
	}, got)
}

func TestExpandRecurrence_MonthlyRegularDay(t *testing.T) {
	got, err := expandRecurrence(date(2024, time.March, 15), domain.RecurrenceMonthly, datePtr(2024, time.June, 15))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2024, time.April, 15),
		date(2024, time.May, 15),
		date(2024, time.June, 15),
	}, got)
}

func TestExpandRecurrence_MonthlyAcrossYearBoundary(t *testing.T) {
	got, err := expandRecurrence(date(2024, time.November, 30), domain.RecurrenceMonthly, datePtr(2025, time.February, 28))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2024, time.December, 30),
		date(2025, time.January, 30),
		date(2025, time.February, 28),
	}, got)
}

func TestExpandRecurrence_None(t *testing.T) {
	got, err := expandRecurrence(date(2024, time.January, 1), domain.RecurrenceNone, datePtr(2024, time.December, 31))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, occurrenceCount(got))
}

func TestExpandRecurrence_NilEnd(t *testing.T) {
	got, err := expandRecurrence(date(2024, time.January, 1), domain.RecurrenceWeekly, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpandRecurrence_EndBeforeStart(t *testing.T) {
	got, err := expandRecurrence(date(2024, time.June, 1), domain.RecurrenceWeekly, datePtr(2024, time.May, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpandRecurrence_EndEqualsStart(t *testing.T) {
	// Повторы строго после стартовой даты - серия из одной записи
	got, err := expandRecurrence(date(2024, time.June, 1), domain.RecurrenceWeekly, datePtr(2024, time.June, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, occurrenceCount(got))
}

func TestExpandRecurrence_UnknownKind(t *testing.T) {
	_, err := expandRecurrence(date(2024, time.January, 1), domain.RecurrenceKind("daily"), datePtr(2024, time.February, 1))
	require.ErrorIs(t, err, domain.ErrInvalidRecurrenceKind)
}
