package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/pkg/types"
)

func window(start, end types.TimeString, step int) *domain.Availability {
	return &domain.Availability{
		DayOfWeek:           domain.DayMonday,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: step,
		Enabled:             true,
	}
}

func activeAppt(t types.TimeString, durationMinutes *int) *domain.Appointment {
	return &domain.Appointment{
		Time:            t,
		Status:          domain.StatusActive,
		ServiceDuration: durationMinutes,
	}
}

func intPtr(v int) *int { return &v }

func slotStarts(slots []domain.Slot) []types.TimeString {
	starts := make([]types.TimeString, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}
	return starts
}

func TestGenerateSlots_Grid(t *testing.T) {
	tests := []struct {
		name       string
		window     *domain.Availability
		wantStarts []types.TimeString
	}{
		{
			name:       "even grid",
			window:     window("09:00", "11:00", 60),
			wantStarts: []types.TimeString{"09:00", "10:00"},
		},
		{
			name:   "start-only boundary keeps overflowing last slot",
			window: window("09:00", "10:30", 60),
			// 10:00-11:00 выходит за конец окна, но его начало раньше 10:30
			wantStarts: []types.TimeString{"09:00", "10:00"},
		},
		{
			name:       "short step",
			window:     window("09:00", "10:00", 30),
			wantStarts: []types.TimeString{"09:00", "09:30"},
		},
		{
			name:       "single slot window",
			window:     window("09:00", "09:01", 60),
			wantStarts: []types.TimeString{"09:00"},
		},
		{
			name:       "grid stops at midnight",
			window:     window("22:30", "23:59", 60),
			wantStarts: []types.TimeString{"22:30", "23:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := generateSlots(tt.window, nil, false)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStarts, slotStarts(slots))
			for _, s := range slots {
				assert.True(t, s.Available)
			}
		})
	}
}

func TestGenerateSlots_InvalidWindow(t *testing.T) {
	tests := []struct {
		name   string
		window *domain.Availability
	}{
		{"zero duration", window("09:00", "11:00", 0)},
		{"negative duration", window("09:00", "11:00", -30)},
		{"start equals end", window("09:00", "09:00", 60)},
		{"start after end", window("11:00", "09:00", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generateSlots(tt.window, nil, false)
			require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		})
	}
}

func TestGenerateSlots_StartTimeMarking(t *testing.T) {
	w := window("09:00", "12:00", 60)

	appointments := []*domain.Appointment{
		activeAppt("10:00", intPtr(60)),
	}

	slots, err := generateSlots(w, appointments, false)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Available)  // 09:00
	assert.False(t, slots[1].Available) // 10:00
	assert.True(t, slots[2].Available)  // 11:00
}

func TestGenerateSlots_OffGridAppointmentDefaultMode(t *testing.T) {
	w := window("09:00", "12:00", 60)

	// Запись на 10:30 длительностью 60 минут реально перекрывает слоты
	// 10:00 и 11:00, но в обычном режиме сравнивается только время начала
	appointments := []*domain.Appointment{
		activeAppt("10:30", intPtr(60)),
	}

	slots, err := generateSlots(w, appointments, false)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	for _, s := range slots {
		assert.True(t, s.Available, "slot %s", s.StartTime)
	}
}

func TestGenerateSlots_OffGridAppointmentStrictMode(t *testing.T) {
	w := window("09:00", "12:00", 60)

	appointments := []*domain.Appointment{
		activeAppt("10:30", intPtr(60)),
	}

	slots, err := generateSlots(w, appointments, true)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Available)  // 09:00-10:00 граничит с 10:30
	assert.False(t, slots[1].Available) // 10:00-11:00 пересекается с 10:30-11:30
	assert.False(t, slots[2].Available) // 11:00-12:00 пересекается с 10:30-11:30
}

func TestGenerateSlots_StrictModeBoundaryTouch(t *testing.T) {
	w := window("09:00", "12:00", 60)

	// Запись 10:00-11:00: слоты 09:00 и 11:00 только граничат с ней
	appointments := []*domain.Appointment{
		activeAppt("10:00", intPtr(60)),
	}

	slots, err := generateSlots(w, appointments, true)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
}

func TestGenerateSlots_StrictModeFallbackDuration(t *testing.T) {
	w := window("09:00", "12:00", 30)

	// Длительность услуги неизвестна - подставляются 60 минут
	appointments := []*domain.Appointment{
		activeAppt("10:00", nil),
	}

	slots, err := generateSlots(w, appointments, true)
	require.NoError(t, err)

	byStart := make(map[types.TimeString]bool, len(slots))
	for _, s := range slots {
		byStart[s.StartTime] = s.Available
	}

	assert.True(t, byStart["09:30"])
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["10:30"])
	assert.True(t, byStart["11:00"])
}

func TestGenerateSlots_IgnoresInactiveAppointments(t *testing.T) {
	w := window("09:00", "11:00", 60)

	cancelled := activeAppt("10:00", intPtr(60))
	cancelled.Status = domain.StatusCancelled

	completed := activeAppt("09:00", intPtr(60))
	completed.Status = domain.StatusCompleted

	slots, err := generateSlots(w, []*domain.Appointment{cancelled, completed}, false)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}
