package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/internal/service/availability/models"
	"github.com/kappsme/appo/pkg/ptr"
)

func TestApplyWindowPatch(t *testing.T) {
	window := &domain.Availability{
		ID:                  1,
		DayOfWeek:           domain.DayMonday,
		StartTime:           "09:00",
		EndTime:             "18:00",
		SlotDurationMinutes: 60,
		Enabled:             true,
	}

	applyWindowPatch(window, &models.UpdateWindowRequest{
		EndTime:             ptr.Ptr("20:00"),
		SlotDurationMinutes: ptr.Ptr(30),
		Enabled:             ptr.Ptr(false),
	})

	assert.Equal(t, domain.DayMonday, window.DayOfWeek)
	assert.Equal(t, "09:00", window.StartTime.String())
	assert.Equal(t, "20:00", window.EndTime.String())
	assert.Equal(t, 30, window.SlotDurationMinutes)
	assert.False(t, window.Enabled)

	require.NoError(t, window.Validate())
}

func TestApplyWindowPatch_InvalidResult(t *testing.T) {
	window := &domain.Availability{
		DayOfWeek:           domain.DayFriday,
		StartTime:           "09:00",
		EndTime:             "18:00",
		SlotDurationMinutes: 60,
		Enabled:             true,
	}

	// Начало передвинули за конец - итоговое окно невалидно
	applyWindowPatch(window, &models.UpdateWindowRequest{
		StartTime: ptr.Ptr("19:00"),
	})

	require.ErrorIs(t, window.Validate(), domain.ErrInvalidConfiguration)
}

func TestCreateWindowRequestDefaults(t *testing.T) {
	window := (&models.CreateWindowRequest{
		DayOfWeek:           domain.DayTuesday,
		StartTime:           "10:00",
		EndTime:             "16:00",
		SlotDurationMinutes: 45,
	}).ToDomainWindow()

	assert.True(t, window.Enabled)
	require.NoError(t, window.Validate())
}
