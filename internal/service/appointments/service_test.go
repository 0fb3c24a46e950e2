package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/internal/service/appointments/models"
	"github.com/kappsme/appo/pkg/ptr"
)

func TestBuildUpdateFields(t *testing.T) {
	t.Run("sanitizes strings", func(t *testing.T) {
		fields, statusChanged, err := buildUpdateFields(&models.UpdateAppointmentRequest{
			Client: ptr.Ptr("  Анна  "),
			Phone:  ptr.Ptr(" +7 (999) 123-45-67 "),
			Notes:  ptr.Ptr("  перенести на час  "),
		})
		require.NoError(t, err)

		assert.False(t, statusChanged)
		assert.Equal(t, "Анна", *fields.Client)
		assert.Equal(t, "+7 (999) 123-45-67", *fields.Phone)
		assert.Equal(t, "перенести на час", *fields.Notes)
		assert.Nil(t, fields.Status)
	})

	t.Run("empty request touches nothing", func(t *testing.T) {
		fields, statusChanged, err := buildUpdateFields(&models.UpdateAppointmentRequest{})
		require.NoError(t, err)

		assert.False(t, statusChanged)
		assert.Nil(t, fields.Client)
		assert.Nil(t, fields.Phone)
		assert.Nil(t, fields.Notes)
		assert.Nil(t, fields.Status)
	})

	t.Run("valid status change", func(t *testing.T) {
		fields, statusChanged, err := buildUpdateFields(&models.UpdateAppointmentRequest{
			Status: ptr.Ptr("completed"),
		})
		require.NoError(t, err)

		assert.True(t, statusChanged)
		assert.Equal(t, domain.StatusCompleted, *fields.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, _, err := buildUpdateFields(&models.UpdateAppointmentRequest{
			Status: ptr.Ptr("archived"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank client rejected", func(t *testing.T) {
		_, _, err := buildUpdateFields(&models.UpdateAppointmentRequest{
			Client: ptr.Ptr("   "),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed phone rejected", func(t *testing.T) {
		_, _, err := buildUpdateFields(&models.UpdateAppointmentRequest{
			Phone: ptr.Ptr("not-a-phone"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
