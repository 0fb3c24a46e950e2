package create_appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func existingAppt(id int64, start types.TimeString, durationMinutes *int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		Time:            start,
		Status:          domain.StatusActive,
		ServiceDuration: durationMinutes,
	}
}

func TestFindConflict(t *testing.T) {
	tests := []struct {
		name        string
		newStart    types.TimeString
		newDuration int
		existing    []*domain.Appointment
		wantID      int64 // 0 = нет конфликта
	}{
		{
			name:        "overlapping intervals conflict",
			newStart:    "10:30",
			newDuration: 30,
			existing:    []*domain.Appointment{existingAppt(1, "10:00", intPtr(60))},
			wantID:      1,
		},
		{
			name:        "touching end-to-start does not conflict",
			newStart:    "11:00",
			newDuration: 30,
			existing:    []*domain.Appointment{existingAppt(1, "10:00", intPtr(60))},
			wantID:      0,
		},
		{
			name:        "touching start-to-end does not conflict",
			newStart:    "09:00",
			newDuration: 60,
			existing:    []*domain.Appointment{existingAppt(1, "10:00", intPtr(60))},
			wantID:      0,
		},
		{
			name:        "new interval swallows existing",
			newStart:    "09:00",
			newDuration: 180,
			existing:    []*domain.Appointment{existingAppt(1, "10:00", intPtr(30))},
			wantID:      1,
		},
		{
			name:        "existing interval swallows new",
			newStart:    "10:15",
			newDuration: 15,
			existing:    []*domain.Appointment{existingAppt(1, "10:00", intPtr(60))},
			wantID:      1,
		},
		{
			name:        "first conflict in input order wins",
			newStart:    "10:00",
			newDuration: 120,
			existing: []*domain.Appointment{
				existingAppt(7, "10:30", intPtr(30)),
				existingAppt(8, "11:00", intPtr(30)),
			},
			wantID: 7,
		},
		{
			name:        "fallback duration taken as 60 minutes",
			newStart:    "10:45",
			newDuration: 30,
			existing:    []*domain.Appointment{existingAppt(1, "10:00", nil)},
			wantID:      1,
		},
		{
			name:        "fallback duration boundary still touches",
			newStart:    "11:00",
			newDuration: 30,
			existing:    []*domain.Appointment{existingAppt(1, "10:00", nil)},
			wantID:      0,
		},
		{
			name:        "empty snapshot",
			newStart:    "10:00",
			newDuration: 60,
			existing:    nil,
			wantID:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, err := findConflict(tt.newStart, tt.newDuration, tt.existing, nopLogger{})
			require.NoError(t, err)

			if tt.wantID == 0 {
				assert.Nil(t, conflict)
			} else {
				require.NotNil(t, conflict)
				assert.Equal(t, tt.wantID, conflict.ID)
			}
		})
	}
}

func TestFindConflict_SkipsInactive(t *testing.T) {
	cancelled := existingAppt(1, "10:00", intPtr(60))
	cancelled.Status = domain.StatusCancelled

	conflict, err := findConflict("10:00", 60, []*domain.Appointment{cancelled}, nopLogger{})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func intPtr(v int) *int { return &v }

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+79991234567",
		"79991234567",
		"+7 (999) 123-45-67",
		"8 999 123 45 67",
		"1234567",
		"123456789012345",
	}
	for _, phone := range valid {
		assert.NoError(t, validatePhone(phone), "phone %q", phone)
	}

	invalid := []string{
		"",
		"123456",           // короче 7 цифр
		"1234567890123456", // длиннее 15 цифр
		"phone",
		"+7999abc4567",
		"++79991234567",
	}
	for _, phone := range invalid {
		assert.ErrorIs(t, validatePhone(phone), ErrInvalidPhone, "phone %q", phone)
	}
}

func TestSanitizeRequest(t *testing.T) {
	longNotes := strings.Repeat("n", 600)

	req := &Request{
		Client: "  Анна Петрова  ",
		Phone:  " +7 999 123-45-67 ",
		Notes:  &longNotes,
	}

	sanitizeRequest(req)

	assert.Equal(t, "Анна Петрова", req.Client)
	assert.Equal(t, "+7 999 123-45-67", req.Phone)
	require.NotNil(t, req.Notes)
	assert.Len(t, []rune(*req.Notes), domain.MaxNotesLength)
}

func TestValidateRequest(t *testing.T) {
	base := func() *Request {
		return &Request{
			Date:      date(2024, time.June, 3),
			Time:      "10:00",
			Client:    "Анна",
			Phone:     "+79991234567",
			ServiceID: 1,
		}
	}

	t.Run("valid without recurrence", func(t *testing.T) {
		kind, err := validateRequest(base())
		require.NoError(t, err)
		assert.Equal(t, domain.RecurrenceNone, kind)
	})

	t.Run("valid weekly", func(t *testing.T) {
		req := base()
		req.Recurrence = "weekly"
		req.RecurrenceEnd = datePtr(2024, time.July, 1)

		kind, err := validateRequest(req)
		require.NoError(t, err)
		assert.Equal(t, domain.RecurrenceWeekly, kind)
	})

	t.Run("recurrence without end", func(t *testing.T) {
		req := base()
		req.Recurrence = "monthly"

		_, err := validateRequest(req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("recurrence end before date", func(t *testing.T) {
		req := base()
		req.Recurrence = "weekly"
		req.RecurrenceEnd = datePtr(2024, time.May, 1)

		_, err := validateRequest(req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown recurrence kind", func(t *testing.T) {
		req := base()
		req.Recurrence = "daily"

		_, err := validateRequest(req)
		assert.ErrorIs(t, err, domain.ErrInvalidRecurrenceKind)
	})

	t.Run("missing client", func(t *testing.T) {
		req := base()
		req.Client = ""

		_, err := validateRequest(req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed time", func(t *testing.T) {
		req := base()
		req.Time = "25:00"

		_, err := validateRequest(req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
