package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/kappsme/appo/pkg/types"
)

// Day-of-week encoding used in storage and the API: 0 = Monday .. 6 = Sunday.
const (
	DayMonday = iota
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
	DaySaturday
	DaySunday
)

// ErrInvalidConfiguration is returned for malformed availability windows
// (non-positive slot duration, start >= end, day outside 0..6). Upstream
// validation should catch these before they reach the slot generator, but
// the generator rejects them too instead of looping.
var ErrInvalidConfiguration = errors.New("domain: invalid availability configuration")

// Availability is the weekly template of open hours for one day of the
// week. One window per day is expected in normal operation, though the
// store does not enforce uniqueness.
type Availability struct {
	ID                  int64
	DayOfWeek           int
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	Enabled             bool
	CreatedAt           time.Time
}

// Validate checks the window invariants.
func (a *Availability) Validate() error {
	if a.DayOfWeek < DayMonday || a.DayOfWeek > DaySunday {
		return fmt.Errorf("%w: day_of_week %d is outside 0..6", ErrInvalidConfiguration, a.DayOfWeek)
	}
	if err := a.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidConfiguration, err)
	}
	if err := a.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidConfiguration, err)
	}
	if !a.StartTime.IsBefore(a.EndTime) {
		return fmt.Errorf("%w: start_time %s must be before end_time %s",
			ErrInvalidConfiguration, a.StartTime, a.EndTime)
	}
	if a.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration %d must be positive",
			ErrInvalidConfiguration, a.SlotDurationMinutes)
	}
	return nil
}

// DayOfWeekFromDate converts a calendar date to the 0=Monday encoding.
func DayOfWeekFromDate(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
