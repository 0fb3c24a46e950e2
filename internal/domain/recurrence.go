package domain

import (
	"errors"
	"fmt"
)

// RecurrenceKind classifies how an appointment repeats.
type RecurrenceKind string

const (
	RecurrenceNone    RecurrenceKind = "none"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
)

// ErrInvalidRecurrenceKind is returned for kinds outside
// {none, weekly, monthly}. An unknown kind is a validation error, never
// silently treated as none.
var ErrInvalidRecurrenceKind = errors.New("domain: invalid recurrence kind")

// ParseRecurrenceKind validates a raw recurrence string. The empty string
// parses as none (absent field in a request body).
func ParseRecurrenceKind(s string) (RecurrenceKind, error) {
	switch RecurrenceKind(s) {
	case "", RecurrenceNone:
		return RecurrenceNone, nil
	case RecurrenceWeekly:
		return RecurrenceWeekly, nil
	case RecurrenceMonthly:
		return RecurrenceMonthly, nil
	default:
		return "", fmt.Errorf("%w: %q, must be one of none, weekly, monthly", ErrInvalidRecurrenceKind, s)
	}
}

// IsNone reports whether the appointment does not repeat.
func (k RecurrenceKind) IsNone() bool {
	return k == RecurrenceNone
}
