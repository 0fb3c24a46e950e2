// Package types contains small shared value types used across layers.
package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString is a naive wall-clock time of day in "HH:MM" form.
// The zero-padded format makes lexicographic comparison equivalent to
// chronological comparison, which keeps IsBefore/IsAfter allocation-free.
type TimeString string

const timeStringLayout = "15:04"

// ErrInvalidTimeString is returned when a string does not parse as "HH:MM".
var ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

// NewTimeString builds a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	parsed, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	// Re-format so "9:05" becomes canonical "09:05".
	return TimeString(parsed.Format(timeStringLayout)), nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
// Values outside [0, 1440) are rejected.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes is outside the day", ErrInvalidTimeString, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value parses as "HH:MM".
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeStringLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by m minutes.
// Crossing midnight is an error: callers deal in single-day schedules.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	shifted := base + m
	if shifted >= 24*60 || shifted < 0 {
		return "", fmt.Errorf("%w: %s + %d minutes leaves the day", ErrInvalidTimeString, t, m)
	}
	return NewTimeStringFromMinutes(shifted)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// Equal reports whether the two times are the same minute.
func (t TimeString) Equal(other TimeString) bool {
	return t == other
}
