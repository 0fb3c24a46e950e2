package domain

import "time"

// Service is a bookable service offering. Its duration defines the
// appointment interval used in overlap checks.
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          bool
	CreatedAt       time.Time
}
