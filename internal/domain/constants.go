package domain

// Default configuration values
const (
	// DefaultServiceDurationMinutes is the degraded-mode fallback applied
	// when an appointment's service cannot be resolved.
	DefaultServiceDurationMinutes = 60

	DefaultSlotDurationMinutes = 60
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxClientNameLength  = 100
	MaxPhoneLength       = 20
	MaxServiceNameLength = 100
	MaxDescriptionLength = 500
	MaxNotesLength       = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidServiceDuration reports whether a service duration is inside the
// allowed range.
func ValidServiceDuration(minutes int) bool {
	return minutes >= MinServiceDurationMinutes && minutes <= MaxServiceDurationMinutes
}
