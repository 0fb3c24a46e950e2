package domain

import "github.com/kappsme/appo/pkg/types"

// Slot is a candidate appointment start time derived from an availability
// window. Slots are ephemeral query results, never persisted.
type Slot struct {
	StartTime types.TimeString
	Available bool
}
