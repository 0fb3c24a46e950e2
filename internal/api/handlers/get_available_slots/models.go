package get_available_slots

import (
	"github.com/kappsme/appo/internal/domain"
	getAvailableSlots "github.com/kappsme/appo/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time      string `json:"time"` // "10:00"
	Available bool   `json:"available"`
}

// SlotsResponse HTTP модель списка слотов на дату
type SlotsResponse struct {
	Date                string         `json:"date"` // "2024-06-03"
	SlotDurationMinutes int            `json:"slotDurationMinutes,omitempty"`
	Slots               []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Time:      s.StartTime.String(),
			Available: s.Available,
		}
	}

	return &SlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}
