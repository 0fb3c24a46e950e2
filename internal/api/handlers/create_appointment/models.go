package create_appointment

import (
	"time"

	"github.com/kappsme/appo/internal/domain"
	createAppointment "github.com/kappsme/appo/internal/usecase/create_appointment"
	"github.com/kappsme/appo/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date          string  `json:"date"` // "2024-06-03"
	Time          string  `json:"time"` // "10:00"
	Client        string  `json:"client"`
	Phone         string  `json:"phone"`
	ServiceID     int64   `json:"serviceId"`
	Notes         *string `json:"notes,omitempty"`
	Recurrence    string  `json:"recurrence,omitempty"`    // "", "none", "weekly", "monthly"
	RecurrenceEnd *string `json:"recurrenceEnd,omitempty"` // "2024-08-31"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64    `json:"id"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Client          string   `json:"client"`
	Phone           string   `json:"phone"`
	ServiceID       int64    `json:"serviceId"`
	ServiceName     *string  `json:"serviceName,omitempty"`
	Status          string   `json:"status"`
	Notes           *string  `json:"notes,omitempty"`
	Recurrence      string   `json:"recurrence"`
	RecurrenceEnd   *string  `json:"recurrenceEnd,omitempty"`
	OccurrenceCount int      `json:"occurrenceCount"`
	CreatedDates    []string `json:"createdDates,omitempty"`
	SkippedDates    []string `json:"skippedDates,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	var recurrenceEnd *time.Time
	if r.RecurrenceEnd != nil {
		end, err := time.Parse(domain.DateFormat, *r.RecurrenceEnd)
		if err != nil {
			return nil, err
		}
		recurrenceEnd = &end
	}

	return &createAppointment.Request{
		Date:          date,
		Time:          startTime,
		Client:        r.Client,
		Phone:         r.Phone,
		ServiceID:     r.ServiceID,
		Notes:         r.Notes,
		Recurrence:    r.Recurrence,
		RecurrenceEnd: recurrenceEnd,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	out := &AppointmentResponse{
		ID:              resp.ID,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.Time.String(),
		Client:          resp.Client,
		Phone:           resp.Phone,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Status:          resp.Status,
		Notes:           resp.Notes,
		Recurrence:      resp.Recurrence,
		OccurrenceCount: resp.OccurrenceCount,
		CreatedDates:    formatDates(resp.CreatedDates),
		SkippedDates:    formatDates(resp.SkippedDates),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.RecurrenceEnd != nil {
		end := resp.RecurrenceEnd.Format(domain.DateFormat)
		out.RecurrenceEnd = &end
	}

	return out
}

func formatDates(dates []time.Time) []string {
	if len(dates) == 0 {
		return nil
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(domain.DateFormat)
	}
	return out
}
