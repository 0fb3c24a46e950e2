package models

import (
	"errors"
	"time"

	"github.com/kappsme/appo/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetAppointmentsRequest запрос на получение списка записей
type GetAppointmentsRequest struct {
	Date   *time.Time `json:"date,omitempty"`   // Фильтр по дате (опционально)
	Status *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		Date: r.Date,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateAppointmentRequest частичное обновление записи (nil = поле не трогаем)
type UpdateAppointmentRequest struct {
	Client *string `json:"client,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Notes  *string `json:"notes,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"` // "2024-06-03"
	Time      string `json:"time"` // "10:00"
	Client    string `json:"client"`
	Phone     string `json:"phone"`
	ServiceID int64  `json:"serviceId"`
	Status    string `json:"status"`

	Recurrence          string  `json:"recurrence"`
	RecurrenceEnd       *string `json:"recurrenceEnd,omitempty"`
	ParentAppointmentID *int64  `json:"parentAppointmentId,omitempty"`

	// Денормализованные данные услуги
	ServiceName     *string `json:"serviceName,omitempty"`
	ServiceDuration *int    `json:"serviceDurationMinutes,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                  a.ID,
		Date:                a.Date.Format(domain.DateFormat),
		Time:                a.Time.String(),
		Client:              a.Client,
		Phone:               a.Phone,
		ServiceID:           a.ServiceID,
		Status:              string(a.Status),
		Recurrence:          string(a.Recurrence),
		ParentAppointmentID: a.ParentAppointmentID,
		ServiceName:         a.ServiceName,
		ServiceDuration:     a.ServiceDuration,
		Notes:               a.Notes,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}

	if a.RecurrenceEnd != nil {
		end := a.RecurrenceEnd.Format(domain.DateFormat)
		resp.RecurrenceEnd = &end
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appts)),
	}

	for _, appt := range appts {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
