package models

import (
	"time"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	DayOfWeek           int    `json:"dayOfWeek"` // 0=Пн .. 6=Вс
	StartTime           string `json:"startTime"` // "09:00"
	EndTime             string `json:"endTime"`   // "18:00"
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	Enabled             *bool  `json:"enabled,omitempty"` // По умолчанию true
}

// UpdateWindowRequest запрос на обновление окна (nil = поле не трогаем)
type UpdateWindowRequest struct {
	DayOfWeek           *int    `json:"dayOfWeek,omitempty"`
	StartTime           *string `json:"startTime,omitempty"`
	EndTime             *string `json:"endTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	Enabled             *bool   `json:"enabled,omitempty"`
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID                  int64     `json:"id"`
	DayOfWeek           int       `json:"dayOfWeek"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	Enabled             bool      `json:"enabled"`
	CreatedAt           time.Time `json:"createdAt"`
}

// WindowListResponse ответ со списком окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// ToDomainWindow конвертирует запрос в domain модель (без валидации)
func (r *CreateWindowRequest) ToDomainWindow() *domain.Availability {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	return &domain.Availability{
		DayOfWeek:           r.DayOfWeek,
		StartTime:           types.TimeString(r.StartTime),
		EndTime:             types.TimeString(r.EndTime),
		SlotDurationMinutes: r.SlotDurationMinutes,
		Enabled:             enabled,
	}
}

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.Availability) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:                  w.ID,
		DayOfWeek:           w.DayOfWeek,
		StartTime:           w.StartTime.String(),
		EndTime:             w.EndTime.String(),
		SlotDurationMinutes: w.SlotDurationMinutes,
		Enabled:             w.Enabled,
		CreatedAt:           w.CreatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.Availability) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		if wResp := FromDomainWindow(w); wResp != nil {
			resp.Windows = append(resp.Windows, *wResp)
		}
	}

	return resp
}
