package get_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/kappsme/appo/internal/api/handlers"
	"github.com/kappsme/appo/internal/domain"
	appointmentsService "github.com/kappsme/appo/internal/service/appointments"
	"github.com/kappsme/appo/internal/service/appointments/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus = "некорректный статус, допустимы active, cancelled, completed"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/appointments?date=YYYY-MM-DD&status=active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetAppointmentsRequest{}

	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, appointmentsService.ErrInvalidInput) {
			h.logger.Warn("GET /appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Returned %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
