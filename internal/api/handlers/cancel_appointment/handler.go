package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kappsme/appo/internal/api/handlers"
	appointmentsService "github.com/kappsme/appo/internal/service/appointments"
)

const (
	msgInvalidID           = "некорректный идентификатор записи"
	msgAppointmentNotFound = "запись не найдена"
	msgAlreadyCancelled    = "запись уже отменена"
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

// Handle DELETE /api/appointments/{id}?cancel_all=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /appointments/{id} - Invalid id %q", rawID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	cancelAll := r.URL.Query().Get("cancel_all") == "true"

	if err := h.service.Cancel(r.Context(), id, cancelAll); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment id=%d not found", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrAlreadyCancelled):
			h.logger.Warn("DELETE /appointments/{id} - Appointment id=%d already cancelled", id)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to cancel appointment id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment id=%d cancelled, cancelAll=%v", id, cancelAll)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
