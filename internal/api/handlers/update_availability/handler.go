package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kappsme/appo/internal/api/handlers"
	"github.com/kappsme/appo/internal/domain"
	availabilityService "github.com/kappsme/appo/internal/service/availability"
	"github.com/kappsme/appo/internal/service/availability/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidID            = "некорректный идентификатор окна"
	msgInvalidConfiguration = "некорректное окно доступности: день 0..6, время HH:MM, начало раньше конца, шаг > 0"
	msgWindowNotFound       = "окно доступности не найдено"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/availability/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /availability/{id} - Invalid id %q", rawID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrWindowNotFound):
			h.logger.Warn("PUT /availability/{id} - Window id=%d not found", id)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, domain.ErrInvalidConfiguration):
			h.logger.Warn("PUT /availability/{id} - Invalid window id=%d: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidConfiguration)

		default:
			h.logger.Error("PUT /availability/{id} - Failed to update window id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{id} - Window id=%d updated", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
