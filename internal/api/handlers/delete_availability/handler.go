package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kappsme/appo/internal/api/handlers"
	availabilityService "github.com/kappsme/appo/internal/service/availability"
)

const (
	msgInvalidID      = "некорректный идентификатор окна"
	msgWindowNotFound = "окно доступности не найдено"
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

// Handle DELETE /api/availability/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /availability/{id} - Invalid id %q", rawID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, availabilityService.ErrWindowNotFound) {
			h.logger.Warn("DELETE /availability/{id} - Window id=%d not found", id)
			handlers.RespondNotFound(w, msgWindowNotFound)
			return
		}
		h.logger.Error("DELETE /availability/{id} - Failed to delete window id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /availability/{id} - Window id=%d deleted", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
