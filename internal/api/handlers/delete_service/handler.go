package delete_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kappsme/appo/internal/api/handlers"
	catalogService "github.com/kappsme/appo/internal/service/catalog"
)

const (
	msgInvalidID       = "некорректный идентификатор услуги"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /services/{id} - Invalid id %q", rawID)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalogService.ErrServiceNotFound) {
			h.logger.Warn("DELETE /services/{id} - Service id=%d not found", id)
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("DELETE /services/{id} - Failed to deactivate service id=%d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service id=%d deactivated", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
