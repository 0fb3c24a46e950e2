package list_availability

import (
	"net/http"

	"github.com/kappsme/appo/internal/api/handlers"
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

// Handle GET /api/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /availability - Failed to list windows: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Returned %d windows", len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
