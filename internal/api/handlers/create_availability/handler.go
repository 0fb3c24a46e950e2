package create_availability

import (
	"errors"
	"net/http"

	"github.com/kappsme/appo/internal/api/handlers"
	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/internal/service/availability/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidConfiguration = "некорректное окно доступности: день 0..6, время HH:MM, начало раньше конца, шаг > 0"
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

// Handle POST /api/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			h.logger.Warn("POST /availability - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfiguration)
			return
		}
		h.logger.Error("POST /availability - Failed to create window: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /availability - Window created: id=%d, day=%d", result.ID, result.DayOfWeek)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
