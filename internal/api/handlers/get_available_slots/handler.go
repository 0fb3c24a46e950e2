package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kappsme/appo/internal/api/handlers"
	"github.com/kappsme/appo/internal/domain"
	getAvailableSlots "github.com/kappsme/appo/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidConfiguration = "некорректное окно доступности для этого дня"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/available-slots/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := mux.Vars(r)["date"]

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, domain.ErrInvalidConfiguration):
			h.logger.Warn("GET /available-slots - Invalid availability window for %s: %v", rawDate, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfiguration)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots for %s: %v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - %d slots for %s", len(result.Slots), rawDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
