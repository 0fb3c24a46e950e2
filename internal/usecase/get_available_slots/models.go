package get_available_slots

import (
	"time"

	"github.com/kappsme/appo/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date                time.Time     // Дата, на которую запрашивались слоты
	SlotDurationMinutes int           // Шаг сетки слотов (0, если окна на этот день нет)
	Slots               []domain.Slot // Все слоты дня с признаком доступности
}
