package create_appointment

import (
	"time"

	"github.com/kappsme/appo/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Date          time.Time        // Дата записи (без времени)
	Time          types.TimeString // Время начала ("10:00")
	Client        string           // Имя клиента
	Phone         string           // Телефон клиента
	ServiceID     int64            // ID услуги
	Notes         *string          // Заметки (опционально)
	Recurrence    string           // Тип повторения: "", "none", "weekly", "monthly"
	RecurrenceEnd *time.Time       // Последняя дата повторения (обязательна при повторении)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	Date            time.Time
	Time            types.TimeString
	Client          string
	Phone           string
	ServiceID       int64
	ServiceName     *string
	Status          string
	Notes           *string
	Recurrence      string
	RecurrenceEnd   *time.Time
	OccurrenceCount int         // Сколько дат покрывает серия, включая первую
	CreatedDates    []time.Time // Даты реально созданных повторов
	SkippedDates    []time.Time // Даты повторов, пропущенные из-за занятого времени
	CreatedAt       time.Time
}
