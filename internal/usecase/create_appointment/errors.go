package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidPhone возвращается, когда телефон не проходит валидацию
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlotConflict возвращается, когда время уже занято активной записью
	ErrSlotConflict = errors.New("time slot conflicts with an existing appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
