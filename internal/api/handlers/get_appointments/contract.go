package get_appointments

import (
	"context"

	"github.com/kappsme/appo/internal/service/appointments/models"
)

type AppointmentsService interface {
	List(ctx context.Context, req *models.GetAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
