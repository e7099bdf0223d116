package get_guest_booking

import (
	"context"

	"github.com/ericfaux/dockslot-app-sub001/internal/service/bookings/models"
)

type BookingService interface {
	GetByGuestToken(ctx context.Context, token string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
