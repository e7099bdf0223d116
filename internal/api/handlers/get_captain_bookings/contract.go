package get_captain_bookings

import (
	"context"

	"github.com/ericfaux/dockslot-app-sub001/internal/service/bookings/models"
)

type BookingService interface {
	GetCaptainBookings(ctx context.Context, req *models.GetCaptainBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
