package create_blackout_date

import (
	"context"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlackout(ctx context.Context, captainID uuid.UUID, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
