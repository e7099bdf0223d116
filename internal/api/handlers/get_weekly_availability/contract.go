package get_weekly_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeek(ctx context.Context, captainID uuid.UUID) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
