package list_blackout_dates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlackouts(ctx context.Context, captainID uuid.UUID, from *time.Time) (*models.BlackoutListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
