package delete_blackout_date

import (
	"context"

	"github.com/google/uuid"
)

type ScheduleService interface {
	DeleteBlackout(ctx context.Context, captainID, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
