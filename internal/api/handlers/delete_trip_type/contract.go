package delete_trip_type

import (
	"context"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/service/triptypes"
)

type TripTypeService interface {
	Delete(ctx context.Context, captainID, id uuid.UUID) (*triptypes.DeleteResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
