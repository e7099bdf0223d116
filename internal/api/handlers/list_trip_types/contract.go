package list_trip_types

import (
	"context"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/service/triptypes"
)

type TripTypeService interface {
	ListActive(ctx context.Context, captainID uuid.UUID) (*triptypes.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
