package triptypes

import (
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

// TripTypeResponse is a trip type as listed on the public booking page
type TripTypeResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Description        *string   `json:"description,omitempty"`
	DurationHours      float64   `json:"duration_hours"`
	PriceTotalCents    int64     `json:"price_total_cents"`
	DepositAmountCents int64     `json:"deposit_amount_cents"`
}

// ListResponse lists trip types
type ListResponse struct {
	TripTypes []TripTypeResponse `json:"trip_types"`
}

// DeleteResult tells whether the trip type was kept as inactive
type DeleteResult struct {
	ID          uuid.UUID `json:"id"`
	Deactivated bool      `json:"deactivated"`
}

func fromDomain(t *domain.TripType) TripTypeResponse {
	return TripTypeResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Description:        t.Description,
		DurationHours:      t.DurationHours,
		PriceTotalCents:    t.PriceTotalCents(),
		DepositAmountCents: t.DepositAmountCents(),
	}
}
