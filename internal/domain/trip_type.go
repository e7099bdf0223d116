package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// TripType is a bookable offering of a captain
type TripType struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	Description   *string
	DurationHours float64
	PriceTotal    float64
	DepositAmount float64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Duration converts DurationHours to a time.Duration rounded to the minute
func (t *TripType) Duration() time.Duration {
	return time.Duration(math.Round(t.DurationHours*60)) * time.Minute
}

func (t *TripType) PriceTotalCents() int64 {
	return ToCents(t.PriceTotal)
}

func (t *TripType) DepositAmountCents() int64 {
	return ToCents(t.DepositAmount)
}

// ToCents converts a currency amount to integer cents
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
