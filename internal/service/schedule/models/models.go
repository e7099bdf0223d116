package models

import (
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

// Request models

// DayInput is one day of a weekly schedule
type DayInput struct {
	DayOfWeek int    `json:"day_of_week"` // 0 = Sunday
	StartTime string `json:"start_time"`  // HH:MM
	EndTime   string `json:"end_time"`    // HH:MM, 24:00 allowed
	IsActive  bool   `json:"is_active"`
}

// UpdateWeekRequest replaces the whole week; exactly 7 days are required
type UpdateWeekRequest struct {
	Days []DayInput `json:"days"`
}

// CreateBlackoutRequest closes one date
type CreateBlackoutRequest struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Reason *string `json:"reason,omitempty"`
}

// Response models

// WindowResponse is one day of the weekly schedule
type WindowResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

// WeekResponse is the captain's weekly schedule ordered by day
type WeekResponse struct {
	Days []WindowResponse `json:"days"`
}

// BlackoutResponse is one blackout date
type BlackoutResponse struct {
	ID     uuid.UUID `json:"id"`
	Date   string    `json:"date"`
	Reason *string   `json:"reason,omitempty"`
}

// BlackoutListResponse lists blackout dates
type BlackoutListResponse struct {
	BlackoutDates []BlackoutResponse `json:"blackout_dates"`
}

// Conversion

func FromDomainWeek(windows []domain.AvailabilityWindow) *WeekResponse {
	resp := &WeekResponse{Days: make([]WindowResponse, 0, len(windows))}
	for _, w := range windows {
		resp.Days = append(resp.Days, WindowResponse{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			IsActive:  w.IsActive,
		})
	}
	return resp
}

func FromDomainBlackout(b *domain.BlackoutDate) *BlackoutResponse {
	return &BlackoutResponse{
		ID:     b.ID,
		Date:   b.BlackoutDate.Format(domain.DateFormat),
		Reason: b.Reason,
	}
}

func FromDomainBlackoutList(items []domain.BlackoutDate) *BlackoutListResponse {
	resp := &BlackoutListResponse{BlackoutDates: make([]BlackoutResponse, 0, len(items))}
	for i := range items {
		resp.BlackoutDates = append(resp.BlackoutDates, *FromDomainBlackout(&items[i]))
	}
	return resp
}
