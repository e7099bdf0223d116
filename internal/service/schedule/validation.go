package schedule

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule/models"
	"github.com/ericfaux/dockslot-app-sub001/pkg/types"
)

// validateWeek accepts exactly one entry per weekday with start < end
func validateWeek(req *models.UpdateWeekRequest) ([]domain.AvailabilityWindow, error) {
	if len(req.Days) != domain.DaysInWeek {
		return nil, fmt.Errorf("%w: exactly %d days are required, got %d", ErrInvalidInput, domain.DaysInWeek, len(req.Days))
	}

	seen := make(map[int]bool, domain.DaysInWeek)
	windows := make([]domain.AvailabilityWindow, 0, domain.DaysInWeek)

	for _, d := range req.Days {
		if d.DayOfWeek < 0 || d.DayOfWeek >= domain.DaysInWeek {
			return nil, fmt.Errorf("%w: day_of_week must be between 0 and 6, got %d", ErrInvalidInput, d.DayOfWeek)
		}
		if seen[d.DayOfWeek] {
			return nil, fmt.Errorf("%w: day_of_week %d appears twice", ErrInvalidInput, d.DayOfWeek)
		}
		seen[d.DayOfWeek] = true

		start, err := types.NewTimeStringFromString(d.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d start_time must be HH:MM", ErrInvalidInput, d.DayOfWeek)
		}
		end, err := types.NewTimeStringFromString(d.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d end_time must be HH:MM", ErrInvalidInput, d.DayOfWeek)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: day %d start_time must be before end_time", ErrInvalidInput, d.DayOfWeek)
		}

		windows = append(windows, domain.AvailabilityWindow{
			DayOfWeek: d.DayOfWeek,
			StartTime: start,
			EndTime:   end,
			IsActive:  d.IsActive,
		})
	}

	return windows, nil
}

func validateBlackout(req *models.CreateBlackoutRequest) (time.Time, *string, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	var reason *string
	if req.Reason != nil {
		r := strings.TrimSpace(*req.Reason)
		if utf8.RuneCountInString(r) > domain.MaxBlackoutReasonLength {
			return time.Time{}, nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlackoutReasonLength)
		}
		if r != "" {
			reason = &r
		}
	}

	return date, reason, nil
}
