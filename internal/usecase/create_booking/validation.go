package create_booking

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/types"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-().]{7,20}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// parsedRequest holds the typed values of a validated request
type parsedRequest struct {
	captainID  uuid.UUID
	tripTypeID uuid.UUID
	date       time.Time
	startTime  types.TimeString
}

// normalize trims free-text fields in place
func normalize(req *Request) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.GuestEmail = strings.TrimSpace(req.GuestEmail)
	req.GuestPhone = trimOptional(req.GuestPhone)
	req.SpecialRequests = trimOptional(req.SpecialRequests)
	for i := range req.Passengers {
		req.Passengers[i].FullName = strings.TrimSpace(req.Passengers[i].FullName)
		req.Passengers[i].Email = trimOptional(req.Passengers[i].Email)
		req.Passengers[i].Phone = trimOptional(req.Passengers[i].Phone)
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// validateRequest checks guest input before any storage access
func validateRequest(req *Request, maxPartySize int) (*parsedRequest, error) {
	normalize(req)

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describe(fieldErrs))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > maxPartySize {
		return nil, fmt.Errorf("%w: party_size must be between %d and %d", ErrCapacity, domain.MinPartySize, maxPartySize)
	}
	if extra := len(req.Passengers); extra > req.PartySize-1 {
		return nil, fmt.Errorf("%w: %d additional passengers exceed party_size %d", ErrCapacity, extra, req.PartySize)
	}

	date, err := time.Parse(domain.DateFormat, req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	startTime, err := types.NewTimeStringFromString(req.ScheduledTime)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_time must be HH:MM", ErrInvalidInput)
	}

	return &parsedRequest{
		captainID:  uuid.MustParse(req.CaptainID),
		tripTypeID: uuid.MustParse(req.TripTypeID),
		date:       date,
		startTime:  startTime,
	}, nil
}

func describe(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fieldName(fe)+": "+message(fe))
	}
	return strings.Join(msgs, "; ")
}

// fieldName drops the root struct name: "Request.passengers[0].full_name" -> "passengers[0].full_name"
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "uuid":
		return "must be a valid UUID"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "datetime":
		switch fe.Param() {
		case domain.DateFormat:
			return "must be a date in YYYY-MM-DD format"
		case domain.TimeFormat:
			return "must be a time in HH:MM format"
		}
		return "has an invalid format"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
