package validation

import (
	"errors"
	"fmt"

	"fjelldrift/internal/domain"
	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/utils"

	"github.com/go-playground/validator/v10"
)

var subscriptionTypes = map[string]bool{
	models.SubscriptionAnnual: true,
	models.SubscriptionWeekly: true,
}

// BookingValidator checks plow booking payloads before they reach the
// repository.
type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{validate: validator.New()}
}

// Validate returns a domain.ValidationError describing the first
// problem found, or nil.
func (v *BookingValidator) Validate(b models.PlowBooking) error {
	if err := v.validate.Struct(b); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return domain.ValidationError{
				Field: fe.Field(),
				Msg:   translateTag(fe),
			}
		}
		return domain.ValidationError{Msg: err.Error()}
	}

	if !subscriptionTypes[b.SubscriptionType] {
		return domain.ValidationError{
			Field: "subscription_type",
			Msg: fmt.Sprintf("must be %q or %q",
				models.SubscriptionAnnual, models.SubscriptionWeekly),
		}
	}

	if _, err := utils.ParseFlexible(b.ArrivalDate, nil); err != nil {
		return domain.ValidationError{Field: "arrival_date", Msg: "must be a valid date (YYYY-MM-DD)"}
	}
	if b.ArrivalTime != "" {
		if _, err := utils.ParseClock(b.ArrivalTime); err != nil {
			return domain.ValidationError{Field: "arrival_time", Msg: "must be a valid time (HH:MM or HH:MM:SS)"}
		}
	}
	if b.DepartureDate != "" {
		if _, err := utils.ParseFlexible(b.DepartureDate, nil); err != nil {
			return domain.ValidationError{Field: "departure_date", Msg: "must be a valid date (YYYY-MM-DD)"}
		}
	}
	if b.DepartureTime != "" {
		if _, err := utils.ParseClock(b.DepartureTime); err != nil {
			return domain.ValidationError{Field: "departure_time", Msg: "must be a valid time (HH:MM or HH:MM:SS)"}
		}
	}

	// One-off bookings must not end before they start.
	if b.DepartureDate != "" {
		arrival, err1 := utils.ParseFlexible(b.ArrivalDate, nil)
		departure, err2 := utils.ParseFlexible(b.DepartureDate, nil)
		if err1 == nil && err2 == nil && utils.DayStart(departure, nil).Before(utils.DayStart(arrival, nil)) {
			return domain.ValidationError{Field: "departure_date", Msg: "cannot be before arrival_date"}
		}
	}

	return nil
}

func translateTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
