package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roomgrid/internal/calendar"
	"roomgrid/pkg/logger"
	"roomgrid/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// BookingValidator checks snapshot records. Records come from a backend this
// service does not own, so callers report failures instead of dropping data.
type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("timestamp", validateTimestamp); err != nil {
		log.Fatal("Failed to register 'timestamp' validator",
			"error", err,
		)
	}

	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validateTimestamp(fl validator.FieldLevel) bool {
	_, err := calendar.ParseTimestamp(fl.Field().String(), time.UTC)
	return err == nil
}

// Validate expects a booking whose status has already been normalized.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	start, _ := calendar.ParseTimestamp(booking.StartTime, time.UTC)
	end, _ := calendar.ParseTimestamp(booking.EndTime, time.UTC)
	if !end.After(start) {
		return ValidationErrors{
			ValidationError{
				Field:   "EndTime",
				Message: "end_time must be after start_time",
			},
		}
	}

	return nil
}

// Report validates every booking and logs the invalid ones. It returns how
// many failed; the bookings themselves are left untouched.
func (v *BookingValidator) Report(bookings []model.Booking) int {
	invalid := 0
	for i := range bookings {
		if err := v.Validate(&bookings[i]); err != nil {
			invalid++
			v.logger.Warn("Booking record failed validation",
				"booking_id", bookings[i].ID,
				"room_id", bookings[i].RoomID,
				"error", err,
			)
		}
	}
	return invalid
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "timestamp":
			message = fmt.Sprintf("%s must be an ISO-8601 timestamp", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +5511987654321)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
