package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"

	"vikendica/constants"
	"vikendica/errors"
	"vikendica/models"
)

var (
	once     sync.Once
	validate *playground.Validate
)

func engine() *playground.Validate {
	once.Do(func() {
		validate = playground.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("reservation_status", func(fl playground.FieldLevel) bool {
			_, ok := models.ParseReservationStatus(fl.Field().String())
			return ok
		})
	})
	return validate
}

// Struct checks the validate tags of a request DTO. Failures come back as InvalidInput
// naming every offending field.
func Struct(s interface{}) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(playground.ValidationErrors)
	if !ok {
		return errors.InvalidInput(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, describe(fe))
	}
	return errors.InvalidInput("Invalid input: " + strings.Join(messages, "; "))
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "reservation_status":
		return fmt.Sprintf("%s must be one of pending, confirmed, cancelled, completed, expired", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns UTC midnight of the calendar day as
// written, whatever the offset.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.InvalidInput("date is required")
	}

	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, errors.InvalidInput(fmt.Sprintf("invalid date %q", value))
		}
	}
	return NormalizeDate(t), nil
}

// NormalizeDate keeps the calendar day of t in its own location and returns it as midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDateRange parses both ends and rejects ranges where end is not after start.
func ParseDateRange(startValue, endValue string) (time.Time, time.Time, error) {
	start, err := ParseDate(startValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.InvalidInput("End date must be after start date")
	}
	return start, end, nil
}
