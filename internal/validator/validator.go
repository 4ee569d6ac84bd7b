package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "coworking/internal/errors"
	"coworking/internal/utils"
)

type Validator struct {
	validate *validator.Validate
}

// New builds a validator with the time and weekday rules used by request payloads.
// Field names in errors follow the json tags.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"hhmm":     validateHHMM,
		"isodate":  validateISODate,
		"weekdays": validateWeekdays,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %q validator: %v", tag, err))
		}
	}

	return &Validator{validate: v}
}

func validateHHMM(fl validator.FieldLevel) bool {
	return utils.ValidHHMM(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(utils.DateLayout, fl.Field().String())
	return err == nil
}

func validateWeekdays(fl validator.FieldLevel) bool {
	days, ok := fl.Field().Interface().([]int)
	if !ok || len(days) == 0 {
		return false
	}
	for _, d := range days {
		if !utils.ValidWeekday(d) {
			return false
		}
	}
	return true
}

// Struct validates s and returns a 400 *HTTPError listing every failing field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation(translate(validationErrs))
	}
	return apperrors.Internal(err)
}

func translate(errs validator.ValidationErrors) []apperrors.FieldError {
	fields := make([]apperrors.FieldError, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			if err.Kind() == reflect.String {
				message = fmt.Sprintf("%s must be at least %s characters", field, err.Param())
			} else {
				message = fmt.Sprintf("%s must be at least %s", field, err.Param())
			}
		case "max":
			if err.Kind() == reflect.String {
				message = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
			} else {
				message = fmt.Sprintf("%s must be at most %s", field, err.Param())
			}
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(err.Param(), " ", ", "))
		case "hhmm":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", field)
		case "isodate":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		case "weekdays":
			message = fmt.Sprintf("%s must contain weekday numbers between 0 (Sunday) and 6 (Saturday)", field)
		case "dive":
			message = fmt.Sprintf("%s contains an invalid value", field)
		}

		fields = append(fields, apperrors.FieldError{
			Field:   field,
			Message: message,
		})
	}

	return fields
}
