package order

import (
	"errors"
	"reflect"
	"strings"

	"bitbucket.org/dropcars/vendor-gateway/internal/pricing"
	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("car_type", func(fl validator.FieldLevel) bool {
		return trip.CarType(fl.Field().String()).IsKnown()
	})

	return v
}

var fieldMessages = map[string]string{
	"car_type":  "Please select a valid car type",
	"hours":     "Max time to assign order can not be negative",
	"minutes":   "Max time to assign order can not be negative",
	"km_range":  "Please select one of the available packages",
	"send_to":   "Please select who receives the order",
	"near_city": "Please select at least one city",
}

// Validate runs the checks in the order the form presents them and reports
// the first failure only.
func Validate(form Form) *schema.ResponseError {
	if strings.TrimSpace(form.CustomerName) == "" {
		return schema.NewValidationError("customer_name", "Please enter customer name")
	}

	if strings.TrimSpace(form.CustomerNumber) == "" {
		return schema.NewValidationError("customer_number", "Please enter customer number")
	}

	if position, empty := form.Locations.FirstEmpty(); empty {
		return schema.NewValidationError("pickup_drop_location", "Please select "+form.Locations.LabelFor(position))
	}

	fields := pricing.FieldsFor(form.TripType(), form.TollIncluded)
	for _, field := range fields.Required {
		if !form.Pricing.Has(field) {
			return schema.NewValidationError(string(field), field.Prompt())
		}
	}

	return structErrors(validate.Struct(form))
}

func structErrors(err error) *schema.ResponseError {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return schema.NewValidationError("", err.Error())
	}

	first := fieldErrors[0]

	message, ok := fieldMessages[first.Field()]
	if !ok {
		message = "Please enter a valid " + strings.ReplaceAll(first.Field(), "_", " ")
	}

	return schema.NewValidationError(first.Field(), message)
}
