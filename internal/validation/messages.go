package validation

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Messages clients already match on. Keyed by "<json field>.<tag>".
var fixedMessages = map[string]string{
	"username.required":    "username must not be blank",
	"first_name.required":  "first_name must not be empty",
	"postal_code.required": "Postal Code is required",
	"name.min":             "name must be at least 3 characters",
	"password.min":         "password must be at least 5 characters",
}

func message(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		if fe.Param() == "0" {
			return field + " must be a positive number"
		}
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if isString(fe) {
			if fe.Param() == "1" {
				return field + " must not be empty"
			}
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString(fe) {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func isString(fe validator.FieldError) bool {
	k := fe.Kind()
	if k == reflect.Ptr && fe.Type() != nil {
		k = fe.Type().Elem().Kind()
	}
	return k == reflect.String
}
