package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO's validate tags and converts the first
// violation into a client-facing ValidationError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return NewValidationError(fmt.Sprintf(
			"field '%s' failed validation on '%s'", first.Field(), first.Tag(),
		))
	}
	return NewValidationError("invalid request")
}
