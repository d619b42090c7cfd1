package serverutils

import (
	"errors"

	"markit-notes-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks `validate` struct tags and reports the first failing field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.Validationf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
	return apperror.Validation(err.Error())
}

