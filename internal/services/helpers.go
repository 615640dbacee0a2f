package services

import (
	stderrors "errors"

	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/validation"
)

// invalid wraps a validator result so callers see one field-by-field message
func invalid(err error) error {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return errors.NewValidationError(err.Error(), err)
}

// denied returns a permission error for an entity the actor does not own
func denied(operation, resource string, id int64) error {
	return errors.NewPermissionError(operation, resource).WithContext("id", id)
}
