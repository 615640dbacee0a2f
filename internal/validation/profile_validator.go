package validation

import (
	"jobsite-tracker/internal/domain"
)

// ProfileValidator validates user profiles
type ProfileValidator struct {
	validator *Validator
}

// NewProfileValidator creates a new profile validator
func NewProfileValidator(v *Validator) *ProfileValidator {
	return &ProfileValidator{validator: v}
}

// ValidateProfile checks name, email and role
func (pv *ProfileValidator) ValidateProfile(p domain.Profile) error {
	validationError := NewValidationError()

	if !pv.validator.IsNonEmptyString(p.Name) {
		validationError.AddRequiredError("name")
	} else if !pv.validator.IsValidStringLength(p.Name, 1, maxNameLength) {
		validationError.AddInvalidLengthError("name", p.Name, 1, maxNameLength)
	}

	if !pv.validator.IsNonEmptyString(p.Email) {
		validationError.AddRequiredError("email")
	} else if !pv.validator.IsValidEmail(p.Email) {
		validationError.AddInvalidFormatError("email", p.Email, "name@example.com")
	}

	if !p.Role.IsValid() {
		validationError.AddInvalidValueError("role", string(p.Role), "must be user or admin")
	}

	return validationError.OrNil()
}
