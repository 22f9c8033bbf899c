package auth

import "github.com/go-playground/validator/v10"

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

var validate = validator.New()

// ValidateSignUp checks the sign-up form before anything reaches the
// provider.
func ValidateSignUp(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
