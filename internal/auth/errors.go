package auth

import (
	"errors"
	"fmt"
)

// Provider error codes.
const (
	CodeUserNotFound       = "user-not-found"
	CodeWrongPassword      = "wrong-password"
	CodeEmailAlreadyInUse  = "email-already-in-use"
	CodeInvalidEmail       = "invalid-email"
	CodeNetworkFailed      = "network-request-failed"
	CodeInvalidResetToken  = "invalid-reset-token"
	CodeProviderNotEnabled = "provider-not-enabled"
)

// User-visible messages.
const (
	MsgUserNotFound     = "No account found with this email"
	MsgWrongPassword    = "Incorrect password"
	MsgEmailInUse       = "Email already in use"
	MsgInvalidEmail     = "Invalid email address"
	MsgGeneric          = "Authentication failed. Please try again."
	MsgFederatedFailed  = "Google sign-in failed. Please try again."
	MsgPasswordMismatch = "Passwords don't match"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

var (
	// ErrPasswordMismatch is returned when the confirmation differs.
	ErrPasswordMismatch = errors.New("passwords don't match")
	// ErrPasswordTooShort is returned for passwords under MinPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrFederated marks every failure of a federated sign-in.
	ErrFederated = errors.New("federated sign-in failed")
	// ErrProviderUnavailable is returned when federated sign-in is not configured.
	ErrProviderUnavailable = errors.New("federated sign-in is not configured")
)

// ProviderError is a classified failure reported by an identity provider.
type ProviderError struct {
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth/%s: %v", e.Code, e.Err)
	}
	return "auth/" + e.Code
}

func (e *ProviderError) Unwrap() error { return e.Err }

func providerErr(code string, err error) error {
	return &ProviderError{Code: code, Err: err}
}

// CodeOf returns the provider code carried by err, or "".
func CodeOf(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// Message maps an auth error onto the fixed set of messages shown to
// users. Unclassified errors get the generic message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrPasswordMismatch) {
		return MsgPasswordMismatch
	}
	if errors.Is(err, ErrPasswordTooShort) {
		return MsgPasswordTooShort
	}
	if errors.Is(err, ErrFederated) {
		return MsgFederatedFailed
	}
	switch CodeOf(err) {
	case CodeUserNotFound:
		return MsgUserNotFound
	case CodeWrongPassword:
		return MsgWrongPassword
	case CodeEmailAlreadyInUse:
		return MsgEmailInUse
	case CodeInvalidEmail:
		return MsgInvalidEmail
	default:
		return MsgGeneric
	}
}
