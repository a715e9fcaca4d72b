package session

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shivanky2822/resume-analyzer/internal/types"
)

// ValidationError is a local precondition failure. No request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthErrorKind distinguishes a rejected credential from an unreachable auth service.
type AuthErrorKind int

const (
	// AuthRejected means the backend refused the credentials and said why.
	AuthRejected AuthErrorKind = iota
	// AuthUnavailable means no usable answer came back from the backend.
	AuthUnavailable
)

// String returns the kind name
func (k AuthErrorKind) String() string {
	switch k {
	case AuthRejected:
		return "rejected"
	case AuthUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("AuthErrorKind(%d)", int(k))
	}
}

// ErrAuthUnavailable is the message shown when the auth service can't be reached.
const ErrAuthUnavailable = "authentication unavailable"

// AuthError is a failed login or signup.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// IsRejected reports whether err is an AuthError for refused credentials.
func IsRejected(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == AuthRejected
}

// fromValidator converts the first validator failure to a ValidationError.
func fromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch {
	case field == "Password" && fe.Tag() == "min":
		return &ValidationError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", types.MinPasswordLength)}
	case fe.Tag() == "email":
		return &ValidationError{Field: "email", Message: "Email address is not valid"}
	default:
		return &ValidationError{Field: lowerFirst(field), Message: fmt.Sprintf("%s is required", field)}
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}
