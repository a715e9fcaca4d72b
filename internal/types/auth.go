// Package types provides type definitions for the data exchanged with the scoring backend.
package types

import (
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// SignupRequest is the body sent to POST /signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body sent to POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the body returned by /login and /signup on success.
type AuthResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// ErrorResponse is the body the backend returns for any rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Session is an authenticated identity: the bearer token and the name shown to the user.
type Session struct {
	Token       string `json:"token"`
	DisplayName string `json:"name"`
}

// Valid reports whether both halves of the session are present.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.DisplayName != ""
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
