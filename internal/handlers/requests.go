package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// LoginRequest is the login form.
type LoginRequest struct {
	UserName string `form:"userName" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LookupRequest is the lookup form.
type LookupRequest struct {
	LegacyID string `form:"legacyId"`
}

// SearchRequest is the management search form.
type SearchRequest struct {
	SearchTerm string `form:"searchTerm"`
}
