package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("account already exists")
	ErrInsufficientCoins  = errors.New("insufficient coins")
	ErrServerNotFound     = errors.New("server not found")
	ErrServerExpired      = errors.New("server has expired")
	ErrServerNotActive    = errors.New("server is not active")
	ErrInvalidPlan        = errors.New("invalid plan selected")
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrExternalService    = errors.New("external service error")
	ErrDatabaseError      = errors.New("database error")
)
