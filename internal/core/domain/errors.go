package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrInvalidRole       = errors.New("invalid role")
)

// Transaction errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrFlowFinished        = errors.New("laundry flow already finished")
	ErrAlreadyClaimed      = errors.New("laundry already claimed")
	ErrInsufficientStock   = errors.New("insufficient stock")
)
