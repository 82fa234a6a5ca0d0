package services

import "errors"

var (
	ErrNilSession          = errors.New("session handle is nil")
	ErrNoSession           = errors.New("no user is logged in")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account number already registered")
	ErrNumberOutOfRange    = errors.New("account number out of range")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenRevoked        = errors.New("token has been revoked")
)
