package models

import "errors"

// Validation rejections.
var (
	ErrInvalidAmount            = errors.New("amount must be positive")
	ErrNegativeBalance          = errors.New("initial balance cannot be negative")
	ErrNilAccount               = errors.New("account is nil")
	ErrInvalidTransfer          = errors.New("transfer target must be another account")
	ErrBlankName                = errors.New("name cannot be blank")
	ErrBlankEmail               = errors.New("email cannot be blank")
	ErrBlankPassword            = errors.New("password cannot be blank")
	ErrInvalidRole              = errors.New("unknown user role")
	ErrBlankTransactionID       = errors.New("transaction id cannot be blank")
	ErrInvalidTransactionType   = errors.New("unknown transaction type")
	ErrInvalidTransactionStatus = errors.New("unknown transaction status")
	ErrMissingSource            = errors.New("transaction requires a source account")
	ErrMissingTarget            = errors.New("transaction requires a target account")
	ErrSameAccount              = errors.New("source and target accounts must be different")
)

// State rejections: the request is well formed but the current status forbids it.
var (
	ErrAccountUnavailable   = errors.New("account is suspended or closed")
	ErrAccountNotVerified   = errors.New("account is not verified")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrAccountAlreadyLinked = errors.New("account already belongs to this user")
	ErrAccountOwned         = errors.New("account is owned by another user")
	ErrAccountNotLinked     = errors.New("account does not belong to this user")
)
