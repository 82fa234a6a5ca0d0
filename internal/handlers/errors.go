package handlers

import (
	"bank-core/internal/models"
	"bank-core/internal/services"
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	notFoundErrors = []error{
		services.ErrAccountNotFound,
		services.ErrUserNotFound,
		services.ErrTransactionNotFound,
	}
	unauthorizedErrors = []error{
		services.ErrInvalidCredentials,
		services.ErrNoSession,
		services.ErrInvalidToken,
		services.ErrTokenRevoked,
	}
	conflictErrors = []error{
		services.ErrEmailTaken,
		services.ErrAccountExists,
		services.ErrInvalidTransition,
		models.ErrAccountUnavailable,
		models.ErrAccountNotVerified,
		models.ErrInsufficientFunds,
		models.ErrAccountAlreadyLinked,
		models.ErrAccountOwned,
		models.ErrAccountNotLinked,
	}
	validationErrors = []error{
		services.ErrNumberOutOfRange,
		models.ErrInvalidAmount,
		models.ErrNegativeBalance,
		models.ErrNilAccount,
		models.ErrInvalidTransfer,
		models.ErrBlankName,
		models.ErrBlankEmail,
		models.ErrBlankPassword,
		models.ErrInvalidRole,
		models.ErrBlankTransactionID,
		models.ErrInvalidTransactionType,
		models.ErrInvalidTransactionStatus,
		models.ErrMissingSource,
		models.ErrMissingTarget,
		models.ErrSameAccount,
	}
)

// toAppError maps a core error onto an HTTP status. Unknown errors are 500s.
func toAppError(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	code := fiber.StatusInternalServerError
	switch {
	case isAny(err, notFoundErrors):
		code = fiber.StatusNotFound
	case isAny(err, unauthorizedErrors):
		code = fiber.StatusUnauthorized
	case isAny(err, conflictErrors):
		code = fiber.StatusConflict
	case isAny(err, validationErrors):
		code = fiber.StatusBadRequest
	}

	return &AppError{
		Code:    code,
		Message: message,
		Details: err.Error(),
		Err:     err,
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
