// Path: pkg/utils/utils.go
package utils

import (
	"time"

	"github.com/google/uuid"
)

// GenerateTransactionID generates a unique transaction ID.
func GenerateTransactionID() string {
	return uuid.NewString()
}

// GenerateTokenID generates the jti of a session token.
func GenerateTokenID() string {
	return uuid.NewString()
}

// FormatTimestamp returns t in RFC3339 format, UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// GetCurrentTimestamp returns the current timestamp in RFC3339 format.
func GetCurrentTimestamp() string {
	return FormatTimestamp(time.Now())
}
