// Path: internal/models/models.go
package models

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

// Views returned to API clients.

type UserView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
	Accounts  []int  `json:"accounts"`
	CreatedAt string `json:"created_at"`
}

type AccountView struct {
	Number    int             `json:"account_number"`
	Balance   decimal.Decimal `json:"balance"`
	Status    AccountStatus   `json:"status"`
	OwnerID   *int            `json:"owner_id,omitempty"`
	CreatedAt string          `json:"created_at"`
}

type TransactionView struct {
	ID        string            `json:"id"`
	Type      TransactionType   `json:"type"`
	Amount    decimal.Decimal   `json:"amount"`
	Source    *int              `json:"source_account,omitempty"`
	Target    *int              `json:"target_account,omitempty"`
	Status    TransactionStatus `json:"status"`
	Timestamp string            `json:"timestamp"`
}

// Requests.

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateAccountRequest struct {
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type TransactionRequest struct {
	AccountID int             `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	FromID int             `json:"from_id"`
	ToID   int             `json:"to_id"`
	Amount decimal.Decimal `json:"amount"`
}

// Claims identify the session behind a token.
type Claims struct {
	UserID int  `json:"user_id"`
	Role   Role `json:"role"`
	jwt.RegisteredClaims
}
