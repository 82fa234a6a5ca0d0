// Path: internal/models/account.go
package models

import (
	"bank-core/pkg/utils"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus governs which money operations an account accepts.
type AccountStatus string

const (
	StatusUnverified AccountStatus = "UNVERIFIED"
	StatusVerified   AccountStatus = "VERIFIED"
	StatusSuspended  AccountStatus = "SUSPENDED"
	StatusClosed     AccountStatus = "CLOSED"
)

// Account holds a balance and a lifecycle status. All methods are safe for
// concurrent use. Account numbers must be unique: Transfer orders its locks by them.
type Account struct {
	number    int
	createdAt time.Time

	mu      sync.Mutex
	balance decimal.Decimal
	status  AccountStatus
	ownerID int
	owned   bool
	history []*Transaction
}

// NewAccount creates an unverified account with the given number.
func NewAccount(number int, initialBalance decimal.Decimal) (*Account, error) {
	if initialBalance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	return &Account{
		number:    number,
		createdAt: time.Now(),
		balance:   initialBalance,
		status:    StatusUnverified,
	}, nil
}

func (a *Account) Number() int { return a.number }

func (a *Account) CreatedAt() time.Time { return a.createdAt }

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) Status() AccountStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// IsActive reports whether the account accepts withdrawals.
func (a *Account) IsActive() bool {
	return a.Status() == StatusVerified
}

// OwnerID returns the owning user id, if any.
func (a *Account) OwnerID() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ownerID, a.owned
}

// ===== Money operations =====

// Deposit adds amount to the balance. Unverified accounts accept deposits;
// suspended and closed ones do not.
func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkDeposit(amount); err != nil {
		return err
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw subtracts amount from the balance. Only verified accounts allow it.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWithdraw(amount); err != nil {
		return err
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Transfer moves amount from a to target. Both sides are validated under
// both locks before either balance changes, so a failed transfer leaves
// both balances exactly as they were.
func (a *Account) Transfer(target *Account, amount decimal.Decimal) error {
	if target == nil || target == a {
		return ErrInvalidTransfer
	}

	first, second := a, target
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := a.checkWithdraw(amount); err != nil {
		return err
	}
	if err := target.checkDeposit(amount); err != nil {
		return err
	}

	a.balance = a.balance.Sub(amount)
	target.balance = target.balance.Add(amount)
	return nil
}

// checkDeposit requires a.mu.
func (a *Account) checkDeposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if a.status == StatusClosed || a.status == StatusSuspended {
		return ErrAccountUnavailable
	}
	return nil
}

// checkWithdraw requires a.mu.
func (a *Account) checkWithdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if a.status != StatusVerified {
		return ErrAccountNotVerified
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// ===== State transitions =====
// Each transition reports whether the status actually changed. An invalid
// transition is a no-op, not an error.

// Verify moves UNVERIFIED to VERIFIED.
func (a *Account) Verify() bool {
	return a.transition(StatusVerified, StatusUnverified)
}

// Suspend moves VERIFIED to SUSPENDED.
func (a *Account) Suspend() bool {
	return a.transition(StatusSuspended, StatusVerified)
}

// Appeal moves SUSPENDED back to VERIFIED.
func (a *Account) Appeal() bool {
	return a.transition(StatusVerified, StatusSuspended)
}

// Close moves any open account to CLOSED. CLOSED is terminal.
func (a *Account) Close() bool {
	return a.transition(StatusClosed, StatusUnverified, StatusVerified, StatusSuspended)
}

func (a *Account) transition(to AccountStatus, from ...AccountStatus) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range from {
		if a.status == s {
			a.status = to
			return true
		}
	}
	return false
}

// ===== Transaction history =====

// AddTransaction appends tx to the history. A nil tx is ignored.
func (a *Account) AddTransaction(tx *Transaction) {
	if tx == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, tx)
}

// TransactionHistory returns the recorded transactions in append order.
func (a *Account) TransactionHistory() []*Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// ===== Ownership =====
// Only User changes ownership, so these stay unexported.

// assignToUser succeeds if the account is unowned or already owned by userID.
func (a *Account) assignToUser(userID int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.owned && a.ownerID != userID {
		return false
	}
	a.ownerID = userID
	a.owned = true
	return true
}

func (a *Account) clearOwner() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ownerID = 0
	a.owned = false
}

// View returns a point-in-time copy suitable for JSON.
func (a *Account) View() AccountView {
	a.mu.Lock()
	defer a.mu.Unlock()
	v := AccountView{
		Number:    a.number,
		Balance:   a.balance,
		Status:    a.status,
		CreatedAt: utils.FormatTimestamp(a.createdAt),
	}
	if a.owned {
		id := a.ownerID
		v.OwnerID = &id
	}
	return v
}
