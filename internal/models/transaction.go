// Path: internal/models/transaction.go
package models

import (
	"bank-core/pkg/utils"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxDeposit  TransactionType = "DEPOSIT"
	TxWithdraw TransactionType = "WITHDRAW"
	TxTransfer TransactionType = "TRANSFER"
)

type TransactionStatus string

const (
	TxPending TransactionStatus = "PENDING"
	TxSuccess TransactionStatus = "SUCCESS"
	TxFailed  TransactionStatus = "FAILED"
)

// Transaction describes a requested money movement. It can only be built
// through NewTransaction, so it is always valid. Its status moves from
// PENDING to SUCCESS or FAILED once.
type Transaction struct {
	id        string
	txType    TransactionType
	amount    decimal.Decimal
	source    *int
	target    *int
	timestamp time.Time

	mu     sync.Mutex
	status TransactionStatus
}

// NewTransaction creates a pending transaction with a generated id.
func NewTransaction(txType TransactionType, amount decimal.Decimal, source, target *int) (*Transaction, error) {
	return NewTransactionWithID(utils.GenerateTransactionID(), txType, amount, source, target)
}

// NewTransactionWithID creates a pending transaction with the given id.
func NewTransactionWithID(id string, txType TransactionType, amount decimal.Decimal, source, target *int) (*Transaction, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrBlankTransactionID
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := validateAccountRefs(txType, source, target); err != nil {
		return nil, err
	}

	return &Transaction{
		id:        id,
		txType:    txType,
		amount:    amount,
		source:    copyRef(source),
		target:    copyRef(target),
		timestamp: time.Now(),
		status:    TxPending,
	}, nil
}

func validateAccountRefs(txType TransactionType, source, target *int) error {
	switch txType {
	case TxDeposit:
		if target == nil {
			return ErrMissingTarget
		}
	case TxWithdraw:
		if source == nil {
			return ErrMissingSource
		}
	case TxTransfer:
		if source == nil {
			return ErrMissingSource
		}
		if target == nil {
			return ErrMissingTarget
		}
		if *source == *target {
			return ErrSameAccount
		}
	default:
		return ErrInvalidTransactionType
	}
	return nil
}

func copyRef(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func (t *Transaction) ID() string              { return t.id }
func (t *Transaction) Type() TransactionType   { return t.txType }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Timestamp() time.Time    { return t.timestamp }

// Source returns the source account number, if any.
func (t *Transaction) Source() (int, bool) {
	if t.source == nil {
		return 0, false
	}
	return *t.source, true
}

// Target returns the target account number, if any.
func (t *Transaction) Target() (int, bool) {
	if t.target == nil {
		return 0, false
	}
	return *t.target, true
}

func (t *Transaction) Status() TransactionStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Transaction) IsPending() bool    { return t.Status() == TxPending }
func (t *Transaction) IsSuccessful() bool { return t.Status() == TxSuccess }

// MarkSuccess resolves a pending transaction as SUCCESS. It reports whether
// the status changed.
func (t *Transaction) MarkSuccess() bool {
	return t.resolve(TxSuccess)
}

// MarkFailed resolves a pending transaction as FAILED.
func (t *Transaction) MarkFailed() bool {
	return t.resolve(TxFailed)
}

func (t *Transaction) resolve(to TransactionStatus) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TxPending {
		return false
	}
	t.status = to
	return true
}

// View returns a point-in-time copy suitable for JSON.
func (t *Transaction) View() TransactionView {
	return TransactionView{
		ID:        t.id,
		Type:      t.txType,
		Amount:    t.amount,
		Source:    copyRef(t.source),
		Target:    copyRef(t.target),
		Status:    t.Status(),
		Timestamp: utils.FormatTimestamp(t.timestamp),
	}
}
