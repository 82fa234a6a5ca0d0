// Path: internal/services/account_service.go
package services

import (
	"bank-core/internal/models"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// AccountService is the global account registry. Lookups by number are
// independent of ownership.
type AccountService interface {
	OpenAccount(initialBalance decimal.Decimal) (*models.Account, error)
	RegisterAccount(acc *models.Account) error
	FindAccount(number int) (*models.Account, error)
	AllAccounts() []*models.Account
	AccountsForUser(sess *Session) []*models.Account

	Deposit(acc *models.Account, amount decimal.Decimal) (*models.Transaction, error)
	Withdraw(acc *models.Account, amount decimal.Decimal) (*models.Transaction, error)
	Transfer(fromNumber, toNumber int, amount decimal.Decimal) (*models.Transaction, error)
	TransactionHistory(acc *models.Account) []*models.Transaction
}

type accountService struct {
	numbers *sequence
	ledger  LedgerService

	mu       sync.RWMutex
	accounts map[int]*models.Account
}

// NewAccountService creates an empty registry. The first opened account gets
// FirstAccountNumber. Settled transactions are also recorded in ledger,
// which may be nil.
func NewAccountService(ledger LedgerService) AccountService {
	return &accountService{
		numbers:  newSequence(FirstAccountNumber),
		ledger:   ledger,
		accounts: make(map[int]*models.Account),
	}
}

// OpenAccount creates an unverified account with the next number and registers it.
func (s *accountService) OpenAccount(initialBalance decimal.Decimal) (*models.Account, error) {
	if initialBalance.IsNegative() {
		return nil, models.ErrNegativeBalance
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	number, err := s.numbers.issue()
	if err != nil {
		return nil, err
	}
	acc, err := models.NewAccount(number, initialBalance)
	if err != nil {
		return nil, err
	}
	s.accounts[acc.Number()] = acc
	return acc, nil
}

// RegisterAccount makes an externally built account resolvable by number.
// Registering the same account twice is a no-op.
func (s *accountService) RegisterAccount(acc *models.Account) error {
	if acc == nil {
		return models.ErrNilAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.accounts[acc.Number()]; ok {
		if existing == acc {
			return nil
		}
		return ErrAccountExists
	}
	if err := s.numbers.reserve(acc.Number()); err != nil {
		return err
	}
	s.accounts[acc.Number()] = acc
	return nil
}

func (s *accountService) FindAccount(number int) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

// AllAccounts returns every registered account ordered by number.
func (s *accountService) AllAccounts() []*models.Account {
	s.mu.RLock()
	out := make([]*models.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// AccountsForUser returns the accounts of the session user, or none.
func (s *accountService) AccountsForUser(sess *Session) []*models.Account {
	u := sess.User()
	if u == nil {
		return []*models.Account{}
	}
	return u.Accounts()
}

func (s *accountService) TransactionHistory(acc *models.Account) []*models.Transaction {
	if acc == nil {
		return []*models.Transaction{}
	}
	return acc.TransactionHistory()
}
