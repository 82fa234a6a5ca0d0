// Path: internal/services/admin_service.go
package services

import (
	"bank-core/internal/models"
	"fmt"
)

// AdminService mediates privileged status changes and system-wide queries.
// It never changes a balance.
type AdminService interface {
	UnverifiedAccounts() []*models.Account
	PendingTransactions() []*models.Transaction

	VerifyAccount(number int) error
	SuspendAccount(number int) error
	AppealAccount(number int) error
	CloseAccount(number int) error

	Transactions(status models.TransactionStatus) ([]models.TransactionView, error)
	Transaction(id string) (models.TransactionView, error)

	AllUsers() []*models.User
	AllAccounts() []*models.Account
}

type adminService struct {
	users    UserService
	accounts AccountService
	ledger   LedgerService
}

// NewAdminService creates an AdminService over the two registries and the
// transaction ledger, which may be nil.
func NewAdminService(users UserService, accounts AccountService, ledger LedgerService) AdminService {
	return &adminService{
		users:    users,
		accounts: accounts,
		ledger:   ledger,
	}
}

// UnverifiedAccounts lists accounts still waiting for verification.
func (s *adminService) UnverifiedAccounts() []*models.Account {
	out := []*models.Account{}
	for _, acc := range s.accounts.AllAccounts() {
		if acc.Status() == models.StatusUnverified {
			out = append(out, acc)
		}
	}
	return out
}

// PendingTransactions scans every history. A transfer appears in two
// histories but is listed once.
func (s *adminService) PendingTransactions() []*models.Transaction {
	out := []*models.Transaction{}
	seen := make(map[string]struct{})
	for _, acc := range s.accounts.AllAccounts() {
		for _, tx := range acc.TransactionHistory() {
			if !tx.IsPending() {
				continue
			}
			if _, dup := seen[tx.ID()]; dup {
				continue
			}
			seen[tx.ID()] = struct{}{}
			out = append(out, tx)
		}
	}
	return out
}

func (s *adminService) VerifyAccount(number int) error {
	return s.transition(number, "verify", (*models.Account).Verify)
}

func (s *adminService) SuspendAccount(number int) error {
	return s.transition(number, "suspend", (*models.Account).Suspend)
}

func (s *adminService) AppealAccount(number int) error {
	return s.transition(number, "appeal", (*models.Account).Appeal)
}

func (s *adminService) CloseAccount(number int) error {
	return s.transition(number, "close", (*models.Account).Close)
}

func (s *adminService) transition(number int, action string, apply func(*models.Account) bool) error {
	acc, err := s.accounts.FindAccount(number)
	if err != nil {
		return err
	}
	if !apply(acc) {
		return fmt.Errorf("%w: cannot %s account %d in status %s", ErrInvalidTransition, action, number, acc.Status())
	}
	return nil
}

// Transactions lists journaled transactions, optionally filtered by status.
// Without a ledger there is nothing to list.
func (s *adminService) Transactions(status models.TransactionStatus) ([]models.TransactionView, error) {
	if s.ledger == nil {
		return []models.TransactionView{}, nil
	}
	return s.ledger.Transactions(status)
}

// Transaction looks up one journaled transaction by id.
func (s *adminService) Transaction(id string) (models.TransactionView, error) {
	if s.ledger == nil {
		return models.TransactionView{}, ErrTransactionNotFound
	}
	return s.ledger.Find(id)
}

func (s *adminService) AllUsers() []*models.User {
	return s.users.AllUsers()
}

func (s *adminService) AllAccounts() []*models.Account {
	return s.accounts.AllAccounts()
}
