// Path: internal/services/transaction_service.go
package services

import (
	"bank-core/internal/models"
	"log"

	"github.com/shopspring/decimal"
)

// Money movement on the registry. Every request that passes validation is
// recorded as a Transaction in the history of each account it touches,
// resolved SUCCESS or FAILED according to the outcome, and returned along
// with the outcome. Requests rejected before that return a nil Transaction.

// Deposit credits acc.
func (s *accountService) Deposit(acc *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	if acc == nil {
		return nil, models.ErrNilAccount
	}
	number := acc.Number()
	tx, err := models.NewTransaction(models.TxDeposit, amount, nil, &number)
	if err != nil {
		return nil, err
	}

	err = acc.Deposit(amount)
	s.settle(tx, err, acc)
	return tx, err
}

// Withdraw debits acc.
func (s *accountService) Withdraw(acc *models.Account, amount decimal.Decimal) (*models.Transaction, error) {
	if acc == nil {
		return nil, models.ErrNilAccount
	}
	number := acc.Number()
	tx, err := models.NewTransaction(models.TxWithdraw, amount, &number, nil)
	if err != nil {
		return nil, err
	}

	err = acc.Withdraw(amount)
	s.settle(tx, err, acc)
	return tx, err
}

// Transfer resolves both account numbers and fails before touching anything
// if either is unknown.
func (s *accountService) Transfer(fromNumber, toNumber int, amount decimal.Decimal) (*models.Transaction, error) {
	from, err := s.FindAccount(fromNumber)
	if err != nil {
		return nil, err
	}
	to, err := s.FindAccount(toNumber)
	if err != nil {
		return nil, err
	}

	tx, err := models.NewTransaction(models.TxTransfer, amount, &fromNumber, &toNumber)
	if err != nil {
		return nil, err
	}

	err = from.Transfer(to, amount)
	s.settle(tx, err, from, to)
	return tx, err
}

// settle resolves tx by err, appends it to every account and journals it.
// The money has already moved, so a ledger failure is only logged.
func (s *accountService) settle(tx *models.Transaction, err error, accounts ...*models.Account) {
	if err != nil {
		tx.MarkFailed()
	} else {
		tx.MarkSuccess()
	}
	for _, acc := range accounts {
		acc.AddTransaction(tx)
	}

	if s.ledger == nil {
		return
	}
	if err := s.ledger.Record(tx); err != nil {
		log.Printf("Не удалось записать транзакцию %s в журнал: %v", tx.ID(), err)
	}
}
