// Path: internal/services/ledger_service.go
package services

import (
	"bank-core/internal/models"
	"bank-core/pkg/database"
	"bank-core/pkg/utils"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService is the queryable journal of settled transactions. Account
// histories stay authoritative; the ledger answers system-wide lookups.
type LedgerService interface {
	Record(tx *models.Transaction) error
	Transactions(status models.TransactionStatus) ([]models.TransactionView, error)
	Find(id string) (models.TransactionView, error)
}

type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(db *gorm.DB) LedgerService {
	return &ledgerService{db: db}
}

// Record stores tx with its current status.
func (s *ledgerService) Record(tx *models.Transaction) error {
	if tx == nil {
		return nil
	}
	row := database.Transaction{
		ID:        tx.ID(),
		Amount:    tx.Amount().String(),
		Type:      string(tx.Type()),
		Status:    string(tx.Status()),
		CreatedAt: tx.Timestamp(),
	}
	if n, ok := tx.Source(); ok {
		row.FromAccountID = &n
	}
	if n, ok := tx.Target(); ok {
		row.ToAccountID = &n
	}

	return s.db.Transaction(func(db *gorm.DB) error {
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("record transaction %s: %w", row.ID, err)
		}
		return nil
	})
}

// Transactions lists recorded transactions, oldest first. An empty status
// lists all of them.
func (s *ledgerService) Transactions(status models.TransactionStatus) ([]models.TransactionView, error) {
	query := s.db.Order("created_at, id")
	switch status {
	case "":
	case models.TxPending, models.TxSuccess, models.TxFailed:
		query = query.Where("status = ?", string(status))
	default:
		return nil, models.ErrInvalidTransactionStatus
	}

	var rows []database.Transaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]models.TransactionView, 0, len(rows))
	for _, row := range rows {
		view, err := toView(row)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *ledgerService) Find(id string) (models.TransactionView, error) {
	var row database.Transaction
	err := s.db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TransactionView{}, ErrTransactionNotFound
	}
	if err != nil {
		return models.TransactionView{}, fmt.Errorf("find transaction %s: %w", id, err)
	}
	return toView(row)
}

func toView(row database.Transaction) (models.TransactionView, error) {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return models.TransactionView{}, fmt.Errorf("transaction %s amount %q: %w", row.ID, row.Amount, err)
	}
	return models.TransactionView{
		ID:        row.ID,
		Type:      models.TransactionType(row.Type),
		Amount:    amount,
		Source:    row.FromAccountID,
		Target:    row.ToAccountID,
		Status:    models.TransactionStatus(row.Status),
		Timestamp: utils.FormatTimestamp(row.CreatedAt),
	}, nil
}
