package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"hostpanel/internal/models/db_models"
)

type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.CoinTransaction, error)
	SumByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

func (t *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.CoinTransaction, error) {
	var txns []db_models.CoinTransaction
	err := t.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	return txns, nil
}

// SumByAccount replays the ledger; the result must always equal the
// cached balance on the account row.
func (t *transactionRepository) SumByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var sum int64
	err := t.db.WithContext(ctx).
		Model(&db_models.CoinTransaction{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}
