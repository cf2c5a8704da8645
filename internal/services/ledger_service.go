package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	dbm "hostpanel/internal/models/db_models"
	"hostpanel/internal/models/response_models"
	"hostpanel/internal/repositories"
	"hostpanel/pkg/utils"
)

type AdminAction string

const (
	AdminActionAdd      AdminAction = "add"
	AdminActionSubtract AdminAction = "subtract"
	AdminActionSet      AdminAction = "set"
)

type LedgerServiceInterface interface {
	ApplyTransaction(ctx context.Context, accountID uuid.UUID, amount int64, txnType dbm.TransactionType, description string) error
	AdjustByAdmin(ctx context.Context, accountID uuid.UUID, action AdminAction, amount int64, description string) (*response_models.AdjustCoinsResponse, error)
	GetHistory(ctx context.Context, accountID uuid.UUID) (*response_models.TransactionListResponse, error)
}

type LedgerService struct {
	db      *gorm.DB
	txnRepo repositories.TransactionRepository
	logger  *zap.Logger
}

func NewLedgerService(db *gorm.DB, txnRepo repositories.TransactionRepository, logger *zap.Logger) LedgerServiceInterface {
	return &LedgerService{
		db:      db,
		txnRepo: txnRepo,
		logger:  logger,
	}
}

// ApplyLedgerEntry mutates the cached balance and appends the matching
// ledger row inside the caller's transaction. The guarded UPDATE keeps
// the balance non-negative without a read-modify-write race: zero rows
// affected means either an unknown account or an overdraft.
func ApplyLedgerEntry(tx *gorm.DB, accountID uuid.UUID, amount int64, txnType dbm.TransactionType, description string) error {
	res := tx.Model(&dbm.Account{}).
		Where("id = ? AND coins + ? >= 0", accountID, amount).
		Update("coins", gorm.Expr("coins + ?", amount))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&dbm.Account{}).Where("id = ?", accountID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return utils.ErrAccountNotFound
		}
		return utils.ErrInsufficientCoins
	}

	entry := &dbm.CoinTransaction{
		AccountID:   accountID,
		Amount:      amount,
		Type:        txnType,
		Description: description,
	}
	return tx.Create(entry).Error
}

func (l *LedgerService) ApplyTransaction(ctx context.Context, accountID uuid.UUID, amount int64, txnType dbm.TransactionType, description string) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ApplyLedgerEntry(tx, accountID, amount, txnType, description)
	})

	if err != nil {
		if errors.Is(err, utils.ErrAccountNotFound) || errors.Is(err, utils.ErrInsufficientCoins) {
			return err
		}
		l.logger.Error("apply transaction failed",
			zap.String("account_id", accountID.String()),
			zap.Int64("amount", amount),
			zap.Error(err))
		return utils.ErrDatabaseError
	}

	return nil
}

// AdjustByAdmin clamps instead of rejecting: subtract and set floor the
// balance at zero, and the ledger row records the delta actually
// applied, not the requested amount.
func (l *LedgerService) AdjustByAdmin(ctx context.Context, accountID uuid.UUID, action AdminAction, amount int64, description string) (*response_models.AdjustCoinsResponse, error) {
	if description == "" {
		description = "Admin adjustment"
	}

	var result response_models.AdjustCoinsResponse
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account dbm.Account
		if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrAccountNotFound
			}
			return err
		}

		newCoins := account.Coins
		switch action {
		case AdminActionAdd:
			newCoins += amount
		case AdminActionSubtract:
			newCoins = max(0, newCoins-amount)
		case AdminActionSet:
			newCoins = max(0, amount)
		}

		// Guard on the balance we read so a concurrent mutation fails
		// the whole unit instead of being silently overwritten.
		res := tx.Model(&dbm.Account{}).
			Where("id = ? AND coins = ?", accountID, account.Coins).
			Update("coins", newCoins)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrDatabaseError
		}

		entry := &dbm.CoinTransaction{
			AccountID:   accountID,
			Amount:      newCoins - account.Coins,
			Type:        dbm.TxnTypeAdminRecharge,
			Description: description,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		result = response_models.AdjustCoinsResponse{
			PreviousCoins: account.Coins,
			NewCoins:      newCoins,
			Difference:    newCoins - account.Coins,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, utils.ErrAccountNotFound) || errors.Is(err, utils.ErrDatabaseError) {
			return nil, err
		}
		l.logger.Error("admin adjustment failed",
			zap.String("account_id", accountID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return &result, nil
}

// GetHistory returns the account's ledger newest-first. The balance is
// replayed from the entries rather than read off the account row; the
// two must always agree.
func (l *LedgerService) GetHistory(ctx context.Context, accountID uuid.UUID) (*response_models.TransactionListResponse, error) {
	txns, err := l.txnRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	balance, err := l.txnRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, response_models.TransactionResponse{
			ID:          txns[i].ID.String(),
			Amount:      txns[i].Amount,
			Type:        string(txns[i].Type),
			Description: txns[i].Description,
			CreatedAt:   txns[i].CreatedAt,
		})
	}

	return &response_models.TransactionListResponse{
		Transactions: items,
		Balance:      balance,
	}, nil
}
