package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	dbm "hostpanel/internal/models/db_models"
	"hostpanel/internal/repositories"
	"hostpanel/pkg/utils"
)

func newLedgerService(db *gorm.DB) LedgerServiceInterface {
	return NewLedgerService(db, repositories.NewTransactionRepository(db), testLogger())
}

func TestApplyTransactionCreditsAndAppendsEntry(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)
	account := seedAccount(t, db, 0)

	err := ledger.ApplyTransaction(context.Background(), account.ID, 10, dbm.TxnTypeSignupBonus, "Signup bonus")
	require.NoError(t, err)

	reloaded := reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(10), reloaded.Coins)
	assert.Equal(t, int64(10), ledgerSum(t, db, account.ID))
}

func TestApplyTransactionRejectsOverdraft(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)
	account := seedAccount(t, db, 30)

	err := ledger.ApplyTransaction(context.Background(), account.ID, -50, dbm.TxnTypeServerPurchase, "Purchased server: big")
	require.ErrorIs(t, err, utils.ErrInsufficientCoins)

	// Nothing changed: balance intact, no ledger row appended.
	reloaded := reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(30), reloaded.Coins)
	assert.Equal(t, int64(30), ledgerSum(t, db, account.ID))

	var count int64
	require.NoError(t, db.Model(&dbm.CoinTransaction{}).Where("account_id = ?", account.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyTransactionUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)

	err := ledger.ApplyTransaction(context.Background(), uuid.New(), 10, dbm.TxnTypeSignupBonus, "Signup bonus")
	require.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestAdjustByAdminAdd(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)
	account := seedAccount(t, db, 20)

	result, err := ledger.AdjustByAdmin(context.Background(), account.ID, AdminActionAdd, 50, "Promo credit")
	require.NoError(t, err)

	assert.Equal(t, int64(20), result.PreviousCoins)
	assert.Equal(t, int64(70), result.NewCoins)
	assert.Equal(t, int64(50), result.Difference)
	assert.Equal(t, int64(70), ledgerSum(t, db, account.ID))
}

func TestAdjustByAdminSubtractClampsAndRecordsActualDelta(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)
	account := seedAccount(t, db, 30)

	result, err := ledger.AdjustByAdmin(context.Background(), account.ID, AdminActionSubtract, 100, "")
	require.NoError(t, err)

	assert.Equal(t, int64(30), result.PreviousCoins)
	assert.Equal(t, int64(0), result.NewCoins)
	assert.Equal(t, int64(-30), result.Difference)

	// The ledger row holds the delta actually applied, not -100.
	var last dbm.CoinTransaction
	require.NoError(t, db.Where("account_id = ? AND amount < 0", account.ID).
		First(&last).Error)
	assert.Equal(t, int64(-30), last.Amount)
	assert.Equal(t, "Admin adjustment", last.Description)

	reloaded := reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(0), reloaded.Coins)
	assert.Equal(t, int64(0), ledgerSum(t, db, account.ID))
}

func TestAdjustByAdminSet(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)
	account := seedAccount(t, db, 75)

	result, err := ledger.AdjustByAdmin(context.Background(), account.ID, AdminActionSet, 40, "Reset")
	require.NoError(t, err)

	assert.Equal(t, int64(40), result.NewCoins)
	assert.Equal(t, int64(-35), result.Difference)
	assert.Equal(t, int64(40), ledgerSum(t, db, account.ID))
}

func TestAdjustByAdminUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)

	_, err := ledger.AdjustByAdmin(context.Background(), uuid.New(), AdminActionAdd, 10, "")
	require.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestGetHistoryReplaysBalance(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)
	account := seedAccount(t, db, 0)
	ctx := context.Background()

	require.NoError(t, ledger.ApplyTransaction(ctx, account.ID, 10, dbm.TxnTypeSignupBonus, "Signup bonus"))
	require.NoError(t, ledger.ApplyTransaction(ctx, account.ID, -10, dbm.TxnTypeServerPurchase, "Purchased server: a"))
	require.NoError(t, ledger.ApplyTransaction(ctx, account.ID, 5, dbm.TxnTypeReferralBonus, "Referral bonus"))

	history, err := ledger.GetHistory(ctx, account.ID)
	require.NoError(t, err)

	assert.Len(t, history.Transactions, 3)
	assert.Equal(t, int64(5), history.Balance)
	assert.Equal(t, reloadAccount(t, db, account.ID).Coins, history.Balance)
}

func TestBalanceAlwaysMatchesLedgerSum(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedgerService(db)
	account := seedAccount(t, db, 0)
	ctx := context.Background()

	require.NoError(t, ledger.ApplyTransaction(ctx, account.ID, 10, dbm.TxnTypeSignupBonus, "Signup bonus"))
	require.NoError(t, ledger.ApplyTransaction(ctx, account.ID, 5, dbm.TxnTypeReferralBonus, "Referral bonus"))
	require.NoError(t, ledger.ApplyTransaction(ctx, account.ID, -10, dbm.TxnTypeServerPurchase, "Purchased server: a"))

	_, err := ledger.AdjustByAdmin(ctx, account.ID, AdminActionSubtract, 100, "")
	require.NoError(t, err)

	reloaded := reloadAccount(t, db, account.ID)
	assert.Equal(t, ledgerSum(t, db, account.ID), reloaded.Coins)
	assert.GreaterOrEqual(t, reloaded.Coins, int64(0))
}
