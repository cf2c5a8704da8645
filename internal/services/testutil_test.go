package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	dbm "hostpanel/internal/models/db_models"
	"hostpanel/pkg/pairing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&dbm.Account{},
		&dbm.Server{},
		&dbm.CoinTransaction{},
		&dbm.Referral{},
	))

	return db
}

// seedAccount creates an account and grants its starting balance through
// the ledger, so balance == sum(transactions) holds from the start.
func seedAccount(t *testing.T, db *gorm.DB, coins int64) *dbm.Account {
	t.Helper()

	suffix := uuid.New().String()[:8]
	account := &dbm.Account{
		Username:     "user-" + suffix,
		Email:        fmt.Sprintf("user-%s@example.com", suffix),
		PasswordHash: "x",
		Role:         dbm.RoleUser,
		ReferralCode: suffix,
	}
	require.NoError(t, db.Create(account).Error)

	if coins != 0 {
		require.NoError(t, ApplyLedgerEntry(db, account.ID, coins, dbm.TxnTypeAdminRecharge, "Test grant"))
		account.Coins = coins
	}
	return account
}

func seedServer(t *testing.T, db *gorm.DB, accountID uuid.UUID, status dbm.ServerStatus, expiresAt *int64, sessionID *string) *dbm.Server {
	t.Helper()

	server := &dbm.Server{
		AccountID: accountID,
		Name:      "test-server",
		CoinsUsed: 10,
		Status:    status,
		ExpiresAt: expiresAt,
		SessionID: sessionID,
	}
	require.NoError(t, db.Create(server).Error)
	return server
}

func reloadAccount(t *testing.T, db *gorm.DB, id uuid.UUID) *dbm.Account {
	t.Helper()
	var account dbm.Account
	require.NoError(t, db.First(&account, "id = ?", id).Error)
	return &account
}

func reloadServer(t *testing.T, db *gorm.DB, id uuid.UUID) *dbm.Server {
	t.Helper()
	var server dbm.Server
	require.NoError(t, db.First(&server, "id = ?", id).Error)
	return &server
}

func ledgerSum(t *testing.T, db *gorm.DB, accountID uuid.UUID) int64 {
	t.Helper()
	var sum int64
	require.NoError(t, db.Model(&dbm.CoinTransaction{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error)
	return sum
}

func strPtr(s string) *string { return &s }

// fakePairingClient records calls and fails on demand.
type fakePairingClient struct {
	mu         sync.Mutex
	pairResult pairing.PairResult
	pairErr    error
	stopErr    error
	pairCalls  []string
	stopCalls  []string
}

func (f *fakePairingClient) Pair(ctx context.Context, phoneNumber string) (*pairing.PairResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pairCalls = append(f.pairCalls, phoneNumber)
	if f.pairErr != nil {
		return nil, f.pairErr
	}
	result := f.pairResult
	return &result, nil
}

func (f *fakePairingClient) Stop(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopCalls = append(f.stopCalls, sessionID)
	return f.stopErr
}

func testLogger() *zap.Logger { return zap.NewNop() }
