package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "hostpanel/internal/models/db_models"
)

func TestExpireDueServersTransitionsAndStopsSessions(t *testing.T) {
	db := newTestDB(t)
	fake := &fakePairingClient{}
	sweeper := NewSweeperService(db, fake, testLogger())
	account := seedAccount(t, db, 0)

	past := time.Now().Add(-time.Minute).Unix()
	future := time.Now().Add(time.Hour).Unix()

	dueWithSession := seedServer(t, db, account.ID, dbm.ServerStatusActive, &past, strPtr("sess-a"))
	dueWithoutSession := seedServer(t, db, account.ID, dbm.ServerStatusActive, &past, nil)
	notDue := seedServer(t, db, account.ID, dbm.ServerStatusActive, &future, nil)
	unlimited := seedServer(t, db, account.ID, dbm.ServerStatusActive, nil, nil)

	count, err := sweeper.ExpireDueServers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, dbm.ServerStatusExpired, reloadServer(t, db, dueWithSession.ID).Status)
	assert.Equal(t, dbm.ServerStatusExpired, reloadServer(t, db, dueWithoutSession.ID).Status)
	assert.Equal(t, dbm.ServerStatusActive, reloadServer(t, db, notDue.ID).Status)
	assert.Equal(t, dbm.ServerStatusActive, reloadServer(t, db, unlimited.ID).Status)

	assert.Equal(t, []string{"sess-a"}, fake.stopCalls)
}

func TestExpireDueServersIdempotent(t *testing.T) {
	db := newTestDB(t)
	fake := &fakePairingClient{}
	sweeper := NewSweeperService(db, fake, testLogger())
	account := seedAccount(t, db, 0)
	ctx := context.Background()

	past := time.Now().Add(-time.Minute).Unix()
	seedServer(t, db, account.ID, dbm.ServerStatusActive, &past, strPtr("sess-b"))

	first, err := sweeper.ExpireDueServers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	// Second pass finds nothing: no duplicate transition, no second stop.
	second, err := sweeper.ExpireDueServers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second)
	assert.Equal(t, []string{"sess-b"}, fake.stopCalls)
}

func TestExpireDueServersToleratesStopFailures(t *testing.T) {
	db := newTestDB(t)
	fake := &fakePairingClient{stopErr: errors.New("unreachable")}
	sweeper := NewSweeperService(db, fake, testLogger())
	account := seedAccount(t, db, 0)

	past := time.Now().Add(-time.Minute).Unix()
	a := seedServer(t, db, account.ID, dbm.ServerStatusActive, &past, strPtr("sess-c"))
	b := seedServer(t, db, account.ID, dbm.ServerStatusActive, &past, strPtr("sess-d"))

	count, err := sweeper.ExpireDueServers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// One failing stop call does not abort the rest of the batch.
	assert.Len(t, fake.stopCalls, 2)
	assert.Equal(t, dbm.ServerStatusExpired, reloadServer(t, db, a.ID).Status)
	assert.Equal(t, dbm.ServerStatusExpired, reloadServer(t, db, b.ID).Status)
}

func TestOwnerStopWinsOverSweep(t *testing.T) {
	db := newTestDB(t)
	fake := &fakePairingClient{}
	sweeper := NewSweeperService(db, fake, testLogger())
	serverSvc := newServerService(t, db, fake)
	account := seedAccount(t, db, 0)
	ctx := context.Background()

	past := time.Now().Add(-time.Minute).Unix()

	// Owner stops first, sweep runs after: the conditional write skips
	// the row and the server stays stopped.
	stoppedFirst := seedServer(t, db, account.ID, dbm.ServerStatusActive, &past, nil)
	require.NoError(t, serverSvc.StopServer(ctx, stoppedFirst.ID, account.ID))
	_, err := sweeper.ExpireDueServers(ctx)
	require.NoError(t, err)
	assert.Equal(t, dbm.ServerStatusStopped, reloadServer(t, db, stoppedFirst.ID).Status)

	// Sweep runs first, owner stops after: stop applies on top of the
	// expired row and the server still ends stopped.
	sweptFirst := seedServer(t, db, account.ID, dbm.ServerStatusActive, &past, nil)
	_, err = sweeper.ExpireDueServers(ctx)
	require.NoError(t, err)
	require.NoError(t, serverSvc.StopServer(ctx, sweptFirst.ID, account.ID))
	assert.Equal(t, dbm.ServerStatusStopped, reloadServer(t, db, sweptFirst.ID).Status)
}

func TestPurgeOnlyRemovesStaleExpiredServers(t *testing.T) {
	db := newTestDB(t)
	sweeper := NewSweeperService(db, &fakePairingClient{}, testLogger())
	account := seedAccount(t, db, 0)

	stale := time.Now().Add(-RetentionWindow - time.Hour).Unix()

	expiredOld := seedServer(t, db, account.ID, dbm.ServerStatusExpired, nil, nil)
	expiredRecent := seedServer(t, db, account.ID, dbm.ServerStatusExpired, nil, nil)
	stoppedOld := seedServer(t, db, account.ID, dbm.ServerStatusStopped, nil, nil)
	activeOld := seedServer(t, db, account.ID, dbm.ServerStatusActive, nil, nil)

	// Age the rows directly; UpdateColumn bypasses the timestamp hooks.
	for _, id := range []any{expiredOld.ID, stoppedOld.ID, activeOld.ID} {
		require.NoError(t, db.Model(&dbm.Server{}).Where("id = ?", id).
			UpdateColumn("updated_at", stale).Error)
	}

	count, err := sweeper.PurgeStaleServers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var remaining []dbm.Server
	require.NoError(t, db.Find(&remaining).Error)
	assert.Len(t, remaining, 3)

	var gone int64
	require.NoError(t, db.Model(&dbm.Server{}).Where("id = ?", expiredOld.ID).Count(&gone).Error)
	assert.Equal(t, int64(0), gone)

	// Stopped and active rows survive regardless of age.
	assert.Equal(t, dbm.ServerStatusStopped, reloadServer(t, db, stoppedOld.ID).Status)
	assert.Equal(t, dbm.ServerStatusActive, reloadServer(t, db, activeOld.ID).Status)
	assert.Equal(t, dbm.ServerStatusExpired, reloadServer(t, db, expiredRecent.ID).Status)
}
