package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	dbm "hostpanel/internal/models/db_models"
	"hostpanel/pkg/pairing"
)

// RetentionWindow is how long expired servers are kept before the
// purge pass deletes them.
const RetentionWindow = 7 * 24 * time.Hour

type SweeperServiceInterface interface {
	ExpireDueServers(ctx context.Context) (int, error)
	PurgeStaleServers(ctx context.Context) (int64, error)
}

type SweeperService struct {
	db      *gorm.DB
	pairing pairing.Client
	logger  *zap.Logger
}

func NewSweeperService(db *gorm.DB, pairingClient pairing.Client, logger *zap.Logger) SweeperServiceInterface {
	return &SweeperService{
		db:      db,
		pairing: pairingClient,
		logger:  logger,
	}
}

// ExpireDueServers transitions every active server whose deadline has
// passed. Each write is conditioned on the row still being active, so
// a server stopped by its owner mid-sweep stays stopped. External stop
// calls are best-effort per server and never abort the batch.
func (s *SweeperService) ExpireDueServers(ctx context.Context) (int, error) {
	now := time.Now().Unix()

	var due []dbm.Server
	err := s.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", dbm.ServerStatusActive, now).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range due {
		server := &due[i]

		res := s.db.WithContext(ctx).
			Model(&dbm.Server{}).
			Where("id = ? AND status = ?", server.ID, dbm.ServerStatusActive).
			Update("status", dbm.ServerStatusExpired)
		if res.Error != nil {
			s.logger.Error("failed to expire server",
				zap.String("server_id", server.ID.String()),
				zap.Error(res.Error))
			continue
		}
		if res.RowsAffected == 0 {
			// Lost the race to a user-initiated transition; skip.
			continue
		}
		expired++

		if server.SessionID != nil {
			if err := s.pairing.Stop(ctx, *server.SessionID); err != nil {
				s.logger.Warn("failed to stop expired server session",
					zap.String("server_id", server.ID.String()),
					zap.String("session_id", *server.SessionID),
					zap.Error(err))
			}
		}
	}

	if expired > 0 {
		s.logger.Info("expired servers", zap.Int("count", expired))
	}
	return expired, nil
}

// PurgeStaleServers permanently deletes expired servers that have been
// idle beyond the retention window. Active and stopped servers are
// never touched regardless of age.
func (s *SweeperService) PurgeStaleServers(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-RetentionWindow).Unix()

	res := s.db.WithContext(ctx).
		Where("status = ? AND updated_at <= ?", dbm.ServerStatusExpired, cutoff).
		Delete(&dbm.Server{})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		s.logger.Info("purged stale servers", zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}
