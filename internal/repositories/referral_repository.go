package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"hostpanel/internal/models/db_models"
)

type ReferralRepository interface {
	CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type referralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{
		db: db,
	}
}

func (r *referralRepository) CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Referral{}).
		Where("referrer_id = ?", referrerID).
		Count(&count).Error
	return count, err
}

func (r *referralRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Referral{}).
		Count(&count).Error
	return count, err
}
