package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"hostpanel/internal/models/db_models"
)

type ServerRepository interface {
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Server, error)
	FindByIdForAccount(ctx context.Context, id uuid.UUID, accountID uuid.UUID) (*db_models.Server, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Server, error)
	List(ctx context.Context, page int, pageSize int) ([]db_models.Server, int64, error)
}

type serverRepository struct {
	db *gorm.DB
}

func NewServerRepository(db *gorm.DB) ServerRepository {
	return &serverRepository{
		db: db,
	}
}

func (s *serverRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Server, error) {
	var server db_models.Server
	err := s.db.WithContext(ctx).First(&server, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &server, nil
}

func (s *serverRepository) FindByIdForAccount(ctx context.Context, id uuid.UUID, accountID uuid.UUID) (*db_models.Server, error) {
	var server db_models.Server
	err := s.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&server).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &server, nil
}

func (s *serverRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Server, error) {
	var servers []db_models.Server
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&servers).Error
	if err != nil {
		return nil, err
	}

	return servers, nil
}

func (s *serverRepository) List(ctx context.Context, page int, pageSize int) ([]db_models.Server, int64, error) {
	var servers []db_models.Server
	var total int64

	if err := s.db.WithContext(ctx).Model(&db_models.Server{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Preload("Account").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&servers).Error
	if err != nil {
		return nil, 0, err
	}

	return servers, total, nil
}
