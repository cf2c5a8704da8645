package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	dbm "hostpanel/internal/models/db_models"
	"hostpanel/internal/models/response_models"
	"hostpanel/internal/repositories"
	"hostpanel/pkg/utils"
)

type AdminServiceInterface interface {
	ListUsers(ctx context.Context, page int, pageSize int) (*response_models.UserListResponse, error)
	ListServers(ctx context.Context, page int, pageSize int) (*response_models.ServerListResponse, error)
	ForceExpireServer(ctx context.Context, serverID uuid.UUID) (*response_models.ServerResponse, error)
	DeleteServer(ctx context.Context, serverID uuid.UUID) error
	GetStats(ctx context.Context) (*response_models.StatsResponse, error)
}

type AdminService struct {
	db           *gorm.DB
	accountRepo  repositories.AccountRepository
	serverRepo   repositories.ServerRepository
	referralRepo repositories.ReferralRepository
	logger       *zap.Logger
}

func NewAdminService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	serverRepo repositories.ServerRepository,
	referralRepo repositories.ReferralRepository,
	logger *zap.Logger,
) AdminServiceInterface {
	return &AdminService{
		db:           db,
		accountRepo:  accountRepo,
		serverRepo:   serverRepo,
		referralRepo: referralRepo,
		logger:       logger,
	}
}

func (a *AdminService) ListUsers(ctx context.Context, page int, pageSize int) (*response_models.UserListResponse, error) {
	accounts, total, err := a.accountRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	users := make([]response_models.AdminUserResponse, 0, len(accounts))
	for i := range accounts {
		account := &accounts[i]

		referralCount, err := a.referralRepo.CountByReferrer(ctx, account.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}

		profile := response_models.ProfileResponse{
			AccountResponse: toAccountResponse(account),
			ReferralCount:   referralCount,
			CreatedAt:       account.CreatedAt,
		}
		if account.ReferredBy != nil {
			referredBy := account.ReferredBy.String()
			profile.ReferredBy = &referredBy
		}
		users = append(users, response_models.AdminUserResponse{ProfileResponse: profile})
	}

	return &response_models.UserListResponse{
		Users:      users,
		Pagination: paginate(page, pageSize, total),
	}, nil
}

func (a *AdminService) ListServers(ctx context.Context, page int, pageSize int) (*response_models.ServerListResponse, error) {
	servers, total, err := a.serverRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.AdminServerResponse, 0, len(servers))
	for i := range servers {
		server := &servers[i]
		result = append(result, response_models.AdminServerResponse{
			ServerResponse: toServerResponse(server),
			Username:       server.Account.Username,
			Email:          server.Account.Email,
		})
	}

	return &response_models.ServerListResponse{
		Servers:    result,
		Pagination: paginate(page, pageSize, total),
	}, nil
}

// ForceExpireServer expires an active server on admin request. The
// expiration timestamp is overwritten with the transition time rather
// than preserved; this mirrors the sweep-visible deadline the admin
// imposed, not the one the owner paid for.
func (a *AdminService) ForceExpireServer(ctx context.Context, serverID uuid.UUID) (*response_models.ServerResponse, error) {
	server, err := a.serverRepo.FindById(ctx, serverID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if server == nil {
		return nil, utils.ErrServerNotFound
	}

	now := time.Now().Unix()
	res := a.db.WithContext(ctx).
		Model(&dbm.Server{}).
		Where("id = ? AND status = ?", server.ID, dbm.ServerStatusActive).
		Updates(map[string]interface{}{
			"status":     dbm.ServerStatusExpired,
			"expires_at": now,
		})
	if res.Error != nil {
		return nil, utils.ErrDatabaseError
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrServerNotActive
	}

	server.Status = dbm.ServerStatusExpired
	server.ExpiresAt = &now

	response := toServerResponse(server)
	return &response, nil
}

// DeleteServer removes the row outright. No compensating ledger entry
// is recorded; the coins charged at creation stay spent.
func (a *AdminService) DeleteServer(ctx context.Context, serverID uuid.UUID) error {
	res := a.db.WithContext(ctx).Delete(&dbm.Server{}, "id = ?", serverID)
	if res.Error != nil {
		return utils.ErrDatabaseError
	}
	if res.RowsAffected == 0 {
		return utils.ErrServerNotFound
	}
	return nil
}

func (a *AdminService) GetStats(ctx context.Context) (*response_models.StatsResponse, error) {
	stats := &response_models.StatsResponse{}
	db := a.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&dbm.Account{})},
		{&stats.AdminCount, db.Model(&dbm.Account{}).Where("role = ?", dbm.RoleAdmin)},
		{&stats.TotalServers, db.Model(&dbm.Server{})},
		{&stats.ActiveServers, db.Model(&dbm.Server{}).Where("status = ?", dbm.ServerStatusActive)},
		{&stats.ExpiredServers, db.Model(&dbm.Server{}).Where("status = ?", dbm.ServerStatusExpired)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	if err := db.Model(&dbm.Account{}).Select("COALESCE(SUM(coins), 0)").Scan(&stats.TotalCoins).Error; err != nil {
		return nil, utils.ErrDatabaseError
	}

	totalReferrals, err := a.referralRepo.CountAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	stats.TotalReferrals = totalReferrals

	activity, err := a.recentActivity(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	stats.RecentActivity = activity

	return stats, nil
}

func (a *AdminService) recentActivity(ctx context.Context) ([]response_models.ActivityItem, error) {
	since := time.Now().Add(-7 * 24 * time.Hour).Unix()
	db := a.db.WithContext(ctx)

	var accounts []dbm.Account
	if err := db.Where("created_at >= ?", since).Find(&accounts).Error; err != nil {
		return nil, err
	}

	var servers []dbm.Server
	if err := db.Preload("Account").Where("created_at >= ?", since).Find(&servers).Error; err != nil {
		return nil, err
	}

	items := make([]response_models.ActivityItem, 0, len(accounts)+len(servers))
	for i := range accounts {
		items = append(items, response_models.ActivityItem{
			Type:      "user",
			Name:      accounts[i].Username,
			Email:     accounts[i].Email,
			CreatedAt: accounts[i].CreatedAt,
		})
	}
	for i := range servers {
		items = append(items, response_models.ActivityItem{
			Type:      "server",
			Name:      servers[i].Name,
			Email:     servers[i].Account.Email,
			CreatedAt: servers[i].CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	if len(items) > 10 {
		items = items[:10]
	}
	return items, nil
}

func paginate(page int, pageSize int, total int64) response_models.Pagination {
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}
	return response_models.Pagination{
		Page:       page,
		Limit:      pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
