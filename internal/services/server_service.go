package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	dbm "hostpanel/internal/models/db_models"
	"hostpanel/internal/models/request_models"
	"hostpanel/internal/models/response_models"
	"hostpanel/internal/repositories"
	"hostpanel/pkg/pairing"
	"hostpanel/pkg/plans"
	"hostpanel/pkg/utils"
)

var phoneNumberPattern = regexp.MustCompile(`^\d+$`)

type ServerServiceInterface interface {
	CreateServer(ctx context.Context, accountID uuid.UUID, request request_models.CreateServerRequest) (*response_models.CreateServerResponse, error)
	ListServers(ctx context.Context, accountID uuid.UUID) ([]response_models.ServerResponse, error)
	GetServer(ctx context.Context, serverID uuid.UUID, accountID uuid.UUID, role string) (*response_models.ServerResponse, error)
	RequestPairing(ctx context.Context, serverID uuid.UUID, accountID uuid.UUID, phoneNumber string) (*response_models.PairingResponse, error)
	StopServer(ctx context.Context, serverID uuid.UUID, accountID uuid.UUID) error
	ListPlans() []response_models.PlanResponse
}

type ServerService struct {
	db         *gorm.DB
	serverRepo repositories.ServerRepository
	catalog    plans.Catalog
	pairing    pairing.Client
	logger     *zap.Logger
}

func NewServerService(
	db *gorm.DB,
	serverRepo repositories.ServerRepository,
	catalog plans.Catalog,
	pairingClient pairing.Client,
	logger *zap.Logger,
) ServerServiceInterface {
	return &ServerService{
		db:         db,
		serverRepo: serverRepo,
		catalog:    catalog,
		pairing:    pairingClient,
		logger:     logger,
	}
}

// CreateServer debits the plan price and inserts the server row in one
// transaction; an overdraft rolls back both.
func (s *ServerService) CreateServer(ctx context.Context, accountID uuid.UUID, request request_models.CreateServerRequest) (*response_models.CreateServerResponse, error) {
	plan, ok := s.catalog.Get(request.PlanIndex)
	if !ok {
		return nil, utils.ErrInvalidPlan
	}

	var expiresAt *int64
	if plan.DurationHours != nil {
		ts := time.Now().Add(time.Duration(*plan.DurationHours) * time.Hour).Unix()
		expiresAt = &ts
	}

	server := &dbm.Server{
		AccountID: accountID,
		Name:      request.ServerName,
		CoinsUsed: plan.Coins,
		Status:    dbm.ServerStatusActive,
		ExpiresAt: expiresAt,
	}

	var remaining int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		description := fmt.Sprintf("Purchased server: %s", request.ServerName)
		if err := ApplyLedgerEntry(tx, accountID, -plan.Coins, dbm.TxnTypeServerPurchase, description); err != nil {
			return err
		}

		if err := tx.Create(server).Error; err != nil {
			return err
		}

		var account dbm.Account
		if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
			return err
		}
		remaining = account.Coins
		return nil
	})

	if err != nil {
		if errors.Is(err, utils.ErrInsufficientCoins) || errors.Is(err, utils.ErrAccountNotFound) {
			return nil, err
		}
		s.logger.Error("server creation failed",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CreateServerResponse{
		Server:         toServerResponse(server),
		RemainingCoins: remaining,
	}, nil
}

func (s *ServerService) ListServers(ctx context.Context, accountID uuid.UUID) ([]response_models.ServerResponse, error) {
	servers, err := s.serverRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.ServerResponse, 0, len(servers))
	for i := range servers {
		result = append(result, toServerResponse(&servers[i]))
	}
	return result, nil
}

func (s *ServerService) GetServer(ctx context.Context, serverID uuid.UUID, accountID uuid.UUID, role string) (*response_models.ServerResponse, error) {
	server, err := s.serverRepo.FindById(ctx, serverID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if server == nil {
		return nil, utils.ErrServerNotFound
	}

	if server.AccountID != accountID && role != string(dbm.RoleAdmin) {
		return nil, utils.ErrServerNotFound
	}

	response := toServerResponse(server)
	return &response, nil
}

// RequestPairing enforces expiration lazily: a pairing request against
// a past-deadline server flips it to expired and fails, independent of
// the sweeper.
func (s *ServerService) RequestPairing(ctx context.Context, serverID uuid.UUID, accountID uuid.UUID, phoneNumber string) (*response_models.PairingResponse, error) {
	if !phoneNumberPattern.MatchString(phoneNumber) {
		return nil, utils.ErrInvalidPhoneNumber
	}

	server, err := s.serverRepo.FindByIdForAccount(ctx, serverID, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if server == nil {
		return nil, utils.ErrServerNotFound
	}
	if server.Status != dbm.ServerStatusActive {
		return nil, utils.ErrServerNotActive
	}

	if server.ExpiresAt != nil && *server.ExpiresAt <= time.Now().Unix() {
		res := s.db.WithContext(ctx).
			Model(&dbm.Server{}).
			Where("id = ? AND status = ?", server.ID, dbm.ServerStatusActive).
			Update("status", dbm.ServerStatusExpired)
		if res.Error != nil {
			return nil, utils.ErrDatabaseError
		}
		return nil, utils.ErrServerExpired
	}

	result, err := s.pairing.Pair(ctx, phoneNumber)
	if err != nil {
		s.logger.Warn("pairing request failed",
			zap.String("server_id", server.ID.String()),
			zap.Error(err))
		return nil, utils.ErrExternalService
	}

	if result.SessionID != "" {
		err := s.db.WithContext(ctx).
			Model(&dbm.Server{}).
			Where("id = ? AND status = ?", server.ID, dbm.ServerStatusActive).
			Update("session_id", result.SessionID).Error
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return &response_models.PairingResponse{
		PairingCode: result.Code,
		ServerID:    server.ID.String(),
		PhoneNumber: phoneNumber,
	}, nil
}

// StopServer commits the local transition first; the external stop is
// attempted afterwards and its failure never rolls the transition back.
// Stopping an already-stopped server is an idempotent success.
func (s *ServerService) StopServer(ctx context.Context, serverID uuid.UUID, accountID uuid.UUID) error {
	server, err := s.serverRepo.FindByIdForAccount(ctx, serverID, accountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if server == nil {
		return utils.ErrServerNotFound
	}

	res := s.db.WithContext(ctx).
		Model(&dbm.Server{}).
		Where("id = ? AND status IN ?", server.ID, []dbm.ServerStatus{dbm.ServerStatusActive, dbm.ServerStatusExpired}).
		Updates(map[string]interface{}{
			"status":     dbm.ServerStatusStopped,
			"session_id": nil,
		})
	if res.Error != nil {
		return utils.ErrDatabaseError
	}
	if res.RowsAffected == 0 {
		// Already stopped; session was cleared by whoever got there first.
		return nil
	}

	if server.SessionID != nil {
		if err := s.pairing.Stop(ctx, *server.SessionID); err != nil {
			s.logger.Warn("failed to stop session on external service",
				zap.String("server_id", server.ID.String()),
				zap.String("session_id", *server.SessionID),
				zap.Error(err))
		}
	}

	return nil
}

func (s *ServerService) ListPlans() []response_models.PlanResponse {
	result := make([]response_models.PlanResponse, 0, len(s.catalog))
	for i, plan := range s.catalog {
		result = append(result, response_models.PlanResponse{
			Index:         i,
			Coins:         plan.Coins,
			DurationHours: plan.DurationHours,
			Label:         plan.Label,
		})
	}
	return result
}

func toServerResponse(server *dbm.Server) response_models.ServerResponse {
	return response_models.ServerResponse{
		ID:        server.ID.String(),
		Name:      server.Name,
		CoinsUsed: server.CoinsUsed,
		SessionID: server.SessionID,
		Status:    string(server.Status),
		ExpiresAt: server.ExpiresAt,
		CreatedAt: server.CreatedAt,
	}
}
