package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	dbm "hostpanel/internal/models/db_models"
	"hostpanel/internal/models/request_models"
	"hostpanel/internal/models/response_models"
	"hostpanel/internal/repositories"
	"hostpanel/pkg/utils"
)

// BonusConfig holds the fixed coin grants issued at signup.
type BonusConfig struct {
	SignupBonus   int64
	ReferralBonus int64
}

func DefaultBonusConfig() BonusConfig {
	return BonusConfig{
		SignupBonus:   10,
		ReferralBonus: 5,
	}
}

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.ProfileResponse, error)
}

type AccountService struct {
	db           *gorm.DB
	accountRepo  repositories.AccountRepository
	referralRepo repositories.ReferralRepository
	bonus        BonusConfig
	logger       *zap.Logger
}

func NewAccountService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	referralRepo repositories.ReferralRepository,
	bonus BonusConfig,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		db:           db,
		accountRepo:  accountRepo,
		referralRepo: referralRepo,
		bonus:        bonus,
		logger:       logger,
	}
}

// CreateAccount inserts the account, grants the signup bonus and runs
// the referral cascade in one transaction; a failure in any step rolls
// back the whole signup.
func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AuthResponse, error) {
	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	referralCode, err := utils.GenerateReferralCode()
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	account := &dbm.Account{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         dbm.RoleUser,
		ReferralCode: referralCode,
	}

	err = a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}

		if err := ApplyLedgerEntry(tx, account.ID, a.bonus.SignupBonus, dbm.TxnTypeSignupBonus, "Signup bonus"); err != nil {
			return err
		}

		return a.applyReferral(tx, account, request.ReferralCode)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		a.logger.Error("signup failed", zap.String("email", request.Email), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	// The ledger credited the signup bonus after the insert; reflect it
	// without another round trip.
	account.Coins = a.bonus.SignupBonus

	token, err := utils.CreateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AuthResponse{
		Token: token,
		User:  toAccountResponse(account),
	}, nil
}

// applyReferral links the new account to its referrer and credits the
// referral bonus. An unknown or self-referencing code skips the cascade
// without failing the signup.
func (a *AccountService) applyReferral(tx *gorm.DB, account *dbm.Account, code string) error {
	if code == "" {
		return nil
	}

	var referrer dbm.Account
	if err := tx.First(&referrer, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if referrer.ID == account.ID {
		return nil
	}

	if err := tx.Model(account).Update("referred_by", referrer.ID).Error; err != nil {
		return err
	}

	edge := &dbm.Referral{
		ReferrerID: referrer.ID,
		ReferredID: account.ID,
	}
	if err := tx.Create(edge).Error; err != nil {
		return err
	}

	return ApplyLedgerEntry(tx, referrer.ID, a.bonus.ReferralBonus, dbm.TxnTypeReferralBonus, "Referral bonus")
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.AuthResponse{
		Token: token,
		User:  toAccountResponse(account),
	}, nil
}

func (a *AccountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.ProfileResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	referralCount, err := a.referralRepo.CountByReferrer(ctx, account.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	profile := &response_models.ProfileResponse{
		AccountResponse: toAccountResponse(account),
		ReferralCount:   referralCount,
		CreatedAt:       account.CreatedAt,
	}
	if account.ReferredBy != nil {
		referredBy := account.ReferredBy.String()
		profile.ReferredBy = &referredBy
	}

	return profile, nil
}

func toAccountResponse(account *dbm.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:           account.ID.String(),
		Username:     account.Username,
		Email:        account.Email,
		Role:         string(account.Role),
		Coins:        account.Coins,
		ReferralCode: account.ReferralCode,
	}
}
