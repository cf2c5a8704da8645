package db_models

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Account struct {
	BaseModel
	Username     string `gorm:"size:50;uniqueIndex"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         Role  `gorm:"size:16;default:user"`
	Coins        int64 `gorm:"not null;default:0"`

	// Referral code handed out to other users; the referrer link is set
	// at most once, at signup, and never changes afterwards.
	ReferralCode string     `gorm:"size:16;uniqueIndex"`
	ReferredBy   *uuid.UUID `gorm:"type:uuid;index"`

	Servers      []Server
	Transactions []CoinTransaction
}
