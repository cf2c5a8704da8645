package db_models

import (
	"github.com/google/uuid"
)

type TransactionType string

const (
	TxnTypeSignupBonus    TransactionType = "signup_bonus"
	TxnTypeReferralBonus  TransactionType = "referral_bonus"
	TxnTypeServerPurchase TransactionType = "server_purchase"
	TxnTypeAdminRecharge  TransactionType = "admin_recharge"
)

// CoinTransaction is append-only. Rows are never updated or deleted;
// an account's balance must always equal the sum of its rows here.
type CoinTransaction struct {
	BaseModel
	AccountID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount      int64           `gorm:"not null"`
	Type        TransactionType `gorm:"size:32;index"`
	Description string

	Account Account `gorm:"foreignKey:AccountID"`
}
