package db_models

import (
	"github.com/google/uuid"
)

type ServerStatus string

const (
	ServerStatusActive  ServerStatus = "active"
	ServerStatusExpired ServerStatus = "expired"
	ServerStatusStopped ServerStatus = "stopped"
)

type Server struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"size:100;not null"`

	// Coins charged at creation; fixed for the lifetime of the row.
	CoinsUsed int64 `gorm:"not null"`

	// Session reference on the external pairing service, cleared on stop.
	SessionID *string

	Status ServerStatus `gorm:"size:16;index;default:active"`

	// Unix seconds; nil means the server never auto-expires.
	ExpiresAt *int64 `gorm:"index"`

	Account Account `gorm:"foreignKey:AccountID"`
}
