package db_models

import (
	"github.com/google/uuid"
)

// Referral records who referred whom. At most one edge per referred
// account, enforced by the unique index on ReferredID.
type Referral struct {
	BaseModel
	ReferrerID uuid.UUID `gorm:"type:uuid;index;not null"`
	ReferredID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Referrer Account `gorm:"foreignKey:ReferrerID"`
	Referred Account `gorm:"foreignKey:ReferredID"`
}
