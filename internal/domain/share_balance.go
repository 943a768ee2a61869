package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareBalance tracks, per (room, holder), a non-negative share balance.
// The system pool is just another holder (ledger.SystemHolder).
type ShareBalance struct {
	RoomID    uint      `gorm:"column:room_id;primaryKey;autoIncrement:false" json:"room_id"`
	HolderID  uuid.UUID `gorm:"column:holder_id;type:uuid;primaryKey" json:"holder_id"`
	Shares    uint64    `gorm:"column:shares;not null;default:0" json:"shares"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (ShareBalance) TableName() string {
	return "ShareBalances"
}
