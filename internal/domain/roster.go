package domain

import (
	"time"

	"github.com/google/uuid"
)

// RosterEntry records a tenant that has ever leased shares of a room.
// Append-only, duplicates and stale (fully reclaimed) tenants allowed;
// audit/enumeration only, never authoritative.
type RosterEntry struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RoomID    uint      `gorm:"column:room_id;not null;index" json:"room_id"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null" json:"tenant_id"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (RosterEntry) TableName() string {
	return "RoomTenants"
}
