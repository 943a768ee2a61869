package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Lease event types.
const (
	LeaseEventLeased    = "LEASED"
	LeaseEventReclaimed = "RECLAIMED"
)

// LeaseEvent is the persisted notification trail for lease operations
// (LEASED on create/extend, RECLAIMED on reclaim).
type LeaseEvent struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RoomID    uint           `gorm:"column:room_id;not null;index" json:"room_id"`
	TenantID  uuid.UUID      `gorm:"column:tenant_id;type:uuid;not null" json:"tenant_id"`
	EventType string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
}

func (LeaseEvent) TableName() string {
	return "LeaseEvents"
}
