package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lease is the per (room, tenant) record of shares held, term end and
// cumulative rent paid. A fully reclaimed lease is reset to the zero value,
// indistinguishable from one that never existed.
type Lease struct {
	RoomID     uint      `gorm:"column:room_id;primaryKey;autoIncrement:false" json:"room_id"`
	TenantID   uuid.UUID `gorm:"column:tenant_id;type:uuid;primaryKey" json:"tenant_id"`
	SharesHeld uint64    `gorm:"column:shares_held;not null;default:0" json:"shares_held"`
	TermEnd    time.Time `gorm:"column:term_end" json:"term_end"`
	RentPaid   uint64    `gorm:"column:rent_paid;not null;default:0" json:"rent_paid"`
	CreatedAt  time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Lease) TableName() string {
	return "Leases"
}
