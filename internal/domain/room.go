package domain

import (
	"time"
)

// Room is one lease-able unit, divided into a fixed pool of shares.
// TotalShares is set at creation and never changes; price and the
// leasing-enabled flag are admin-mutable.
type Room struct {
	RoomID         uint      `gorm:"column:room_id;primaryKey;autoIncrement:false" json:"room_id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	TotalShares    uint64    `gorm:"column:total_shares;not null" json:"total_shares"`
	PricePerShare  uint64    `gorm:"column:price_per_share;not null" json:"price_per_share"`
	LeasingEnabled bool      `gorm:"column:leasing_enabled;not null;default:true" json:"leasing_enabled"`
	CreatedAt      time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Room) TableName() string {
	return "Rooms"
}
