package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment statuses. A row is created as pending when the intent id is first
// claimed and moves to a terminal status once the outcome is known.
const (
	PaymentPending   = "pending"
	PaymentProcessed = "processed"
	PaymentRefunded  = "refunded"
	PaymentRejected  = "rejected"
)

// Payment records every native-asset transfer received through the payment
// webhook: processed (funded a lease), refunded (lease failed, funds
// returned) or rejected (direct transfer with no accompanying operation).
type Payment struct {
	PaymentID         uuid.UUID      `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	ProviderPaymentID string         `gorm:"column:provider_payment_id;not null;uniqueIndex" json:"provider_payment_id"`
	ProviderEventID   string         `gorm:"column:provider_event_id" json:"provider_event_id"`
	TenantID          *uuid.UUID     `gorm:"column:tenant_id;type:uuid" json:"tenant_id"`
	RoomID            *uint          `gorm:"column:room_id" json:"room_id"`
	AmountReceived    uint64         `gorm:"column:amount_received;not null" json:"amount_received"`
	Currency          string         `gorm:"column:currency;type:varchar(10)" json:"currency"`
	Status            string         `gorm:"column:status;type:varchar(20);not null" json:"status"`
	FailureReason     *string        `gorm:"column:failure_reason" json:"failure_reason"`
	RawPayload        datatypes.JSON `gorm:"column:raw_payload" json:"-"`
	CreatedAt         time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt         time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Payment) TableName() string {
	return "Payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
