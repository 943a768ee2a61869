package ledger

import (
	"errors"

	"brickshare-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemHolder owns every share not currently leased to a tenant
// (the "available pool" of each room).
var SystemHolder = uuid.MustParse("00000000-0000-0000-0000-000000000001")

var ErrInsufficientShares = errors.New("Insufficient share balance")

// Ledger is the ownership-ledger capability injected into the leasing engine:
// per (room, holder) balances with an atomic move that fails on insufficiency.
// Methods take the caller's *gorm.DB so they compose into one transaction.
type Ledger interface {
	Mint(tx *gorm.DB, roomID uint, holder uuid.UUID, shares uint64) error
	Balance(tx *gorm.DB, roomID uint, holder uuid.UUID) (uint64, error)
	Transfer(tx *gorm.DB, roomID uint, from, to uuid.UUID, shares uint64) error
}

// GormLedger implements Ledger on the ShareBalances table.
type GormLedger struct{}

// Mint credits newly allocated capacity to a holder. Only used when a room
// is created, to seed the system pool with the room's total supply.
func (GormLedger) Mint(tx *gorm.DB, roomID uint, holder uuid.UUID, shares uint64) error {
	bal, err := loadBalance(tx, roomID, holder)
	if err != nil {
		return err
	}
	if bal == nil {
		return tx.Create(&domain.ShareBalance{RoomID: roomID, HolderID: holder, Shares: shares}).Error
	}
	bal.Shares += shares
	return tx.Save(bal).Error
}

// Balance returns the holder's share count for a room; zero for unknown holders.
func (GormLedger) Balance(tx *gorm.DB, roomID uint, holder uuid.UUID) (uint64, error) {
	bal, err := loadBalance(tx, roomID, holder)
	if err != nil {
		return 0, err
	}
	if bal == nil {
		return 0, nil
	}
	return bal.Shares, nil
}

// Transfer moves shares from one holder to another. Fails with
// ErrInsufficientShares (and writes nothing) when the source balance is short.
func (GormLedger) Transfer(tx *gorm.DB, roomID uint, from, to uuid.UUID, shares uint64) error {
	src, err := loadBalance(tx, roomID, from)
	if err != nil {
		return err
	}
	if src == nil || src.Shares < shares {
		return ErrInsufficientShares
	}
	src.Shares -= shares
	if err := tx.Save(src).Error; err != nil {
		return err
	}

	dst, err := loadBalance(tx, roomID, to)
	if err != nil {
		return err
	}
	if dst == nil {
		return tx.Create(&domain.ShareBalance{RoomID: roomID, HolderID: to, Shares: shares}).Error
	}
	dst.Shares += shares
	return tx.Save(dst).Error
}

func loadBalance(tx *gorm.DB, roomID uint, holder uuid.UUID) (*domain.ShareBalance, error) {
	var bal domain.ShareBalance
	err := tx.Where("room_id = ? AND holder_id = ?", roomID, holder).First(&bal).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bal, nil
}
