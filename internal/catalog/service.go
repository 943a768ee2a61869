package catalog

import (
	"context"

	"brickshare-backend/internal/domain"
	"brickshare-backend/internal/ledger"

	"gorm.io/gorm"
)

// Service encapsulates room catalog operations. Creating a room seeds the
// room's full share supply into the system pool via the ownership ledger.
type Service struct {
	DB     *gorm.DB
	Ledger ledger.Ledger
}

type CreateRoomInput struct {
	RoomID        uint
	Name          string
	TotalShares   uint64
	PricePerShare uint64
}

// CreateRoom registers a new room and allocates its total share supply to
// the system pool. Leasing starts enabled.
func (s *Service) CreateRoom(ctx context.Context, in CreateRoomInput) (*domain.Room, error) {
	if in.RoomID == 0 || in.Name == "" || in.TotalShares == 0 {
		return nil, ErrInvalidRoom
	}

	room := &domain.Room{
		RoomID:         in.RoomID,
		Name:           in.Name,
		TotalShares:    in.TotalShares,
		PricePerShare:  in.PricePerShare,
		LeasingEnabled: true,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Room
		if err := tx.Where("room_id = ?", in.RoomID).First(&existing).Error; err == nil {
			return ErrDuplicateRoom
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		return s.Ledger.Mint(tx, in.RoomID, ledger.SystemHolder, in.TotalShares)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateLeaseStatus flips the leasing-enabled flag and sets a new price per
// share. Pure mutation: no payment, no share movement, no effect on leases
// already in force.
func (s *Service) UpdateLeaseStatus(ctx context.Context, roomID uint, enabled bool, pricePerShare uint64) (*domain.Room, error) {
	var room domain.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRoomNotFound
			}
			return err
		}
		room.LeasingEnabled = enabled
		room.PricePerShare = pricePerShare
		return tx.Save(&room).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoom returns a room by id.
func (s *Service) GetRoom(ctx context.Context, roomID uint) (*domain.Room, error) {
	var room domain.Room
	if err := s.DB.WithContext(ctx).Where("room_id = ?", roomID).First(&room).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}
