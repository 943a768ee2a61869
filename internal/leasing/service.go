package leasing

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"brickshare-backend/internal/catalog"
	"brickshare-backend/internal/domain"
	"brickshare-backend/internal/ledger"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MonthDuration is a fixed 30-day month; lease terms are not calendar-aware.
const MonthDuration = 30 * 24 * time.Hour

// maxLeaseMonths bounds the term length: months * MonthDuration must fit in
// a time.Duration, or the term end would wrap into the past.
const maxLeaseMonths = uint64(math.MaxInt64 / int64(MonthDuration))

// Service is the leasing engine: payment validation, lease creation and
// extension, and expiration-driven reclamation. Catalog, lease ledger and
// ownership ledger form one consistency domain; every mutating operation
// takes the room's lock for its full duration and runs inside a DB
// transaction, so a failed call leaves no observable state change.
type Service struct {
	DB     *gorm.DB
	Ledger ledger.Ledger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	mu        sync.Mutex
	roomLocks map[uint]*sync.Mutex
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// lockRoom returns the mutex guarding a room's pool. Leases on different
// rooms are independent, so locks are per room.
func (s *Service) lockRoom(roomID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roomLocks == nil {
		s.roomLocks = make(map[uint]*sync.Mutex)
	}
	l, ok := s.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.roomLocks[roomID] = l
	}
	return l
}

// LeaseReceipt describes a successful lease or extension.
type LeaseReceipt struct {
	RoomID     uint      `json:"room_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	Shares     uint64    `json:"shares"`
	Months     uint64    `json:"months"`
	Rent       uint64    `json:"rent"`
	SharesHeld uint64    `json:"shares_held"`
	TermEnd    time.Time `json:"term_end"`
}

// LeaseShares leases shares of a room to a tenant for a number of 30-day
// months, prepaid. Re-leasing on top of an unexpired lease is allowed: shares
// and rent accumulate, the term end is recomputed from this call's time plus
// duration (not additive across calls). Overpayment is retained.
func (s *Service) LeaseShares(ctx context.Context, roomID uint, tenantID uuid.UUID, shares, months, payment uint64) (*LeaseReceipt, error) {
	lock := s.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	var receipt *LeaseReceipt
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		if err := tx.Where("room_id = ?", roomID).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return catalog.ErrRoomNotFound
			}
			return err
		}
		if !room.LeasingEnabled {
			return ErrLeasingDisabled
		}
		if shares == 0 || months == 0 {
			return ErrInvalidQuantity
		}
		if months > maxLeaseMonths {
			return ErrAmountOverflow
		}

		rent, err := RentAmount(shares, room.PricePerShare, months)
		if err != nil {
			return err
		}
		if payment < rent {
			return ErrInsufficientPayment
		}

		pool, err := s.Ledger.Balance(tx, roomID, ledger.SystemHolder)
		if err != nil {
			return err
		}
		if pool < shares {
			return ErrInsufficientSupply
		}
		if err := s.Ledger.Transfer(tx, roomID, ledger.SystemHolder, tenantID, shares); err != nil {
			return err
		}

		lease, err := loadLease(tx, roomID, tenantID)
		if err != nil {
			return err
		}
		create := lease == nil
		if create {
			lease = &domain.Lease{RoomID: roomID, TenantID: tenantID}
		}
		held, ok := addChecked(lease.SharesHeld, shares)
		if !ok {
			return ErrAmountOverflow
		}
		paid, ok := addChecked(lease.RentPaid, rent)
		if !ok {
			return ErrAmountOverflow
		}
		lease.SharesHeld = held
		lease.RentPaid = paid
		lease.TermEnd = s.now().Add(time.Duration(months) * MonthDuration)
		if create {
			if err := tx.Create(lease).Error; err != nil {
				return err
			}
		} else if err := tx.Save(lease).Error; err != nil {
			return err
		}

		// Roster is append-only; duplicates are fine.
		if err := tx.Create(&domain.RosterEntry{RoomID: roomID, TenantID: tenantID}).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"shares": shares,
			"months": months,
			"rent":   rent,
		})
		if err := tx.Create(&domain.LeaseEvent{
			RoomID:    roomID,
			TenantID:  tenantID,
			EventType: domain.LeaseEventLeased,
			EventData: datatypes.JSON(eventData),
		}).Error; err != nil {
			return err
		}

		receipt = &LeaseReceipt{
			RoomID:     roomID,
			TenantID:   tenantID,
			Shares:     shares,
			Months:     months,
			Rent:       rent,
			SharesHeld: lease.SharesHeld,
			TermEnd:    lease.TermEnd,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("room_id", roomID).Str("tenant_id", tenantID.String()).
		Uint64("shares", shares).Uint64("months", months).Uint64("rent", receipt.Rent).
		Msg("lease created or extended")
	return receipt, nil
}

// ReclaimReceipt describes a successful reclamation.
type ReclaimReceipt struct {
	RoomID         uint      `json:"room_id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	SharesReturned uint64    `json:"shares_returned"`
}

// ReclaimExpired returns an expired lease's shares to the system pool and
// resets the lease to zero. Strictly post-expiration: a term end equal to now
// still counts as active. All-or-nothing for the whole lease.
func (s *Service) ReclaimExpired(ctx context.Context, roomID uint, tenantID uuid.UUID) (*ReclaimReceipt, error) {
	lock := s.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	var receipt *ReclaimReceipt
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lease, err := loadLease(tx, roomID, tenantID)
		if err != nil {
			return err
		}
		if lease == nil || lease.SharesHeld == 0 {
			return ErrNoLease
		}
		if !lease.TermEnd.Before(s.now()) {
			return ErrLeaseStillActive
		}

		returned := lease.SharesHeld
		if err := s.Ledger.Transfer(tx, roomID, tenantID, ledger.SystemHolder, returned); err != nil {
			return err
		}

		lease.SharesHeld = 0
		lease.RentPaid = 0
		lease.TermEnd = time.Time{}
		if err := tx.Save(lease).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"shares_returned": returned,
		})
		if err := tx.Create(&domain.LeaseEvent{
			RoomID:    roomID,
			TenantID:  tenantID,
			EventType: domain.LeaseEventReclaimed,
			EventData: datatypes.JSON(eventData),
		}).Error; err != nil {
			return err
		}

		receipt = &ReclaimReceipt{RoomID: roomID, TenantID: tenantID, SharesReturned: returned}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("room_id", roomID).Str("tenant_id", tenantID.String()).
		Uint64("shares_returned", receipt.SharesReturned).Msg("lease reclaimed")
	return receipt, nil
}

// LeaseStatus is the read-only view of a (room, tenant) lease.
type LeaseStatus struct {
	Active     bool      `json:"active"`
	TermEnd    time.Time `json:"term_end"`
	SharesHeld uint64    `json:"shares_held"`
	RentPaid   uint64    `json:"rent_paid"`
}

// CheckLeaseStatus never fails for an unknown tenant; it reports the
// zero-lease defaults. Expiration is lazy: an expired lease keeps its shares
// until explicitly reclaimed, it just reports active=false.
func (s *Service) CheckLeaseStatus(ctx context.Context, roomID uint, tenantID uuid.UUID) (*LeaseStatus, error) {
	lease, err := loadLease(s.DB.WithContext(ctx), roomID, tenantID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return &LeaseStatus{}, nil
	}
	return &LeaseStatus{
		Active:     lease.SharesHeld > 0 && !lease.TermEnd.Before(s.now()),
		TermEnd:    lease.TermEnd,
		SharesHeld: lease.SharesHeld,
		RentPaid:   lease.RentPaid,
	}, nil
}

// Tenants returns the append-only roster for a room, including duplicates
// and tenants whose leases have since been reclaimed.
func (s *Service) Tenants(ctx context.Context, roomID uint) ([]uuid.UUID, error) {
	var entries []domain.RosterEntry
	if err := s.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	tenants := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		tenants[i] = e.TenantID
	}
	return tenants, nil
}

func loadLease(tx *gorm.DB, roomID uint, tenantID uuid.UUID) (*domain.Lease, error) {
	var lease domain.Lease
	err := tx.Where("room_id = ? AND tenant_id = ?", roomID, tenantID).First(&lease).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lease, nil
}
