package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DefaultRoomCount is the size of the fixed catalog seeded at startup.
const DefaultRoomCount = 8

const (
	defaultTotalShares = 100
	// Price per share per month in native base units.
	defaultPricePerShare = 1
)

// SeedDefaultRooms creates the fixed room catalog. Rooms that already exist
// are left untouched, so startup is idempotent.
func (s *Service) SeedDefaultRooms(ctx context.Context) error {
	for i := 1; i <= DefaultRoomCount; i++ {
		_, err := s.CreateRoom(ctx, CreateRoomInput{
			RoomID:        uint(i),
			Name:          fmt.Sprintf("Apartment %d", i),
			TotalShares:   defaultTotalShares,
			PricePerShare: defaultPricePerShare,
		})
		if err == ErrDuplicateRoom {
			continue
		}
		if err != nil {
			return err
		}
		log.Info().Int("room_id", i).Msg("seeded room")
	}
	return nil
}
