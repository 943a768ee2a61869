package catalog

import (
	"context"
	"testing"

	"brickshare-backend/internal/domain"
	"brickshare-backend/internal/ledger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Room{}, &domain.ShareBalance{}))
	return &Service{DB: db, Ledger: ledger.GormLedger{}}, db
}

func TestCreateRoom_SeedsPool(t *testing.T) {
	svc, db := setupCatalogTest(t)

	room, err := svc.CreateRoom(context.Background(), CreateRoomInput{
		RoomID: 1, Name: "Apartment 1", TotalShares: 100, PricePerShare: 1,
	})
	require.NoError(t, err)
	assert.True(t, room.LeasingEnabled)
	assert.Equal(t, uint64(100), room.TotalShares)

	// The full supply sits in the system pool
	bal, err := ledger.GormLedger{}.Balance(db, 1, ledger.SystemHolder)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)
}

func TestCreateRoom_Duplicate(t *testing.T) {
	svc, db := setupCatalogTest(t)

	_, err := svc.CreateRoom(context.Background(), CreateRoomInput{
		RoomID: 1, Name: "Apartment 1", TotalShares: 100, PricePerShare: 1,
	})
	require.NoError(t, err)

	_, err = svc.CreateRoom(context.Background(), CreateRoomInput{
		RoomID: 1, Name: "Apartment 1 again", TotalShares: 50, PricePerShare: 2,
	})
	assert.ErrorIs(t, err, ErrDuplicateRoom)

	// The failed create must not inflate the pool
	bal, err := ledger.GormLedger{}.Balance(db, 1, ledger.SystemHolder)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)
}

func TestCreateRoom_InvalidInput(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	_, err := svc.CreateRoom(context.Background(), CreateRoomInput{RoomID: 0, Name: "x", TotalShares: 1})
	assert.ErrorIs(t, err, ErrInvalidRoom)
	_, err = svc.CreateRoom(context.Background(), CreateRoomInput{RoomID: 1, Name: "", TotalShares: 1})
	assert.ErrorIs(t, err, ErrInvalidRoom)
	_, err = svc.CreateRoom(context.Background(), CreateRoomInput{RoomID: 1, Name: "x", TotalShares: 0})
	assert.ErrorIs(t, err, ErrInvalidRoom)
}

func TestUpdateLeaseStatus(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	_, err := svc.CreateRoom(context.Background(), CreateRoomInput{
		RoomID: 1, Name: "Apartment 1", TotalShares: 100, PricePerShare: 1,
	})
	require.NoError(t, err)

	room, err := svc.UpdateLeaseStatus(context.Background(), 1, false, 7)
	require.NoError(t, err)
	assert.False(t, room.LeasingEnabled)
	assert.Equal(t, uint64(7), room.PricePerShare)
	// Supply cap never moves
	assert.Equal(t, uint64(100), room.TotalShares)
}

func TestUpdateLeaseStatus_RoomNotFound(t *testing.T) {
	svc, _ := setupCatalogTest(t)
	_, err := svc.UpdateLeaseStatus(context.Background(), 42, true, 1)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetRoom(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	_, err := svc.GetRoom(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = svc.CreateRoom(context.Background(), CreateRoomInput{
		RoomID: 1, Name: "Apartment 1", TotalShares: 100, PricePerShare: 1,
	})
	require.NoError(t, err)

	room, err := svc.GetRoom(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Apartment 1", room.Name)
}

func TestSeedDefaultRooms_Idempotent(t *testing.T) {
	svc, db := setupCatalogTest(t)

	require.NoError(t, svc.SeedDefaultRooms(context.Background()))
	require.NoError(t, svc.SeedDefaultRooms(context.Background()))

	var count int64
	require.NoError(t, db.Model(&domain.Room{}).Count(&count).Error)
	assert.Equal(t, int64(DefaultRoomCount), count)

	// Re-seeding must not mint extra shares
	bal, err := ledger.GormLedger{}.Balance(db, 1, ledger.SystemHolder)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)
}
