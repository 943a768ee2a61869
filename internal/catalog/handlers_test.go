package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"brickshare-backend/internal/constants"
	"brickshare-backend/internal/domain"
	"brickshare-backend/internal/ledger"
	"brickshare-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogHandlersTest(t *testing.T, role string) (*fiber.App, *Handlers) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Room{}, &domain.ShareBalance{}))
	h := &Handlers{Service: &Service{DB: db, Ledger: ledger.GormLedger{}}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"role":    role,
		})
		return c.Next()
	})
	app.Post("/api/v1/rooms/create-room",
		middleware.AuthorizePermission(constants.CreateRoom), h.CreateRoom)
	app.Patch("/api/v1/rooms/update-lease-status",
		middleware.AuthorizePermission(constants.UpdateLeaseStatus), h.UpdateLeaseStatus)
	app.Get("/api/v1/rooms/get-room/:room_id", h.GetRoom)
	return app, h
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) int {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateRoomHandler_Admin(t *testing.T) {
	app, _ := setupCatalogHandlersTest(t, constants.Admin)

	code := doJSON(t, app, "POST", "/api/v1/rooms/create-room", fiber.Map{
		"room_id": 1, "name": "Apartment 1", "total_shares": 100, "price_per_share": 1,
	})
	assert.Equal(t, fiber.StatusCreated, code)

	// Duplicate id
	code = doJSON(t, app, "POST", "/api/v1/rooms/create-room", fiber.Map{
		"room_id": 1, "name": "Apartment 1", "total_shares": 100, "price_per_share": 1,
	})
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestCreateRoomHandler_TenantForbidden(t *testing.T) {
	app, _ := setupCatalogHandlersTest(t, constants.Tenant)

	code := doJSON(t, app, "POST", "/api/v1/rooms/create-room", fiber.Map{
		"room_id": 1, "name": "Apartment 1", "total_shares": 100, "price_per_share": 1,
	})
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestUpdateLeaseStatusHandler(t *testing.T) {
	app, _ := setupCatalogHandlersTest(t, constants.Admin)

	code := doJSON(t, app, "PATCH", "/api/v1/rooms/update-lease-status", fiber.Map{
		"room_id": 1, "enabled": false, "price_per_share": 2,
	})
	assert.Equal(t, fiber.StatusNotFound, code)

	require.Equal(t, fiber.StatusCreated, doJSON(t, app, "POST", "/api/v1/rooms/create-room", fiber.Map{
		"room_id": 1, "name": "Apartment 1", "total_shares": 100, "price_per_share": 1,
	}))
	code = doJSON(t, app, "PATCH", "/api/v1/rooms/update-lease-status", fiber.Map{
		"room_id": 1, "enabled": false, "price_per_share": 2,
	})
	assert.Equal(t, fiber.StatusOK, code)
}

func TestGetRoomHandler(t *testing.T) {
	app, _ := setupCatalogHandlersTest(t, constants.Admin)

	req := httptest.NewRequest("GET", "/api/v1/rooms/get-room/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	require.Equal(t, fiber.StatusCreated, doJSON(t, app, "POST", "/api/v1/rooms/create-room", fiber.Map{
		"room_id": 1, "name": "Apartment 1", "total_shares": 100, "price_per_share": 1,
	}))

	req = httptest.NewRequest("GET", "/api/v1/rooms/get-room/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Room reads are open: no session required.
func TestGetRoomHandler_Anonymous(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Room{}, &domain.ShareBalance{}))
	svc := &Service{DB: db, Ledger: ledger.GormLedger{}}
	_, err = svc.CreateRoom(context.Background(), CreateRoomInput{
		RoomID: 1, Name: "Apartment 1", TotalShares: 100, PricePerShare: 1,
	})
	require.NoError(t, err)

	app := fiber.New()
	h := &Handlers{Service: svc}
	app.Get("/api/v1/rooms/get-room/:room_id", h.GetRoom)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/rooms/get-room/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
