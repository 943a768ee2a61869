package catalog

import (
	"brickshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// CreateRoom POST /api/v1/rooms/create-room (admin).
func (h *Handlers) CreateRoom(c *fiber.Ctx) error {
	var body struct {
		RoomID        uint   `json:"room_id"`
		Name          string `json:"name"`
		TotalShares   uint64 `json:"total_shares"`
		PricePerShare uint64 `json:"price_per_share"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	room, err := h.Service.CreateRoom(c.Context(), CreateRoomInput{
		RoomID:        body.RoomID,
		Name:          body.Name,
		TotalShares:   body.TotalShares,
		PricePerShare: body.PricePerShare,
	})
	if err != nil {
		switch err {
		case ErrInvalidRoom:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrDuplicateRoom:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			log.Error().Err(err).Uint("room_id", body.RoomID).Msg("create room failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Room created", room, nil)
}

// UpdateLeaseStatus PATCH /api/v1/rooms/update-lease-status (admin).
func (h *Handlers) UpdateLeaseStatus(c *fiber.Ctx) error {
	var body struct {
		RoomID        uint   `json:"room_id"`
		Enabled       *bool  `json:"enabled"`
		PricePerShare uint64 `json:"price_per_share"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if body.RoomID == 0 || body.Enabled == nil {
		return response.Error(c, "room_id and enabled are required", fiber.StatusBadRequest, nil)
	}

	room, err := h.Service.UpdateLeaseStatus(c.Context(), body.RoomID, *body.Enabled, body.PricePerShare)
	if err != nil {
		if err == ErrRoomNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		log.Error().Err(err).Uint("room_id", body.RoomID).Msg("update lease status failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Room updated", room, nil)
}

// GetRoom GET /api/v1/rooms/get-room/:room_id.
func (h *Handlers) GetRoom(c *fiber.Ctx) error {
	roomID, err := c.ParamsInt("room_id")
	if err != nil || roomID <= 0 {
		return response.Error(c, "Invalid room_id", fiber.StatusBadRequest, nil)
	}

	room, err := h.Service.GetRoom(c.Context(), uint(roomID))
	if err != nil {
		if err == ErrRoomNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Room fetched", room, nil)
}
