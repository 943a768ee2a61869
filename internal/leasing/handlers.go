package leasing

import (
	"brickshare-backend/internal/catalog"
	"brickshare-backend/internal/middleware"
	"brickshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// LeaseShares POST /api/v1/leasing/lease-shares — the caller's session
// identity is the tenant; payment_amount is the native-asset amount attached
// to the call.
func (h *Handlers) LeaseShares(c *fiber.Ctx) error {
	tenantID, err := middleware.GetUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body struct {
		RoomID        uint   `json:"room_id"`
		Shares        uint64 `json:"shares"`
		Months        uint64 `json:"months"`
		PaymentAmount uint64 `json:"payment_amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	if body.RoomID == 0 {
		return response.Error(c, "room_id is required", fiber.StatusBadRequest, nil)
	}

	receipt, err := h.Service.LeaseShares(c.Context(), body.RoomID, tenantID, body.Shares, body.Months, body.PaymentAmount)
	if err != nil {
		return leaseError(c, err, body.RoomID)
	}
	return response.Success(c, "Shares leased", receipt, nil)
}

// ReclaimExpired POST /api/v1/leasing/reclaim-expired (admin).
func (h *Handlers) ReclaimExpired(c *fiber.Ctx) error {
	var body struct {
		RoomID   uint   `json:"room_id"`
		TenantID string `json:"tenant_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	tenantID, err := uuid.Parse(body.TenantID)
	if err != nil || body.RoomID == 0 {
		return response.Error(c, "room_id and tenant_id are required", fiber.StatusBadRequest, nil)
	}

	receipt, err := h.Service.ReclaimExpired(c.Context(), body.RoomID, tenantID)
	if err != nil {
		switch err {
		case ErrNoLease:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case ErrLeaseStillActive:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			log.Error().Err(err).Uint("room_id", body.RoomID).Msg("reclaim failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Lease reclaimed", receipt, nil)
}

// CheckLeaseStatus GET /api/v1/leasing/check-lease-status?room_id=&tenant_id=
// tenant_id defaults to the caller's own identity.
func (h *Handlers) CheckLeaseStatus(c *fiber.Ctx) error {
	roomID := c.QueryInt("room_id")
	if roomID <= 0 {
		return response.Error(c, "Invalid room_id", fiber.StatusBadRequest, nil)
	}

	var tenantID uuid.UUID
	if q := c.Query("tenant_id"); q != "" {
		var err error
		tenantID, err = uuid.Parse(q)
		if err != nil {
			return response.Error(c, "Invalid tenant_id", fiber.StatusBadRequest, nil)
		}
	} else {
		var err error
		tenantID, err = middleware.GetUserID(c)
		if err != nil {
			return response.Unauthorized(c, "Unauthorized")
		}
	}

	status, err := h.Service.CheckLeaseStatus(c.Context(), uint(roomID), tenantID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Lease status", status, nil)
}

// GetTenants GET /api/v1/leasing/get-tenants?room_id=
func (h *Handlers) GetTenants(c *fiber.Ctx) error {
	roomID := c.QueryInt("room_id")
	if roomID <= 0 {
		return response.Error(c, "Invalid room_id", fiber.StatusBadRequest, nil)
	}

	tenants, err := h.Service.Tenants(c.Context(), uint(roomID))
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Room tenants", tenants, nil)
}

// leaseError maps engine errors to the standard error response.
func leaseError(c *fiber.Ctx, err error, roomID uint) error {
	switch err {
	case catalog.ErrRoomNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case ErrLeasingDisabled:
		return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
	case ErrInvalidQuantity, ErrAmountOverflow:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case ErrInsufficientPayment:
		return response.Error(c, err.Error(), fiber.StatusPaymentRequired, nil)
	case ErrInsufficientSupply:
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	default:
		log.Error().Err(err).Uint("room_id", roomID).Msg("lease shares failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
