package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"brickshare-backend/internal/domain"
	"brickshare-backend/internal/leasing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrDirectPaymentRejected: payments must be bundled with a lease operation;
// a bare transfer of funds is refused and refunded.
var ErrDirectPaymentRejected = errors.New("Direct payment with no accompanying lease operation")

// WebhookHandler receives provider payment events. A payment whose metadata
// names a lease operation executes it; anything else is rejected.
type WebhookHandler struct {
	DB            *gorm.DB
	Engine        *leasing.Service
	WebhookSecret string
}

type providerEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type paymentIntentObject struct {
	ID             string            `json:"id"`
	AmountReceived uint64            `json:"amount_received"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	Metadata       map[string]string `json:"metadata"`
}

// HandleWebhook POST /api/v1/payments/webhook — raw body, signature
// verification, then process. Domain failures still answer 200 so the
// provider does not retry; the outcome is recorded on the Payment row.
func (wh *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	rawBody := c.BodyRaw()
	sig := c.Get("Payment-Signature")

	if len(rawBody) == 0 {
		log.Warn().Msg("payment webhook received empty body")
		return c.Status(400).SendString("Webhook Error: empty body")
	}
	if err := verifySignature(rawBody, sig, wh.WebhookSecret); err != nil {
		log.Warn().Err(err).Bool("has_sig", sig != "").Msg("payment webhook signature verification failed")
		return c.Status(400).SendString(fmt.Sprintf("Webhook Error: %s", err.Error()))
	}

	var event providerEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		log.Warn().Err(err).Msg("payment webhook JSON parse failed")
		return c.Status(400).SendString(fmt.Sprintf("Webhook Error: %s", err.Error()))
	}

	if event.Type == "payment_intent.succeeded" {
		var pi paymentIntentObject
		if err := json.Unmarshal(event.Data.Object, &pi); err != nil {
			return c.Status(200).SendString("ok")
		}
		if err := wh.handlePaymentIntentSucceeded(c, pi, event.ID, rawBody); err != nil {
			return c.Status(200).SendString("ok")
		}
	}

	return c.Status(200).SendString("ok")
}

func (wh *WebhookHandler) handlePaymentIntentSucceeded(c *fiber.Ctx, pi paymentIntentObject, eventID string, rawBody []byte) error {
	payment := domain.Payment{
		ProviderPaymentID: pi.ID,
		ProviderEventID:   eventID,
		AmountReceived:    pi.AmountReceived,
		Currency:          pi.Currency,
		Status:            domain.PaymentPending,
		RawPayload:        datatypes.JSON(rawBody),
	}

	roomID, errRoom := strconv.ParseUint(pi.Metadata["room_id"], 10, 32)
	tenantID, errTenant := uuid.Parse(pi.Metadata["tenant_id"])
	shares, errShares := strconv.ParseUint(pi.Metadata["shares"], 10, 64)
	months, errMonths := strconv.ParseUint(pi.Metadata["months"], 10, 64)
	metadataOK := errRoom == nil && errTenant == nil && errShares == nil && errMonths == nil

	rid := uint(roomID)
	if metadataOK {
		payment.RoomID = &rid
		payment.TenantID = &tenantID
	}

	// Claim the intent id before doing any work. The pending row commits in
	// its own transaction, so a concurrent or replayed delivery finds it and
	// stops without touching the lease, and the unique index on the intent id
	// arbitrates a true tie.
	claimed := false
	err := wh.DB.Transaction(func(tx *gorm.DB) error {
		var existing domain.Payment
		if err := tx.Where("provider_payment_id = ?", pi.ID).First(&existing).Error; err == nil {
			return nil
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		claimed = true
		return nil
	})
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	if !metadataOK {
		log.Warn().Str("payment_intent", pi.ID).Msg("direct payment rejected")
		if err := wh.settle(&payment, domain.PaymentRejected, ErrDirectPaymentRejected.Error()); err != nil {
			return err
		}
		return ErrDirectPaymentRejected
	}

	// The lease runs in its own transaction; a failure leaves no lease state
	// behind and the captured funds are marked refunded.
	_, leaseErr := wh.Engine.LeaseShares(c.Context(), rid, tenantID, shares, months, pi.AmountReceived)
	if leaseErr != nil {
		log.Warn().Err(leaseErr).Str("payment_intent", pi.ID).Uint("room_id", rid).Msg("lease failed, payment refunded")
		if err := wh.settle(&payment, domain.PaymentRefunded, leaseErr.Error()); err != nil {
			return err
		}
		return leaseErr
	}

	return wh.settle(&payment, domain.PaymentProcessed, "")
}

// settle moves a claimed payment row to its terminal status.
func (wh *WebhookHandler) settle(p *domain.Payment, status, reason string) error {
	updates := map[string]interface{}{"status": status}
	if reason != "" {
		updates["failure_reason"] = reason
	}
	return wh.DB.Model(p).Updates(updates).Error
}

// verifySignature verifies the Payment-Signature header
// ("t=<unix>,v1=<hmac-sha256 hex>") against the webhook secret.
func verifySignature(payload []byte, sigHeader, secret string) error {
	if sigHeader == "" || secret == "" {
		return errors.New("missing signature or secret")
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errors.New("invalid signature format")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + string(payload)))
	expectedSig := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expectedSig)) {
			ts, err := strconv.ParseInt(timestamp, 10, 64)
			if err != nil {
				return errors.New("invalid timestamp")
			}
			diff := time.Now().Unix() - ts
			if diff < 0 {
				diff = -diff
			}
			// 5 minute tolerance
			if diff > 300 {
				return errors.New("timestamp too old")
			}
			return nil
		}
	}
	return errors.New("signature mismatch")
}
