package webhook

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"emedica-be/internal/logger"
	"emedica-be/internal/order"
	"emedica-be/internal/payment"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

const CallbackTokenHeader = "X-Callback-Token"

const (
	EventOrderCompleted   = "CHECKOUT.ORDER.COMPLETED"
	EventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
)

// Payload is the notification body sent by the payment provider.
type Payload struct {
	ID        string   `json:"id"`
	EventType string   `json:"event_type"`
	Resource  Resource `json:"resource"`
}

// Resource is a checkout order for order events and a capture for capture
// events; a capture names its order in supplementary_data.
type Resource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	SupplementaryData struct {
		RelatedIDs struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`
}

// intentID returns the provider order id stored as the order's payment
// intent. ok is false for event types that never confirm a payment. A
// missing event type is read as an order event.
func (p Payload) intentID() (id string, ok bool) {
	switch p.EventType {
	case "", EventOrderCompleted:
		return p.Resource.ID, true
	case EventCaptureCompleted:
		return p.Resource.SupplementaryData.RelatedIDs.OrderID, true
	default:
		return "", false
	}
}

type PaymentConfirmer interface {
	ConfirmExternalPayment(ctx context.Context, intentID string, result order.PaymentResult) (*order.Order, error)
}

type Handler struct {
	orders        PaymentConfirmer
	callbackToken string
}

func NewHandler(orders PaymentConfirmer, callbackToken string) *Handler {
	if callbackToken == "" {
		logger.L().Warn("payment callback token is empty, webhooks will be rejected")
	}
	return &Handler{orders: orders, callbackToken: callbackToken}
}

func (h *Handler) verify(r *http.Request) bool {
	if h.callbackToken == "" {
		return false
	}
	got := r.Header.Get(CallbackTokenHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.callbackToken)) == 1
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "webhook"),
		zap.String("method", "Payment"),
	)

	if !h.verify(r) {
		log.Warn("payment callback rejected", zap.String("ip", r.RemoteAddr))
		utils.WriteJSONError(w, payment.ErrInvalidCallback.Error(), http.StatusUnauthorized)
		return
	}

	var payload Payload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	log = log.With(
		zap.String("event_id", payload.ID),
		zap.String("event_type", payload.EventType),
		zap.String("resource_id", payload.Resource.ID),
		zap.String("status", payload.Resource.Status),
	)

	intentID, ok := payload.intentID()
	if !ok {
		log.Info("payment callback event type ignored")
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}
	if payload.Resource.ID == "" || intentID == "" {
		utils.WriteJSONError(w, "resource id and order id are required", http.StatusBadRequest)
		return
	}
	log = log.With(zap.String("payment_id", intentID))

	if payload.Resource.Status != payment.StatusCompleted {
		log.Info("payment callback ignored")
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	o, err := h.orders.ConfirmExternalPayment(ctx, intentID, order.PaymentResult{
		ID:           payload.Resource.ID,
		Status:       payload.Resource.Status,
		EmailAddress: payload.Resource.Payer.EmailAddress,
		Provider:     payment.ProviderPayPal,
	})
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		log.Warn("payment callback for unknown order")
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, order.ErrInsufficientStock):
		log.Error("paid order cannot be fulfilled from stock", zap.Error(err))
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Error("failed to confirm payment", zap.Error(err))
		utils.WriteJSONError(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	log.Info("payment confirmed", zap.String("order_id", o.ID.String()))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "orderId": o.ID.String()})
}
