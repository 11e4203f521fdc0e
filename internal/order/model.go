package order

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"emedica-be/internal/address"
	"emedica-be/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MethodCOD = "COD"

type Item struct {
	ProductID uuid.UUID
	Name      string
	Slug      string
	Image     string
	Quantity  int
	Price     decimal.Decimal
}

type Order struct {
	ID              uuid.UUID
	UserID          uint
	UserName        string
	Items           []Item
	ShippingAddress address.ShippingAddress
	PaymentMethod   string
	Prices          pricing.Prices
	IsPaid          bool
	PaidAt          *time.Time
	PaymentResult   *PaymentResult
	PaymentIntent   *string
	IsDelivered     bool
	DeliveredAt     *time.Time
	CreatedAt       time.Time
}

// PaymentResult records how an order was paid.
type PaymentResult struct {
	ID           string `json:"id,omitempty"`
	Status       string `json:"status,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Method       string `json:"method,omitempty"`
}

func (p PaymentResult) Validate() error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Status) == "" {
		return fmt.Errorf("%w: payment result needs id and status", ErrInvalidInput)
	}
	return nil
}

func (p PaymentResult) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PaymentResult) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("payment result: unsupported column type")
	}
}

// CODResult is recorded when an order is paid in cash on delivery.
func CODResult() PaymentResult {
	return PaymentResult{Method: MethodCOD}
}

type ListResult struct {
	Items      []Order
	Total      int64
	TotalPages int
	Page       int
}

type CapturePaymentInput struct {
	PaymentID string `json:"paymentId"`
}

func (in CapturePaymentInput) Validate() error {
	if strings.TrimSpace(in.PaymentID) == "" {
		return fmt.Errorf("%w: paymentId is required", ErrInvalidInput)
	}
	return nil
}

// Event is the payload published for order lifecycle changes.
type Event struct {
	OrderID    string `json:"orderId"`
	UserID     uint   `json:"userId"`
	TotalPrice string `json:"totalPrice"`
	ItemCount  int    `json:"itemCount"`
	IsPaid     bool   `json:"isPaid"`
	Delivered  bool   `json:"isDelivered"`
}

func newEvent(o *Order) Event {
	count := 0
	for _, it := range o.Items {
		count += it.Quantity
	}
	return Event{
		OrderID:    o.ID.String(),
		UserID:     o.UserID,
		TotalPrice: o.Prices.TotalPrice.StringFixed(2),
		ItemCount:  count,
		IsPaid:     o.IsPaid,
		Delivered:  o.IsDelivered,
	}
}
