package payment

import (
	"context"
	"errors"
)

var (
	ErrGateway         = errors.New("payment gateway error")
	ErrInvalidCallback = errors.New("invalid payment callback token")
)

// Gateway creates and captures payments with an external provider.
type Gateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Intent, error)
	CaptureOrder(ctx context.Context, externalID string) (*Capture, error)
}
