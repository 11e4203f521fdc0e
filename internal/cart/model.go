package cart

import (
	"context"
	"fmt"
	"math"
	"time"

	"emedica-be/internal/pricing"
	"emedica-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Owner identifies a cart. A signed-in user always takes precedence over
// the anonymous session token.
type Owner struct {
	UserID       uint
	SessionToken string
}

func OwnerFromContext(ctx context.Context) Owner {
	userID, _ := utils.GetUserIDFromContext(ctx)
	return Owner{
		UserID:       userID,
		SessionToken: utils.GetSessionTokenFromContext(ctx),
	}
}

func (o Owner) IsZero() bool {
	return o.UserID == 0 && o.SessionToken == ""
}

func (o Owner) IsUser() bool {
	return o.UserID != 0
}

// lookup returns the column and value that select this owner's cart row.
func (o Owner) lookup() (string, any) {
	if o.IsUser() {
		return "user_id", o.UserID
	}
	return "session_token", o.SessionToken
}

// insertArgs returns (user_id, session_token) for a new cart row; exactly one is set.
func (o Owner) insertArgs() []any {
	if o.IsUser() {
		return []any{o.UserID, nil}
	}
	return []any{nil, o.SessionToken}
}

type Item struct {
	ProductID uuid.UUID
	Name      string
	Slug      string
	Image     string
	Quantity  int
	Price     decimal.Decimal
}

type Cart struct {
	ID           uuid.UUID
	UserID       *uint
	SessionToken *string
	Items        []Item
	Prices       pricing.Prices
	UpdatedAt    time.Time
}

// Empty is what a caller without a cart row sees.
func Empty() *Cart {
	return &Cart{Items: []Item{}, Prices: pricing.Zero()}
}

type AddItemInput struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// MaxQuantity matches the INTEGER range of products.stock and cart_items.quantity.
const MaxQuantity = math.MaxInt32

func (in AddItemInput) Validate() error {
	if in.ProductID == uuid.Nil {
		return fmt.Errorf("%w: productId is required", ErrInvalidInput)
	}
	if in.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if in.Quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity must be at most %d", ErrInvalidInput, MaxQuantity)
	}
	return nil
}

// stockedProduct is the product row read while a cart is locked.
type stockedProduct struct {
	ID    uuid.UUID
	Name  string
	Slug  string
	Image string
	Price decimal.Decimal
	Stock int
}
