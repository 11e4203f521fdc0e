package cart

import (
	"context"
	"errors"

	"emedica-be/internal/logger"
	"emedica-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	GetCart(ctx context.Context, owner Owner) (*Cart, error)
	AddItem(ctx context.Context, owner Owner, input AddItemInput) (*Cart, error)
	RemoveItem(ctx context.Context, owner Owner, productID uuid.UUID) (*Cart, error)
	MergeSessionCart(ctx context.Context, userID uint, sessionToken string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCart never fails for a missing cart; the caller gets an empty one.
func (s *service) GetCart(ctx context.Context, owner Owner) (*Cart, error) {
	if owner.IsZero() {
		return Empty(), nil
	}

	c, err := s.repo.Get(ctx, owner)
	if errors.Is(err, ErrCartNotFound) {
		return Empty(), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) AddItem(ctx context.Context, owner Owner, input AddItemInput) (*Cart, error) {
	if owner.IsZero() {
		return nil, ErrMissingOwner
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.AddItem(ctx, owner, input)
	if err != nil {
		return nil, err
	}

	metrics.Default.Counter(metrics.CartItemsAdded).Inc()
	logger.FromCtx(ctx).Info("item added to cart",
		zap.String("cart_id", c.ID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("quantity", input.Quantity),
	)
	return c, nil
}

func (s *service) RemoveItem(ctx context.Context, owner Owner, productID uuid.UUID) (*Cart, error) {
	if owner.IsZero() {
		return nil, ErrCartNotFound
	}
	if productID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	return s.repo.RemoveItem(ctx, owner, productID)
}

// MergeSessionCart folds the anonymous cart into the user's cart after
// sign-in. Having no anonymous cart is not an error.
func (s *service) MergeSessionCart(ctx context.Context, userID uint, sessionToken string) error {
	if userID == 0 || sessionToken == "" {
		return nil
	}

	_, err := s.repo.MergeSession(ctx, userID, sessionToken)
	if errors.Is(err, ErrCartNotFound) {
		return nil
	}
	return err
}
