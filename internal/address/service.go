package address

import (
	"context"

	"emedica-be/internal/logger"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

// Service manages the caller's shipping address.
type Service interface {
	Get(ctx context.Context) (*ShippingAddress, error)
	Update(ctx context.Context, input UpdateAddressInput) (*ShippingAddress, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context) (*ShippingAddress, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Update(ctx context.Context, input UpdateAddressInput) (*ShippingAddress, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Update"),
	)

	addr := ToShippingAddress(input)
	if err := addr.Validate(); err != nil {
		log.Warn("invalid address", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Save(ctx, userID, addr); err != nil {
		log.Error("failed to save address", zap.Error(err))
		return nil, err
	}

	log.Info("shipping address updated")
	return &addr, nil
}
