package review

import (
	"context"
	"strings"

	"emedica-be/internal/logger"
	"emedica-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrUpdate(ctx context.Context, input CreateReviewInput) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) (*ListResult, error)
	GetMine(ctx context.Context, productID uuid.UUID) (*Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOrUpdate(ctx context.Context, input CreateReviewInput) (*Review, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rv, err := s.repo.Upsert(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("review saved",
		zap.String("review_id", rv.ID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("rating", rv.Rating),
	)
	return rv, nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) (*ListResult, error) {
	reviews, total, err := s.repo.ListByProduct(ctx, productID, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Items:      reviews,
		Total:      total,
		TotalPages: utils.TotalPages(total, limit),
	}, nil
}

func (s *service) GetMine(ctx context.Context, productID uuid.UUID) (*Review, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.GetByUserAndProduct(ctx, userID, productID)
}
