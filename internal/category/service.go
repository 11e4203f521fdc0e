package category

import (
	"context"
	"fmt"
	"strings"

	"emedica-be/internal/logger"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter string, page, limit int) (*ListResult, error)
	ListBrands(ctx context.Context, category string) ([]Brand, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter string, page, limit int) (*ListResult, error) {
	categories, total, err := s.repo.List(ctx, strings.TrimSpace(filter), limit, utils.Offset(page, limit))
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Debug("categories listed",
		zap.String("layer", "service"),
		zap.Int("count", len(categories)),
		zap.Int64("total", total),
	)
	return &ListResult{
		Items:      categories,
		Total:      total,
		TotalPages: utils.TotalPages(total, limit),
		Page:       page,
	}, nil
}

func (s *service) ListBrands(ctx context.Context, category string) ([]Brand, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	return s.repo.ListBrands(ctx, category)
}
