package product

import (
	"context"
	"strings"
	"time"

	"emedica-be/internal/logger"
	"emedica-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetList(ctx context.Context, opts ListOptions) (*ListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetFeatured(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetList(ctx context.Context, opts ListOptions) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductList"),
	)

	start := time.Now()

	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = utils.DefaultPageLimit
	} else if opts.Limit > utils.MaxPageLimit {
		opts.Limit = utils.MaxPageLimit
	}

	log.Debug("get product list requested",
		zap.Int("page", opts.Page),
		zap.Int("limit", opts.Limit),
		zap.Any("filters", map[string]any{
			"query":      opts.Query,
			"category":   opts.Category,
			"min_price":  opts.MinPrice,
			"max_price":  opts.MaxPrice,
			"min_rating": opts.MinRating,
			"sort":       opts.Sort,
		}),
	)

	products, total, err := s.repo.GetList(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Info("get product list success",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return &ListResult{
		Items:      products,
		Total:      total,
		TotalPages: utils.TotalPages(total, opts.Limit),
		Page:       opts.Page,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) GetFeatured(ctx context.Context) ([]Product, error) {
	return s.repo.GetFeatured(ctx, FeaturedLimit)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Slug) == "" {
		input.Slug = utils.Slugify(input.Name)
	} else {
		input.Slug = utils.Slugify(input.Slug)
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("slug", p.Slug),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Slug != nil {
		slug := utils.Slugify(*input.Slug)
		input.Slug = &slug
	}

	p, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product updated", zap.String("product_id", id.String()))
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("product deleted", zap.String("product_id", id.String()))
	return nil
}
