package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"emedica-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter string, limit, offset int) ([]Category, int64, error)
	ListBrands(ctx context.Context, category string) ([]Brand, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// List groups the catalog by category name. filter is a case-insensitive
// substring match.
func (r *repository) List(ctx context.Context, filter string, limit, offset int) ([]Category, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("filter", filter),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	where := []string{"category <> ''"}
	args := []any{}
	if filter != "" {
		args = append(args, "%"+filter+"%")
		where = append(where, fmt.Sprintf("category ILIKE $%d", len(args)))
	}
	whereSQL := " WHERE " + strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT category) FROM products`+whereSQL,
		args...,
	).Scan(&total); err != nil {
		log.Error("failed to count categories", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT category, COUNT(*) FROM products` + whereSQL +
		fmt.Sprintf(" GROUP BY category ORDER BY category ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	categories := make([]Category, 0, limit)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Name, &c.ProductCount); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *repository) ListBrands(ctx context.Context, category string) ([]Brand, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT brand, COUNT(*)
		FROM products
		WHERE category = $1
		GROUP BY brand
		ORDER BY brand ASC`,
		category,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list brands",
			zap.String("layer", "repository"),
			zap.String("category", category),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	brands := []Brand{}
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.Name, &b.ProductCount); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, ErrCategoryNotFound
	}
	return brands, nil
}
