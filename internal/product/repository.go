package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"emedica-be/internal/db"
	"emedica-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetList(ctx context.Context, opts ListOptions) ([]Product, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetFeatured(ctx context.Context, limit int) ([]Product, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, slug, category, brand, description, images, price, stock, rating, num_reviews, is_featured, banner, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p      Product
		banner sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Category, &p.Brand, &p.Description,
		pq.Array(&p.Images), &p.Price, &p.Stock, &p.Rating, &p.NumReviews,
		&p.IsFeatured, &banner, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if banner.Valid {
		p.Banner = &banner.String
	}
	return &p, nil
}

// buildListFilter renders the WHERE clause and its args for opts.
func buildListFilter(opts ListOptions) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if opts.Query != "" {
		add("name ILIKE $%d", "%"+opts.Query+"%")
	}
	if opts.Category != "" {
		add("category = $%d", opts.Category)
	}
	if opts.MinPrice != nil {
		add("price >= $%d", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		add("price <= $%d", *opts.MaxPrice)
	}
	if opts.MinRating != nil {
		add("rating >= $%d", *opts.MinRating)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(s SortOption) string {
	switch s {
	case SortLowest:
		return " ORDER BY price ASC, created_at DESC"
	case SortHighest:
		return " ORDER BY price DESC, created_at DESC"
	case SortRating:
		return " ORDER BY rating DESC, created_at DESC"
	default:
		return " ORDER BY created_at DESC"
	}
}

func (r *repository) GetList(ctx context.Context, opts ListOptions) ([]Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
	)

	where, args := buildListFilter(opts)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	offset := (opts.Page - 1) * opts.Limit
	query := `SELECT ` + productColumns + ` FROM products` + where + orderClause(opts.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, opts.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *repository) getOne(ctx context.Context, method, where string, arg any) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE `+where, arg)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product",
			zap.String("layer", "repository"),
			zap.String("method", method),
			zap.Error(err),
		)
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return r.getOne(ctx, "GetByID", "id = $1", id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return r.getOne(ctx, "GetBySlug", "slug = $1", slug)
}

func (r *repository) GetFeatured(ctx context.Context, limit int) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_featured = TRUE ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query featured products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	images := input.Images
	if images == nil {
		images = []string{}
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, category, brand, description, images, price, stock, is_featured, banner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+productColumns,
		input.Name, input.Slug, input.Category, input.Brand, input.Description,
		pq.Array(images), input.Price, input.Stock, input.IsFeatured, input.Banner,
	)
	p, err := scanProduct(row)
	if err != nil {
		if db.IsUniqueViolation(err, "products_slug_key") {
			return nil, ErrSlugExists
		}
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("product_id", id.String()),
	)

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if input.Name != nil {
		set("name", *input.Name)
	}
	if input.Slug != nil {
		set("slug", *input.Slug)
	}
	if input.Category != nil {
		set("category", *input.Category)
	}
	if input.Brand != nil {
		set("brand", *input.Brand)
	}
	if input.Description != nil {
		set("description", *input.Description)
	}
	if input.Images != nil {
		set("images", pq.Array(input.Images))
	}
	if input.Price != nil {
		set("price", *input.Price)
	}
	if input.Stock != nil {
		set("stock", *input.Stock)
	}
	if input.IsFeatured != nil {
		set("is_featured", *input.IsFeatured)
	}
	if input.Banner != nil {
		set("banner", *input.Banner)
	}
	if len(sets) == 0 {
		return nil, ErrInvalidInput
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrProductNotFound
		case db.IsUniqueViolation(err, "products_slug_key"):
			return nil, ErrSlugExists
		}
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrProductInUse
		}
		logger.FromCtx(ctx).Error("failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
