package review

import (
	"context"
	"database/sql"
	"errors"

	"emedica-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Upsert(ctx context.Context, userID uint, input CreateReviewInput) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]Review, int64, error)
	GetByUserAndProduct(ctx context.Context, userID uint, productID uuid.UUID) (*Review, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Upsert writes the caller's review and recomputes the product's rating and
// review count in the same transaction.
func (r *repository) Upsert(ctx context.Context, userID uint, input CreateReviewInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.String("product_id", input.ProductID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	// Lock the product so concurrent reviews recompute the average in order.
	var productID uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, input.ProductID).Scan(&productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to lock product", zap.Error(err))
		return nil, err
	}

	rv := Review{UserID: userID, ProductID: input.ProductID}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, product_id, rating, title, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET rating = EXCLUDED.rating,
		              title = EXCLUDED.title,
		              description = EXCLUDED.description,
		              updated_at = NOW()
		RETURNING id, rating, title, description, created_at, updated_at`,
		userID, input.ProductID, input.Rating, input.Title, input.Description,
	).Scan(&rv.ID, &rv.Rating, &rv.Title, &rv.Description, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert review", zap.Error(err))
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products
		SET rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE product_id = $1), 0),
		    num_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = $1)
		WHERE id = $1`,
		input.ProductID,
	)
	if err != nil {
		log.Error("failed to recompute product rating", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit review", zap.Error(err))
		return nil, err
	}

	return &rv, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]Review, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByProduct"),
	)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE product_id = $1`, productID).Scan(&total); err != nil {
		log.Error("failed to count reviews", zap.Error(err))
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, u.name, r.product_id, r.rating, r.title, r.description, r.created_at, r.updated_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`,
		productID, limit, offset,
	)
	if err != nil {
		log.Error("failed to list reviews", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.ProductID, &rv.Rating,
			&rv.Title, &rv.Description, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			log.Error("failed to scan review", zap.Error(err))
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *repository) GetByUserAndProduct(ctx context.Context, userID uint, productID uuid.UUID) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, rating, title, description, created_at, updated_at
		FROM reviews
		WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	).Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Title, &rv.Description, &rv.CreatedAt, &rv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get review", zap.Error(err))
		return nil, err
	}
	return &rv, nil
}
