package address

import (
	"context"
	"database/sql"
	"errors"

	"emedica-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uint) (*ShippingAddress, error)
	Save(ctx context.Context, userID uint, addr ShippingAddress) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) (*ShippingAddress, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByUserID"),
		zap.Uint("user_id", userID),
	)

	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT address FROM users WHERE id = $1`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrAddressNotFound
	}

	var a ShippingAddress
	if err := a.Scan(raw); err != nil {
		log.Error("decode address failed", zap.Error(err))
		return nil, err
	}
	return &a, nil
}

func (r *repository) Save(ctx context.Context, userID uint, addr ShippingAddress) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Save"),
		zap.Uint("user_id", userID),
	)

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET address = $1, updated_at = NOW() WHERE id = $2`,
		addr, userID,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
