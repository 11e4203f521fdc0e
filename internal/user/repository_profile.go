package user

import (
	"context"
	"database/sql"
	"errors"

	"emedica-be/internal/logger"

	"go.uber.org/zap"
)

// GetByID returns the user with its checkout profile (address and payment method).
func (r *repository) GetByID(ctx context.Context, id uint) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.Uint("user_id", id),
	)

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error("failed to scan user", zap.Error(err))
		return nil, err
	}

	return u, nil
}

func (r *repository) UpdatePaymentMethod(ctx context.Context, id uint, method string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdatePaymentMethod"),
		zap.Uint("user_id", id),
	)

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET payment_method = $1, updated_at = NOW() WHERE id = $2`,
		method, id,
	)
	if err != nil {
		log.Error("failed to update payment method", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}

	log.Info("payment method updated", zap.String("payment_method", method))
	return nil
}
