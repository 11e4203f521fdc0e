package user

import (
	"context"
	"database/sql"
	"errors"

	"emedica-be/internal/address"
	"emedica-be/internal/db"
	"emedica-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, name, email, password string, role Role) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, int64, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*User, error)
	Delete(ctx context.Context, id uint) error
	UpdatePaymentMethod(ctx context.Context, id uint, method string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, name, email, password, role, address, payment_method, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var (
		u       User
		rawAddr []byte
		method  sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &rawAddr, &method, &u.CreatedAt); err != nil {
		return nil, err
	}
	if len(rawAddr) > 0 {
		var a address.ShippingAddress
		if err := a.Scan(rawAddr); err != nil {
			return nil, err
		}
		u.Address = &a
	}
	if method.Valid {
		u.PaymentMethod = &method.String
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, name, email, password string, role Role) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		name, email, password, role,
	)
	u, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find user by email", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]User, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		log.Error("failed to count users", zap.Error(err))
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user", zap.Error(err))
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateUserInput) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE users SET name = $1, role = $2, updated_at = NOW() WHERE id = $3 RETURNING `+userColumns,
		input.Name, input.Role, id,
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update user", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrUserHasOrders
		}
		logger.FromCtx(ctx).Error("db: failed to delete user", zap.Uint("user_id", id), zap.Error(err))
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
