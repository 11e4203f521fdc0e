package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emedica-be/internal/address"
	"emedica-be/internal/logger"
	"emedica-be/internal/pricing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateFromCart(ctx context.Context, userID uint, shipping address.ShippingAddress, paymentMethod string) (*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*Order, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]Order, int64, error)
	List(ctx context.Context, limit, offset int) ([]Order, int64, error)
	SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error
	MarkPaid(ctx context.Context, id uuid.UUID, result PaymentResult) (*Order, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectOrder = `
	SELECT o.id, o.user_id, u.name, o.shipping_address, o.payment_method,
	       o.items_price, o.shipping_price, o.tax_price, o.total_price,
	       o.is_paid, o.paid_at, o.payment_result, o.payment_intent,
	       o.is_delivered, o.delivered_at, o.created_at
	FROM orders o
	JOIN users u ON u.id = o.user_id`

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(s rowScanner) (*Order, error) {
	var o Order
	err := s.Scan(
		&o.ID, &o.UserID, &o.UserName, &o.ShippingAddress, &o.PaymentMethod,
		&o.Prices.ItemsPrice, &o.Prices.ShippingPrice, &o.Prices.TaxPrice, &o.Prices.TotalPrice,
		&o.IsPaid, &o.PaidAt, &o.PaymentResult, &o.PaymentIntent,
		&o.IsDelivered, &o.DeliveredAt, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateFromCart turns the user's cart into an order and empties the cart in
// one transaction. The cart row stays locked until commit, so a concurrent
// add or checkout waits and then sees the emptied cart.
func (r *repository) CreateFromCart(ctx context.Context, userID uint, shipping address.ShippingAddress, paymentMethod string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromCart"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	var cartID uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		log.Error("failed to lock cart", zap.Error(err))
		return nil, err
	}

	items, err := loadCartItems(ctx, tx, cartID)
	if err != nil {
		log.Error("failed to load cart items", zap.Error(err))
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.LineItem{UnitPrice: it.Price, Quantity: it.Quantity})
	}
	prices, err := pricing.Calculate(lines)
	if err != nil {
		return nil, err
	}

	o := &Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: shipping,
		PaymentMethod:   paymentMethod,
		Prices:          prices,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, shipping_address, payment_method, items_price, shipping_price, tax_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		userID, shipping, paymentMethod,
		prices.ItemsPrice, prices.ShippingPrice, prices.TaxPrice, prices.TotalPrice,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for _, it := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, slug, image, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.ID, it.ProductID, it.Name, it.Slug, it.Image, it.Quantity, it.Price,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.String("product_id", it.ProductID.String()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		log.Error("failed to clear cart items", zap.Error(err))
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE carts
		SET items_price = 0, shipping_price = 0, tax_price = 0, total_price = 0, updated_at = NOW()
		WHERE id = $1`,
		cartID,
	)
	if err != nil {
		log.Error("failed to reset cart prices", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.Int("items", len(items)),
	)
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	return r.getOne(ctx, "GetByID", selectOrder+` WHERE o.id = $1`, id)
}

func (r *repository) GetByPaymentIntent(ctx context.Context, intentID string) (*Order, error) {
	return r.getOne(ctx, "GetByPaymentIntent", selectOrder+` WHERE o.payment_intent = $1`, intentID)
}

func (r *repository) getOne(ctx context.Context, method, query string, arg any) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to get order", zap.Error(err))
		return nil, err
	}

	byOrder, err := loadOrderItems(ctx, r.db, o.ID)
	if err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}
	o.Items = byOrder[o.ID]
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]Order, int64, error) {
	return r.list(ctx, "ListByUser", ` WHERE o.user_id = $1`, []any{userID}, limit, offset)
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Order, int64, error) {
	return r.list(ctx, "List", "", nil, limit, offset)
}

func (r *repository) list(ctx context.Context, method, where string, args []any, limit, offset int) ([]Order, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders o`+where, args...).Scan(&total); err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, 0, err
	}

	query := selectOrder + where + fmt.Sprintf(` ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	orders := []Order{}
	ids := []uuid.UUID{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order", zap.Error(err))
			return nil, 0, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return orders, total, nil
	}

	byOrder, err := loadOrderItems(ctx, r.db, ids...)
	if err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, total, nil
}

func (r *repository) SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_intent = $1 WHERE id = $2 AND NOT is_paid`,
		intentID, id,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to store payment intent", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.explainMiss(ctx, id, ErrAlreadyPaid)
	}
	return nil
}

// MarkPaid moves an order to paid and takes its quantities out of stock in
// the same transaction. Any line that would push stock below zero rolls the
// whole payment back.
func (r *repository) MarkPaid(ctx context.Context, id uuid.UUID, result PaymentResult) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MarkPaid"),
		zap.String("order_id", id.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	var isPaid bool
	err = tx.QueryRowContext(ctx, `SELECT is_paid FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&isPaid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to lock order", zap.Error(err))
		return nil, err
	}
	if isPaid {
		return nil, ErrAlreadyPaid
	}

	byOrder, err := loadOrderItems(ctx, tx, id)
	if err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}

	for _, it := range byOrder[id] {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
			it.Quantity, it.ProductID,
		)
		if err != nil {
			log.Error("failed to decrement stock", zap.Error(err))
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			log.Warn("stock too low to pay order", zap.String("product_id", it.ProductID.String()))
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, it.Name)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET is_paid = TRUE, paid_at = NOW(), payment_result = $1 WHERE id = $2`,
		result, id,
	)
	if err != nil {
		log.Error("failed to mark order paid", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit payment", zap.Error(err))
		return nil, err
	}

	log.Info("order paid")
	return r.GetByID(ctx, id)
}

func (r *repository) MarkDelivered(ctx context.Context, id uuid.UUID) (*Order, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET is_delivered = TRUE, delivered_at = NOW() WHERE id = $1 AND NOT is_delivered`,
		id,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to mark order delivered", zap.Error(err))
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, r.explainMiss(ctx, id, ErrAlreadyDelivered)
	}
	return r.GetByID(ctx, id)
}

// explainMiss tells a missing order apart from one whose guarded update
// matched nothing.
func (r *repository) explainMiss(ctx context.Context, id uuid.UUID, stateErr error) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrOrderNotFound
	}
	return stateErr
}

func loadCartItems(ctx context.Context, q querier, cartID uuid.UUID) ([]Item, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT product_id, name, slug, image, quantity, price
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, product_id`,
		cartID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Slug, &it.Image, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func loadOrderItems(ctx context.Context, q querier, ids ...uuid.UUID) (map[uuid.UUID][]Item, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	rows, err := q.QueryContext(ctx, `
		SELECT order_id, product_id, name, slug, image, quantity, price
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, name`,
		pq.Array(keys),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[uuid.UUID][]Item, len(ids))
	for rows.Next() {
		var orderID uuid.UUID
		var it Item
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Slug, &it.Image, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		byOrder[orderID] = append(byOrder[orderID], it)
	}
	return byOrder, rows.Err()
}
