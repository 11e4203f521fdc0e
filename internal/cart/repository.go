package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emedica-be/internal/logger"
	"emedica-be/internal/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Get(ctx context.Context, owner Owner) (*Cart, error)
	AddItem(ctx context.Context, owner Owner, input AddItemInput) (*Cart, error)
	RemoveItem(ctx context.Context, owner Owner, productID uuid.UUID) (*Cart, error)
	MergeSession(ctx context.Context, userID uint, sessionToken string) (*Cart, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *repository) Get(ctx context.Context, owner Owner) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Get"),
	)

	col, val := owner.lookup()
	c := &Cart{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_token, items_price, shipping_price, tax_price, total_price, updated_at
		FROM carts
		WHERE `+col+` = $1`,
		val,
	).Scan(&c.ID, &c.UserID, &c.SessionToken,
		&c.Prices.ItemsPrice, &c.Prices.ShippingPrice, &c.Prices.TaxPrice, &c.Prices.TotalPrice,
		&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		log.Error("failed to get cart", zap.Error(err))
		return nil, err
	}

	c.Items, err = loadItems(ctx, r.db, c.ID)
	if err != nil {
		log.Error("failed to load cart items", zap.Error(err))
		return nil, err
	}
	return c, nil
}

// AddItem merges qty of a product into the owner's cart. The cart row is
// created if missing and held FOR UPDATE for the whole transaction, so
// concurrent adds to one cart apply one after another.
func (r *repository) AddItem(ctx context.Context, owner Owner, input AddItemInput) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddItem"),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("quantity", input.Quantity),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	cartID, err := ensureCart(ctx, tx, owner)
	if err != nil {
		log.Error("failed to lock cart", zap.Error(err))
		return nil, err
	}

	p, err := lockProduct(ctx, tx, input.ProductID)
	if err != nil {
		return nil, err
	}

	items, err := loadItems(ctx, tx, cartID)
	if err != nil {
		log.Error("failed to load cart items", zap.Error(err))
		return nil, err
	}

	items, line, err := addQuantity(items, p, input.Quantity)
	if err != nil {
		log.Warn("add to cart rejected", zap.Error(err))
		return nil, err
	}

	if err := upsertItem(ctx, tx, cartID, line); err != nil {
		log.Error("failed to write cart item", zap.Error(err))
		return nil, err
	}

	prices, err := writePrices(ctx, tx, cartID, items)
	if err != nil {
		log.Error("failed to reprice cart", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cart", zap.Error(err))
		return nil, err
	}

	return ownedCart(cartID, owner, items, prices), nil
}

func (r *repository) RemoveItem(ctx context.Context, owner Owner, productID uuid.UUID) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "RemoveItem"),
		zap.String("product_id", productID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	cartID, err := lockCart(ctx, tx, owner)
	if err != nil {
		if !errors.Is(err, ErrCartNotFound) {
			log.Error("failed to lock cart", zap.Error(err))
		}
		return nil, err
	}

	items, err := loadItems(ctx, tx, cartID)
	if err != nil {
		log.Error("failed to load cart items", zap.Error(err))
		return nil, err
	}

	items, found := removeProduct(items, productID)
	if !found {
		return nil, ErrCartItemNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID,
	); err != nil {
		log.Error("failed to delete cart item", zap.Error(err))
		return nil, err
	}

	prices, err := writePrices(ctx, tx, cartID, items)
	if err != nil {
		log.Error("failed to reprice cart", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cart", zap.Error(err))
		return nil, err
	}

	return ownedCart(cartID, owner, items, prices), nil
}

// MergeSession moves the anonymous cart's lines into the user's cart and
// deletes the anonymous cart. Quantities are capped at the product's stock;
// lines whose product is gone or out of stock are dropped. ErrCartNotFound
// means there was no anonymous cart to merge.
func (r *repository) MergeSession(ctx context.Context, userID uint, sessionToken string) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MergeSession"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	sessionCartID, err := lockCart(ctx, tx, Owner{SessionToken: sessionToken})
	if err != nil {
		if !errors.Is(err, ErrCartNotFound) {
			log.Error("failed to lock session cart", zap.Error(err))
		}
		return nil, err
	}

	incoming, err := loadItems(ctx, tx, sessionCartID)
	if err != nil {
		log.Error("failed to load session cart items", zap.Error(err))
		return nil, err
	}

	owner := Owner{UserID: userID}
	cartID, err := ensureCart(ctx, tx, owner)
	if err != nil {
		log.Error("failed to lock user cart", zap.Error(err))
		return nil, err
	}

	items, err := loadItems(ctx, tx, cartID)
	if err != nil {
		log.Error("failed to load user cart items", zap.Error(err))
		return nil, err
	}

	for _, in := range incoming {
		p, err := lockProduct(ctx, tx, in.ProductID)
		if errors.Is(err, ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		var line Item
		var ok bool
		items, line, ok = addCapped(items, p, in.Quantity)
		if !ok {
			log.Info("session cart line dropped", zap.String("product_id", in.ProductID.String()))
			continue
		}
		if err := upsertItem(ctx, tx, cartID, line); err != nil {
			log.Error("failed to write cart item", zap.Error(err))
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, sessionCartID); err != nil {
		log.Error("failed to delete session cart", zap.Error(err))
		return nil, err
	}

	prices, err := writePrices(ctx, tx, cartID, items)
	if err != nil {
		log.Error("failed to reprice cart", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit merge", zap.Error(err))
		return nil, err
	}

	log.Info("session cart merged", zap.Int("lines", len(incoming)))
	return ownedCart(cartID, owner, items, prices), nil
}

// ensureCart creates the owner's cart row if needed and locks it.
func ensureCart(ctx context.Context, tx *sql.Tx, owner Owner) (uuid.UUID, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO carts (user_id, session_token) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		owner.insertArgs()...,
	); err != nil {
		return uuid.Nil, err
	}
	return lockCart(ctx, tx, owner)
}

func lockCart(ctx context.Context, tx *sql.Tx, owner Owner) (uuid.UUID, error) {
	col, val := owner.lookup()
	var id uuid.UUID
	err := tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE `+col+` = $1 FOR UPDATE`, val).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrCartNotFound
	}
	return id, err
}

// lockProduct reads the product FOR SHARE so its stock cannot drop while the
// cart is being written.
func lockProduct(ctx context.Context, tx *sql.Tx, id uuid.UUID) (stockedProduct, error) {
	var p stockedProduct
	err := tx.QueryRowContext(ctx, `
		SELECT id, name, slug, COALESCE(images[1], ''), price, stock
		FROM products
		WHERE id = $1
		FOR SHARE`,
		id,
	).Scan(&p.ID, &p.Name, &p.Slug, &p.Image, &p.Price, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrProductNotFound
	}
	return p, err
}

func loadItems(ctx context.Context, q querier, cartID uuid.UUID) ([]Item, error) {
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

func upsertItem(ctx context.Context, tx *sql.Tx, cartID uuid.UUID, it Item) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, name, slug, image, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity`,
		cartID, it.ProductID, it.Name, it.Slug, it.Image, it.Quantity, it.Price,
	)
	return err
}

// writePrices stores the calculator's output for items on the cart row.
func writePrices(ctx context.Context, tx *sql.Tx, cartID uuid.UUID, items []Item) (pricing.Prices, error) {
	prices, err := priceItems(items)
	if err != nil {
		return pricing.Prices{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE carts
		SET items_price = $1, shipping_price = $2, tax_price = $3, total_price = $4, updated_at = NOW()
		WHERE id = $5`,
		prices.ItemsPrice, prices.ShippingPrice, prices.TaxPrice, prices.TotalPrice, cartID,
	)
	if err != nil {
		return pricing.Prices{}, fmt.Errorf("update cart prices: %w", err)
	}
	return prices, nil
}

func ownedCart(id uuid.UUID, owner Owner, items []Item, prices pricing.Prices) *Cart {
	c := &Cart{ID: id, Items: items, Prices: prices}
	if owner.IsUser() {
		userID := owner.UserID
		c.UserID = &userID
	} else {
		token := owner.SessionToken
		c.SessionToken = &token
	}
	return c
}
