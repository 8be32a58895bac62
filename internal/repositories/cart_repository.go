package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/PeterMetero/metero-store/internal/utils"
	"github.com/google/uuid"
)

// CartRepository persists the per-user order in cart status. Every mutation
// runs in one transaction holding a row lock on the cart order.
type CartRepository interface {
	AddLine(ctx context.Context, userID uuid.UUID, line models.OrderLine) (*models.Order, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// a cart that was checked out between our insert and our lock
var errCartMoved = errors.New("cart left cart status before it was locked")

const maxCartAttempts = 3

const (
	ensureCartQuery = `
		INSERT INTO orders (user_id, status)
		VALUES ($1, 'cart')
		ON CONFLICT (user_id) WHERE status = 'cart' DO NOTHING`

	lockCartQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND status = 'cart'
		FOR UPDATE`

	upsertLineQuery = `
		INSERT INTO order_lines (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET quantity = order_lines.quantity + EXCLUDED.quantity`

	updateTotalQuery = `
		UPDATE orders SET total = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at`

	decrementStockQuery = `
		UPDATE products SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1`

	placeOrderQuery = `
		UPDATE orders SET status = $1, total = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`
)

// AddLine finds or creates the user's cart and merges line into it. A line
// for a product already in the cart has its quantity incremented and keeps
// its original unit price.
func (r *cartRepository) AddLine(ctx context.Context, userID uuid.UUID, line models.OrderLine) (*models.Order, error) {
	for range maxCartAttempts {
		order, err := r.addLine(ctx, userID, line)
		if !errors.Is(err, errCartMoved) {
			return order, err
		}
	}

	return nil, ErrConflict
}

func (r *cartRepository) addLine(ctx context.Context, userID uuid.UUID, line models.OrderLine) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var order *models.Order

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(dbCtx, ensureCartQuery, userID); err != nil {
			return fmt.Errorf("failed to ensure cart: %w", err)
		}

		var err error

		order, err = scanOrder(tx.QueryRowContext(dbCtx, lockCartQuery, userID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errCartMoved
			}

			return fmt.Errorf("failed to lock cart: %w", err)
		}

		if _, err := tx.ExecContext(dbCtx, upsertLineQuery, order.ID, line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			return fmt.Errorf("failed to upsert cart line: %w", err)
		}

		if err := attachLines(dbCtx, tx, order); err != nil {
			return err
		}

		order.Recalculate()

		if err := tx.QueryRowContext(dbCtx, updateTotalQuery, order.Total, order.ID).Scan(&order.UpdatedAt); err != nil {
			return fmt.Errorf("failed to update cart total: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetCart returns ErrNotFound when the user has no open cart.
func (r *cartRepository) GetCart(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND status = 'cart'`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if err := attachLines(dbCtx, r.DB, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Checkout moves the user's cart to pending and takes every line's quantity
// out of stock. Any line that can not be covered rolls the whole checkout back.
func (r *cartRepository) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var order *models.Order

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		var err error

		order, err = scanOrder(tx.QueryRowContext(dbCtx, lockCartQuery, userID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}

			return fmt.Errorf("failed to lock cart: %w", err)
		}

		if err := attachLines(dbCtx, tx, order); err != nil {
			return err
		}

		if order.IsEmpty() {
			return ErrEmptyCart
		}

		if err := decrementStock(dbCtx, tx, order.Lines); err != nil {
			return err
		}

		order.Recalculate()
		order.Status = models.OrderStatusPending

		if err := tx.QueryRowContext(dbCtx, placeOrderQuery, order.Status, order.Total, order.ID).Scan(&order.UpdatedAt); err != nil {
			return fmt.Errorf("failed to place order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// byProductID orders lines so concurrent transactions lock product rows in the same sequence.
func byProductID(lines []models.OrderLine) []models.OrderLine {
	sorted := slices.Clone(lines)
	slices.SortFunc(sorted, func(a, b models.OrderLine) int {
		return bytes.Compare(a.ProductID[:], b.ProductID[:])
	})

	return sorted
}

func decrementStock(ctx context.Context, tx *sql.Tx, lines []models.OrderLine) error {
	for _, line := range byProductID(lines) {
		result, err := tx.ExecContext(ctx, decrementStockQuery, line.Quantity, line.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}

		if affected == 0 {
			return &StockError{ProductID: line.ProductID, Requested: line.Quantity}
		}
	}

	return nil
}
