package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/PeterMetero/metero-store/internal/utils"
	"github.com/google/uuid"
)

// OrderRepository reads placed orders and moves them through their lifecycle.
// Orders still in cart status belong to CartRepository.
type OrderRepository interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const restockQuery = `
	UPDATE products SET stock = stock + $1, updated_at = NOW()
	WHERE id = $2`

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1 AND status <> 'cart'`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := attachLines(dbCtx, r.DB, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1 AND status <> 'cart'`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND status <> 'cart'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0, size)

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}

	rows.Close()

	if err := attachLines(dbCtx, r.DB, orders...); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateOrderStatus moves the order from one status to another only if it is
// still in from. ErrConflict means somebody else moved it first. Cancelling
// returns the order's quantities to stock in the same transaction.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + orderColumns

	var order *models.Order

	err := withTx(dbCtx, r.DB, func(tx *sql.Tx) error {
		var err error

		order, err = scanOrder(tx.QueryRowContext(dbCtx, query, to, id, from))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConflict
			}

			return fmt.Errorf("failed to update order status: %w", err)
		}

		if err := attachLines(dbCtx, tx, order); err != nil {
			return err
		}

		if to != models.OrderStatusCancelled {
			return nil
		}

		for _, line := range byProductID(order.Lines) {
			if _, err := tx.ExecContext(dbCtx, restockQuery, line.Quantity, line.ProductID); err != nil {
				return fmt.Errorf("failed to restock product %s: %w", line.ProductID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
