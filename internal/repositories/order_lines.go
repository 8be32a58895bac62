package repository

import (
	"context"
	"fmt"

	"github.com/PeterMetero/metero-store/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const orderColumns = `id, user_id, status, total, created_at, updated_at`

const linesQuery = `
	SELECT l.order_id, l.product_id, l.quantity, l.unit_price, p.name, p.price, p.image
	FROM order_lines l
	JOIN products p ON p.id = l.product_id
	WHERE l.order_id = ANY($1::uuid[])
	ORDER BY l.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	if err := row.Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}

	order.Lines = []models.OrderLine{}

	return order, nil
}

// attachLines loads the lines of every order in one query, preserving insertion order.
func attachLines(ctx context.Context, q queryer, orders ...*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Order, len(orders))
	ids := make([]string, 0, len(orders))

	for _, order := range orders {
		byID[order.ID] = order
		ids = append(ids, order.ID.String())
	}

	rows, err := q.QueryContext(ctx, linesQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID

		line := models.OrderLine{Product: &models.ProductSummary{}}

		if err := rows.Scan(&orderID, &line.ProductID, &line.Quantity, &line.UnitPrice, &line.Product.Name, &line.Product.Price, &line.Product.Image); err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}

		line.Product.ID = line.ProductID

		if order, ok := byID[orderID]; ok {
			order.Lines = append(order.Lines, line)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate order lines: %w", err)
	}

	return nil
}
