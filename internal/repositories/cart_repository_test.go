package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PeterMetero/metero-store/internal/models"
	repository "github.com/PeterMetero/metero-store/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderRowColumns = []string{"id", "user_id", "status", "total", "created_at", "updated_at"}
	lineRowColumns  = []string{"order_id", "product_id", "quantity", "unit_price", "name", "price", "image"}

	ensureCartSQL = regexp.QuoteMeta(`INSERT INTO orders (user_id, status) VALUES ($1, 'cart') ON CONFLICT (user_id) WHERE status = 'cart' DO NOTHING`)
	lockCartSQL   = regexp.QuoteMeta(`SELECT id, user_id, status, total, created_at, updated_at FROM orders WHERE user_id = $1 AND status = 'cart' FOR UPDATE`)
	getCartSQL    = regexp.QuoteMeta(`SELECT id, user_id, status, total, created_at, updated_at FROM orders WHERE user_id = $1 AND status = 'cart'`)
	upsertLineSQL = regexp.QuoteMeta(`INSERT INTO order_lines (order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4) ON CONFLICT (order_id, product_id) DO UPDATE SET quantity = order_lines.quantity + EXCLUDED.quantity`)
	linesSQL      = regexp.QuoteMeta(`SELECT l.order_id, l.product_id, l.quantity, l.unit_price, p.name, p.price, p.image FROM order_lines l JOIN products p ON p.id = l.product_id WHERE l.order_id = ANY($1::uuid[]) ORDER BY l.id`)
	cartTotalSQL  = regexp.QuoteMeta(`UPDATE orders SET total = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`)
	decrementSQL  = regexp.QuoteMeta(`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`)
	placeOrderSQL = regexp.QuoteMeta(`UPDATE orders SET status = $1, total = $2, updated_at = NOW() WHERE id = $3 RETURNING updated_at`)
)

func orderRow(id, userID uuid.UUID, status models.OrderStatus, total string) *sqlmock.Rows {
	now := time.Now()

	return sqlmock.NewRows(orderRowColumns).AddRow(id.String(), userID.String(), string(status), total, now, now)
}

func idsArg(ids ...uuid.UUID) any {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	return pq.Array(raw)
}

func TestCartRepository_AddLine(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	productID := uuid.New()
	price := decimal.RequireFromString("10.00")

	t.Run("Success - First Add Creates Cart", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(ensureCartSQL).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(orderRow(orderID, userID, models.OrderStatusCart, "0"))
		mock.ExpectExec(upsertLineSQL).WithArgs(orderID, productID, 2, price).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery(linesSQL).WithArgs(idsArg(orderID)).
			WillReturnRows(sqlmock.NewRows(lineRowColumns).AddRow(orderID.String(), productID.String(), 2, "10.00", "Mug", "10.00", "mug.png"))
		mock.ExpectQuery(cartTotalSQL).WithArgs(decimal.RequireFromString("20"), orderID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
		mock.ExpectCommit()

		// Act
		order, err := repo.AddLine(t.Context(), userID, models.OrderLine{ProductID: productID, Quantity: 2, UnitPrice: price})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCart, order.Status)
		require.Len(t, order.Lines, 1)
		assert.Equal(t, 2, order.Lines[0].Quantity)
		assert.Equal(t, "Mug", order.Lines[0].Product.Name)
		assert.True(t, decimal.RequireFromString("20").Equal(order.Total))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Same Product Merges Quantity", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec(ensureCartSQL).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(orderRow(orderID, userID, models.OrderStatusCart, "20.00"))
		mock.ExpectExec(upsertLineSQL).WithArgs(orderID, productID, 1, price).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(linesSQL).WithArgs(idsArg(orderID)).
			WillReturnRows(sqlmock.NewRows(lineRowColumns).AddRow(orderID.String(), productID.String(), 3, "10.00", "Mug", "12.00", ""))
		mock.ExpectQuery(cartTotalSQL).WithArgs(decimal.RequireFromString("30"), orderID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
		mock.ExpectCommit()

		// Act
		order, err := repo.AddLine(t.Context(), userID, models.OrderLine{ProductID: productID, Quantity: 1, UnitPrice: price})

		// Assert
		require.NoError(t, err)
		require.Len(t, order.Lines, 1)
		assert.Equal(t, 3, order.Lines[0].Quantity)
		assert.True(t, decimal.RequireFromString("30").Equal(order.Total), "total uses the stored unit price, not the live price")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Retries When Cart Is Checked Out Concurrently", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)
		newOrderID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(ensureCartSQL).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows(orderRowColumns))
		mock.ExpectRollback()

		mock.ExpectBegin()
		mock.ExpectExec(ensureCartSQL).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(orderRow(newOrderID, userID, models.OrderStatusCart, "0"))
		mock.ExpectExec(upsertLineSQL).WithArgs(newOrderID, productID, 1, price).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery(linesSQL).WithArgs(idsArg(newOrderID)).
			WillReturnRows(sqlmock.NewRows(lineRowColumns).AddRow(newOrderID.String(), productID.String(), 1, "10.00", "Mug", "10.00", ""))
		mock.ExpectQuery(cartTotalSQL).WithArgs(decimal.RequireFromString("10"), newOrderID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
		mock.ExpectCommit()

		// Act
		order, err := repo.AddLine(t.Context(), userID, models.OrderLine{ProductID: productID, Quantity: 1, UnitPrice: price})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newOrderID, order.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Gives Up After Repeated Checkouts", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		for range 3 {
			mock.ExpectBegin()
			mock.ExpectExec(ensureCartSQL).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows(orderRowColumns))
			mock.ExpectRollback()
		}

		// Act
		order, err := repo.AddLine(t.Context(), userID, models.OrderLine{ProductID: productID, Quantity: 1, UnitPrice: price})

		// Assert
		require.ErrorIs(t, err, repository.ErrConflict)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Upsert Error Rolls Back", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)
		dbErr := errors.New("upsert failed")

		mock.ExpectBegin()
		mock.ExpectExec(ensureCartSQL).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(orderRow(orderID, userID, models.OrderStatusCart, "0"))
		mock.ExpectExec(upsertLineSQL).WithArgs(orderID, productID, 1, price).WillReturnError(dbErr)
		mock.ExpectRollback()

		// Act
		order, err := repo.AddLine(t.Context(), userID, models.OrderLine{ProductID: productID, Quantity: 1, UnitPrice: price})

		// Assert
		require.ErrorIs(t, err, dbErr)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_GetCart(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("Success - Lines With Product Projection", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)
		first, second := uuid.New(), uuid.New()

		mock.ExpectQuery(getCartSQL).WithArgs(userID).WillReturnRows(orderRow(orderID, userID, models.OrderStatusCart, "35.00"))
		mock.ExpectQuery(linesSQL).WithArgs(idsArg(orderID)).
			WillReturnRows(sqlmock.NewRows(lineRowColumns).
				AddRow(orderID.String(), first.String(), 3, "10.00", "Mug", "10.00", "mug.png").
				AddRow(orderID.String(), second.String(), 1, "5.00", "Spoon", "5.00", ""))

		// Act
		order, err := repo.GetCart(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		require.Len(t, order.Lines, 2)
		assert.Equal(t, first, order.Lines[0].ProductID)
		assert.Equal(t, first, order.Lines[0].Product.ID)
		assert.Equal(t, "mug.png", order.Lines[0].Product.Image)
		assert.Equal(t, "Spoon", order.Lines[1].Product.Name)
		assert.True(t, decimal.RequireFromString("35").Equal(order.Total))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - No Cart", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectQuery(getCartSQL).WithArgs(userID).WillReturnError(sql.ErrNoRows)

		// Act
		order, err := repo.GetCart(t.Context(), userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_Checkout(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	cartLines := func() *sqlmock.Rows {
		return sqlmock.NewRows(lineRowColumns).
			AddRow(orderID.String(), high.String(), 1, "5.00", "Spoon", "5.00", "").
			AddRow(orderID.String(), low.String(), 3, "10.00", "Mug", "10.00", "")
	}

	t.Run("Success - Pending With Stock Decremented In Product Order", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(orderRow(orderID, userID, models.OrderStatusCart, "35.00"))
		mock.ExpectQuery(linesSQL).WithArgs(idsArg(orderID)).WillReturnRows(cartLines())
		mock.ExpectExec(decrementSQL).WithArgs(3, low).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(decrementSQL).WithArgs(1, high).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(placeOrderSQL).WithArgs(models.OrderStatusPending, decimal.RequireFromString("35"), orderID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
		mock.ExpectCommit()

		// Act
		order, err := repo.Checkout(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, orderID, order.ID)
		assert.Len(t, order.Lines, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Insufficient Stock Rolls Back", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(orderRow(orderID, userID, models.OrderStatusCart, "35.00"))
		mock.ExpectQuery(linesSQL).WithArgs(idsArg(orderID)).WillReturnRows(cartLines())
		mock.ExpectExec(decrementSQL).WithArgs(3, low).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(decrementSQL).WithArgs(1, high).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		// Act
		order, err := repo.Checkout(t.Context(), userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrInsufficientStock)

		var stockErr *repository.StockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, high, stockErr.ProductID)
		assert.Equal(t, 1, stockErr.Requested)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - No Cart", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		// Act
		order, err := repo.Checkout(t.Context(), userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Empty Cart Touches No Stock", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockCartSQL).WithArgs(userID).WillReturnRows(orderRow(orderID, userID, models.OrderStatusCart, "0"))
		mock.ExpectQuery(linesSQL).WithArgs(idsArg(orderID)).WillReturnRows(sqlmock.NewRows(lineRowColumns))
		mock.ExpectRollback()

		// Act
		order, err := repo.Checkout(t.Context(), userID)

		// Assert
		require.ErrorIs(t, err, repository.ErrEmptyCart)
		assert.Nil(t, order)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
