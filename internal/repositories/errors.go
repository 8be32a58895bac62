package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("record already exists")
	ErrConflict          = errors.New("record was modified concurrently")
	ErrEmptyCart         = errors.New("cart has no lines")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockError names the product whose stock could not cover a checkout line.
type StockError struct {
	ProductID uuid.UUID
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product %s: %d requested: %s", e.ProductID, e.Requested, ErrInsufficientStock)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

const (
	uniqueViolation     = pq.ErrorCode("23505")
	foreignKeyViolation = pq.ErrorCode("23503")
)

func hasPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == code
}

func isUniqueViolation(err error) bool {
	return hasPQCode(err, uniqueViolation)
}
