package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCart      OrderStatus = "cart"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// allowed moves once an order has left the cart state
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:  {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
// Cart -> Pending happens only through checkout and is not listed here.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// Order is a user's order document. While Status is cart it is the user's
// mutable shopping cart; at most one such order exists per user.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Status    OrderStatus     `json:"status"`
	Lines     []OrderLine     `json:"products"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MarshalJSON leaves out id and timestamps for an order that was never
// stored, such as the placeholder returned for a user without a cart.
func (o Order) MarshalJSON() ([]byte, error) {
	type order Order

	if o.ID != uuid.Nil {
		return json.Marshal(order(o))
	}

	return json.Marshal(struct {
		order
		ID        *uuid.UUID `json:"id,omitempty"`
		CreatedAt *time.Time `json:"created_at,omitempty"`
		UpdatedAt *time.Time `json:"updated_at,omitempty"`
	}{order: order(o)})
}

// Recalculate sets Total to the sum of every line priced at its own snapshot.
func (o *Order) Recalculate() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}

	o.Total = total
}

func (o *Order) Line(productID uuid.UUID) (*OrderLine, bool) {
	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			return &o.Lines[i], true
		}
	}

	return nil, false
}

func (o *Order) IsEmpty() bool {
	return len(o.Lines) == 0
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=confirmed shipping delivered cancelled"`
}
