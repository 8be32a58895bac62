package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one product entry of an order. UnitPrice is the catalog price
// captured when the product first entered the cart.
type OrderLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Product   *ProductSummary `json:"product,omitempty"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  *int      `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

// RequestedQuantity applies the default of one item.
func (r *AddToCartRequest) RequestedQuantity() int {
	if r.Quantity == nil {
		return 1
	}

	return *r.Quantity
}

// EmptyCart is what GetCart returns when the user has no open cart.
func EmptyCart() *Order {
	return &Order{
		Status: OrderStatusCart,
		Lines:  []OrderLine{},
		Total:  decimal.Zero,
	}
}
