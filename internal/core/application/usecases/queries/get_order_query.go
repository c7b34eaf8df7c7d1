package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines and, when present, its
// delivery assignment.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	detail, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the order detail read model.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Status     string
	Total      kernel.Money
	Discount   kernel.Money
	FinalTotal kernel.Money
	VoucherID  *kernel.UUID
	Lines      []OrderLineResponse
	Delivery   *OrderDeliveryResponse
}

// OrderLineResponse is one priced line of the order detail.
type OrderLineResponse struct {
	ID         kernel.UUID
	VariantID  kernel.UUID
	Quantity   int
	UnitPrice  kernel.Money
	FinalPrice kernel.Money
}

// OrderDeliveryResponse is the delivery slice of the order detail, present
// once a shipper was assigned.
type OrderDeliveryResponse struct {
	AssignmentID kernel.UUID
	ShipperID    kernel.UUID
	Status       string
	DeliveredAt  *time.Time
}
