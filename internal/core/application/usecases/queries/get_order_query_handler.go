package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads the order detail straight from the database,
// bypassing the aggregates. Three reads: the order row, its lines, and the
// optional delivery assignment.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the order
// does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Lines, err = h.readLines(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Delivery, err = h.readDelivery(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			total,
			discount,
			final_total,
			voucher_id
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		id, customerID uuid.UUID
		status         int
		total          decimal.Decimal
		discount       decimal.Decimal
		finalTotal     decimal.Decimal
		voucherID      uuid.NullUUID
	)

	err := row.Scan(&id, &customerID, &status, &total, &discount, &finalTotal, &voucherID)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		Status: order.Status(status).String(),
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Total, err = kernel.NewMoney(total); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Discount, err = kernel.NewMoney(discount); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.FinalTotal, err = kernel.NewMoney(finalTotal); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if voucherID.Valid {
		vID, idErr := kernel.UUIDFromBytes(voucherID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.VoucherID = &vID
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readLines(ctx context.Context, orderID kernel.UUID) ([]OrderLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			variant_id,
			quantity,
			unit_price,
			final_price
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)
	for rows.Next() {
		var (
			id, variantID        uuid.UUID
			quantity             int
			unitPrice, finalCost decimal.Decimal
		)

		if err = rows.Scan(&id, &variantID, &quantity, &unitPrice, &finalCost); err != nil {
			return nil, err
		}

		var line OrderLineResponse
		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if line.VariantID, err = kernel.UUIDFromBytes(variantID[:]); err != nil {
			return nil, err
		}
		line.Quantity = quantity
		if line.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}
		if line.FinalPrice, err = kernel.NewMoney(finalCost); err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (h GetOrderQueryHandler) readDelivery(ctx context.Context, orderID kernel.UUID) (*OrderDeliveryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shipper_id,
			status,
			delivered_at
		FROM deliveries
		WHERE order_id = ?
	`, orderID.Bytes()).Row()

	var (
		id, shipperID uuid.UUID
		status        int
		deliveredAt   sql.NullTime
	)

	err := row.Scan(&id, &shipperID, &status, &deliveredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	resp := OrderDeliveryResponse{
		Status: delivery.Status(status).String(),
	}
	if resp.AssignmentID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if resp.ShipperID, err = kernel.UUIDFromBytes(shipperID[:]); err != nil {
		return nil, err
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time.UTC()
		resp.DeliveredAt = &t
	}

	return &resp, nil
}
