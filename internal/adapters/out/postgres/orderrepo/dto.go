// Package orderrepo persists order aggregates. An order maps to one row in
// "orders" plus one row per line in "order_lines"; the full aggregate is
// written at creation, only the status changes afterwards.
package orderrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for order aggregates. Indexed
// by customer and status for the completed-spend sum and by status for the
// auto-assignment scan.
type OrderDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID       `gorm:"type:uuid;index:idx_orders_customer_status"`
	Status     int             `gorm:"index:idx_orders_customer_status;index"`
	Total      decimal.Decimal `gorm:"type:decimal(18,2)"`
	Discount   decimal.Decimal `gorm:"type:decimal(18,2)"`
	FinalTotal decimal.Decimal `gorm:"type:decimal(18,2)"`
	VoucherID  *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt  int64           `gorm:"autoCreateTime"`

	Lines []LineDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one priced line of an order.
type LineDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index"`
	VariantID  uuid.UUID       `gorm:"type:uuid;index"`
	Quantity   int
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2)"`
	FinalPrice decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName overrides GORM's default naming to use "order_lines".
func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var voucherID *uuid.UUID
	if id := aggregate.VoucherID(); id != nil {
		raw := id.Bytes()
		voucherID = &raw
	}

	lines := aggregate.Lines()
	lineDTOs := make([]LineDTO, 0, len(lines))
	for _, line := range lines {
		lineDTOs = append(lineDTOs, LineDTO{
			ID:         line.ID().Bytes(),
			OrderID:    aggregate.ID().Bytes(),
			VariantID:  line.VariantID().Bytes(),
			Quantity:   line.Quantity(),
			UnitPrice:  line.UnitPrice().Decimal(),
			FinalPrice: line.FinalPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		Status:     int(aggregate.Status()),
		Total:      aggregate.Total().Decimal(),
		Discount:   aggregate.Discount().Decimal(),
		FinalTotal: aggregate.FinalTotal().Decimal(),
		VoucherID:  voucherID,
		Lines:      lineDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var voucherID *kernel.UUID
	if dto.VoucherID != nil {
		vID, voucherErr := kernel.UUIDFromBytes((*dto.VoucherID)[:])
		if voucherErr != nil {
			return nil, voucherErr
		}
		voucherID = &vID
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}
	finalTotal, err := kernel.NewMoney(dto.FinalTotal)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, order.Status(dto.Status),
		lines,
		total, discount, finalTotal,
		voucherID,
	)
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	finalPrice, err := kernel.NewMoney(dto.FinalPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(id, variantID, dto.Quantity, unitPrice, finalPrice)
}
