// Package deliveryrepo persists delivery assignments and the shipper
// roster. Both exclusivity rules are storage constraints here: the unique
// index on order_id rejects a second assignment for an order, and the
// partial unique index on shipper_id (rows in the Delivering status only)
// rejects a shipper starting a second delivery.
package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for delivery assignments.
type AssignmentDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	ShipperID     uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:udx_deliveries_active_shipper,where:status = 2"`
	Status        int        `gorm:"index"`
	DeliveredAt   *time.Time
	ProofImages   []string   `gorm:"serializer:json"`
	FailureReason string
}

// TableName overrides GORM's default naming to use "deliveries".
func (AssignmentDTO) TableName() string {
	return "deliveries"
}

// ShipperDTO is one rostered shipper. The roster itself is maintained
// elsewhere; the engine reads it for auto-assignment.
type ShipperDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Active bool `gorm:"index"`
}

// TableName overrides GORM's default naming to use "shippers".
func (ShipperDTO) TableName() string {
	return "shippers"
}

func fromDomain(aggregate *delivery.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		ShipperID:     aggregate.ShipperID().Bytes(),
		Status:        int(aggregate.Status()),
		DeliveredAt:   aggregate.DeliveredAt(),
		ProofImages:   aggregate.ProofImages(),
		FailureReason: aggregate.FailureReason(),
	}
}

func toDomain(dto AssignmentDTO) (*delivery.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreAssignment(
		id, orderID, shipperID,
		delivery.Status(dto.Status),
		dto.DeliveredAt,
		dto.ProofImages,
		dto.FailureReason,
	)
}
