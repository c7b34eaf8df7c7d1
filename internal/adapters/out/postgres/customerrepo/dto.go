// Package customerrepo persists the loyalty state of customers and loads
// the static ranking band table.
package customerrepo

import (
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDTO represents the database structure for customer loyalty state.
type CustomerDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TotalSpending decimal.Decimal `gorm:"type:decimal(18,2)"`
	RankingID     uuid.UUID       `gorm:"type:uuid;index"`
}

// TableName overrides GORM's default naming to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

// BandDTO is one ranking band of the static reference table. MaxSpending is
// null on the unbounded top band.
type BandDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	MinSpending  decimal.Decimal  `gorm:"type:decimal(18,2)"`
	MaxSpending  *decimal.Decimal `gorm:"type:decimal(18,2)"`
	DiscountRate int
}

// TableName overrides GORM's default naming to use "ranking_bands".
func (BandDTO) TableName() string {
	return "ranking_bands"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:            aggregate.ID().Bytes(),
		TotalSpending: aggregate.TotalSpending().Decimal(),
		RankingID:     aggregate.RankingID().Bytes(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	rankingID, err := kernel.UUIDFromBytes(dto.RankingID[:])
	if err != nil {
		return nil, err
	}

	totalSpending, err := kernel.NewMoney(dto.TotalSpending)
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, totalSpending, rankingID)
}

func bandToDomain(dto BandDTO) (customer.Band, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return customer.Band{}, err
	}

	minSpending, err := kernel.NewMoney(dto.MinSpending)
	if err != nil {
		return customer.Band{}, err
	}

	var maxSpending *kernel.Money
	if dto.MaxSpending != nil {
		m, maxErr := kernel.NewMoney(*dto.MaxSpending)
		if maxErr != nil {
			return customer.Band{}, maxErr
		}
		maxSpending = &m
	}

	return customer.NewBand(id, dto.Name, minSpending, maxSpending, dto.DiscountRate)
}
