// Package customer contains the Customer read-write model carried by the
// fulfillment engine (cumulative spending and current ranking band) and the
// static ranking band table it is ranked against.
package customer

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through NewCustomer or RestoreCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer carries the loyalty state of one customer: the cumulative spend
// over completed orders and the ranking band derived from it. Everything else
// about the customer (profile, addresses, authentication) belongs to the
// customer collaborator and is out of scope here.
type Customer struct {
	id            kernel.UUID
	totalSpending kernel.Money
	rankingID     kernel.UUID

	isConstructed bool
}

// NewCustomer creates a customer with zero spend ranked into the given band.
func NewCustomer(id, rankingID kernel.UUID) (*Customer, error) {
	return RestoreCustomer(id, kernel.ZeroMoney(), rankingID)
}

// RestoreCustomer reconstructs a customer from persistence.
func RestoreCustomer(id kernel.UUID, totalSpending kernel.Money, rankingID kernel.UUID) (*Customer, error) {
	if err := errors.Join(id.Validate(), rankingID.Validate()); err != nil {
		return nil, err
	}

	return &Customer{
		id:            id,
		totalSpending: totalSpending,
		rankingID:     rankingID,
		isConstructed: true,
	}, nil
}

// Validate ensures the Customer was created through its constructor.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer identifier.
func (c *Customer) ID() kernel.UUID { return c.id }

// TotalSpending returns the cumulative completed-order spend.
func (c *Customer) TotalSpending() kernel.Money { return c.totalSpending }

// RankingID returns the current ranking band.
func (c *Customer) RankingID() kernel.UUID { return c.rankingID }

// Rerank assigns the band computed for the given spend and records the spend.
// Called by the ranking engine after an order completes.
func (c *Customer) Rerank(spend kernel.Money, band Band) error {
	if err := band.Validate(); err != nil {
		return err
	}
	c.totalSpending = spend
	c.rankingID = band.ID()
	return nil
}
