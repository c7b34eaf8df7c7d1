package services

import (
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
)

// RankingEngine recomputes a customer's loyalty band from their
// completed-order spend. The band table is immutable reference data loaded
// once at startup; the engine recomputes from the authoritative spend on
// every completion rather than caching a possibly stale tier.
type RankingEngine struct {
	table customer.Table
}

// NewRankingEngine creates a RankingEngine over the given band table.
func NewRankingEngine(table customer.Table) RankingEngine {
	return RankingEngine{table: table}
}

// Table returns the band table the engine ranks against.
func (e RankingEngine) Table() customer.Table {
	return e.table
}

// Recompute assigns the customer the band containing the given spend and
// records the spend. spend is the sum of final totals over the customer's
// COMPLETED orders, computed by the caller from the order store.
func (e RankingEngine) Recompute(cust *customer.Customer, spend kernel.Money) (customer.Band, error) {
	if err := cust.Validate(); err != nil {
		return customer.Band{}, err
	}

	band, err := e.table.BandFor(spend)
	if err != nil {
		return customer.Band{}, err
	}

	if err = cust.Rerank(spend, band); err != nil {
		return customer.Band{}, err
	}

	return band, nil
}
