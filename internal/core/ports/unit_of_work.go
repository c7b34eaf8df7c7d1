package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Every mutating
// command runs all of its effects (stock writes, usage rows, status
// changes) inside one unit of work, so a failure partway through leaves no
// partial effect.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; rolling back a finished transaction is a no-op error.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// PromotionRepository returns a PromotionRepository bound to the current transaction.
	PromotionRepository() PromotionRepository

	// VoucherRepository returns a VoucherRepository bound to the current transaction.
	VoucherRepository() VoucherRepository

	// DeliveryRepository returns a DeliveryRepository bound to the current transaction.
	DeliveryRepository() DeliveryRepository

	// CustomerRepository returns a CustomerRepository bound to the current transaction.
	CustomerRepository() CustomerRepository

	// StockRepository returns a StockRepository bound to the current transaction.
	StockRepository() StockRepository
}
