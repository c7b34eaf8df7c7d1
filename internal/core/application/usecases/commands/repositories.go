// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// authorization by explicit caller role, transaction management, and
// persistence. Side effects of one command commit as a single unit.
package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
)

// ErrForbidden indicates the caller's role does not permit the operation.
var ErrForbidden = errors.New("caller role does not permit this operation")

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PromotionRepoFactory provides access to the promotion repository within a transaction.
	PromotionRepoFactory interface {
		PromotionRepository() ports.PromotionRepository
	}

	// VoucherRepoFactory provides access to the voucher repository within a transaction.
	VoucherRepoFactory interface {
		VoucherRepository() ports.VoucherRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// CustomerRepoFactory provides access to the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// StockRepoFactory provides access to the stock repository within a transaction.
	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// OrderUoW manages transactions for order-status-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW manages the order-creation and cancellation transactions,
	// which touch stock, pricing sources, usage ledgers, and the order.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		PromotionRepoFactory
		VoucherRepoFactory
		CustomerRepoFactory
		StockRepoFactory
	}

	// CheckoutUoWFactory creates checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// CompletionUoW manages the order-completion transaction, which updates
	// the order and re-ranks the customer.
	CompletionUoW interface {
		TxManager
		OrderRepoFactory
		CustomerRepoFactory
	}

	// CompletionUoWFactory creates completion unit of work instances.
	CompletionUoWFactory interface {
		Create() CompletionUoW
	}

	// DeliveryUoW manages delivery assignment transactions, which read the
	// order and write the assignment.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}
)
