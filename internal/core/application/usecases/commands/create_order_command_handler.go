package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/promotion"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// The whole creation is one transaction: stock is decremented with
// conditional writes, the pricing engine produces the totals, and the
// promotion and voucher usage ledgers are written alongside the order. When
// any step fails (insufficient stock, an invalid voucher, a uniqueness
// conflict on a usage row), the transaction rolls back and nothing is
// reserved.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, engine, publisher)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), customerID, items, "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	engine     services.PricingEngine
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	engine services.PricingEngine,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		publisher:  publisher,
	}
}

// Handle processes the order creation command. The created order starts in
// the Pending status; the status event is published only after the
// transaction committed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines, err := h.reserveStock(ctx, uow, cmd.Items())
	if err != nil {
		return err
	}

	lookup := h.candidateLookup(ctx, uow.PromotionRepository())

	quote, err := h.engine.ComputeTotals(lines, lookup, nil, now)
	if err != nil {
		return err
	}

	if cmd.VoucherCode() != "" {
		redeemed, redeemErr := h.redeemVoucher(ctx, uow, cmd, quote.FinalTotal, now)
		if redeemErr != nil {
			return redeemErr
		}
		quote, err = h.engine.ComputeTotals(lines, lookup, redeemed, now)
		if err != nil {
			return err
		}
	}

	aggregate, err := h.buildOrder(cmd, quote)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = h.recordUsages(ctx, uow, cmd, quote); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.OrderStatusChanged(ctx, aggregate.ID(), aggregate.Status())
	return nil
}

// reserveStock snapshots each variant, checks the requested quantity against
// the snapshot, then decrements its stock. The conditional decrement remains
// the authoritative availability check; the snapshot check fails fast before
// any mutation.
func (h *CreateOrderCommandHandler) reserveStock(
	ctx context.Context,
	uow CheckoutUoW,
	items []CartItem,
) ([]services.PricedLine, error) {
	stockRepo := uow.StockRepository()

	lines := make([]services.PricedLine, 0, len(items))
	for _, item := range items {
		snapshot, err := stockRepo.GetSnapshot(ctx, item.VariantID)
		if err != nil {
			return nil, err
		}
		if err = snapshot.CheckStock(item.Quantity); err != nil {
			return nil, fmt.Errorf("variant %s: %w", item.VariantID, err)
		}
		if err = stockRepo.Decrement(ctx, item.VariantID, item.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, services.PricedLine{
			LineID:   kernel.NewUUID(),
			Snapshot: snapshot,
			Quantity: item.Quantity,
		})
	}
	return lines, nil
}

// candidateLookup wraps the promotion repository in a memoizing lookup, so
// pricing the order twice (once for the voucher subtotal, once final) does
// not fetch candidates twice per line.
func (h *CreateOrderCommandHandler) candidateLookup(
	ctx context.Context,
	repo ports.PromotionRepository,
) services.CandidateLookup {
	cache := make(map[string][]*promotion.Promotion)

	return func(target promotion.TargetContext) ([]*promotion.Promotion, error) {
		if cached, ok := cache[target.Key()]; ok {
			return cached, nil
		}
		candidates, err := repo.GetCandidates(ctx, target)
		if err != nil {
			return nil, err
		}
		cache[target.Key()] = candidates
		return candidates, nil
	}
}

func (h *CreateOrderCommandHandler) redeemVoucher(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CreateOrderCommand,
	subtotal kernel.Money,
	now time.Time,
) (*voucher.Voucher, error) {
	cust, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	ledger := services.NewVoucherLedger(uow.VoucherRepository())
	return ledger.Validate(ctx, cmd.VoucherCode(), cust, subtotal, now)
}

func (h *CreateOrderCommandHandler) buildOrder(cmd CreateOrderCommand, quote services.Quote) (*order.Order, error) {
	lines := make([]*order.Line, 0, len(quote.Lines))
	for _, res := range quote.Lines {
		line, err := order.NewLine(res.LineID, res.VariantID, res.Quantity, res.UnitPrice, res.FinalPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	var voucherID *kernel.UUID
	if quote.Voucher != nil {
		id := quote.Voucher.ID()
		voucherID = &id
	}

	return order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(),
		lines,
		quote.Total, quote.Discount, quote.FinalTotal,
		voucherID,
	)
}

// recordUsages appends the usage rows proving which discounts the order
// consumed. The storage uniqueness constraints fire here when a concurrent
// transaction already spent the same voucher.
func (h *CreateOrderCommandHandler) recordUsages(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CreateOrderCommand,
	quote services.Quote,
) error {
	promoRepo := uow.PromotionRepository()
	for _, res := range quote.Lines {
		if res.Promotion == nil {
			continue
		}
		usage, err := promotion.NewUsage(
			kernel.NewUUID(), res.Promotion.ID(), cmd.OrderID(), res.LineID, res.PromotionDiscount)
		if err != nil {
			return err
		}
		if err = promoRepo.AddUsage(ctx, usage); err != nil {
			return err
		}
	}

	if quote.Voucher == nil {
		return nil
	}

	usage, err := voucher.NewUsage(
		kernel.NewUUID(), quote.Voucher.ID(), cmd.OrderID(), cmd.CustomerID(), quote.VoucherDiscount)
	if err != nil {
		return err
	}
	return uow.VoucherRepository().AddUsage(ctx, usage)
}
