package services

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"
	"fulfillment/internal/core/domain/model/voucher"
)

// PricedLine is the input of the pricing engine for one cart line: the
// catalog snapshot of the variant and the requested quantity.
type PricedLine struct {
	LineID   kernel.UUID
	Snapshot catalog.VariantSnapshot
	Quantity int
}

// LineResult is the priced outcome for one line.
type LineResult struct {
	LineID    kernel.UUID
	VariantID kernel.UUID
	Quantity  int

	// UnitPrice is the catalog price per unit at pricing time.
	UnitPrice kernel.Money

	// GrossPrice is UnitPrice × Quantity before any discount.
	GrossPrice kernel.Money

	// FinalPrice is the line total after its promotion discount.
	FinalPrice kernel.Money

	// Promotion is the applied promotion, nil when none matched.
	Promotion *promotion.Promotion

	// PromotionDiscount is GrossPrice − FinalPrice.
	PromotionDiscount kernel.Money
}

// Quote is the deterministic pricing outcome for an order: line results, the
// three totals (gross, discount, final), and the voucher application if one
// was redeemed. Quote always satisfies FinalTotal = Total − Discount ≥ 0.
type Quote struct {
	Lines []LineResult

	Total      kernel.Money
	Discount   kernel.Money
	FinalTotal kernel.Money

	// Voucher is the redeemed voucher, nil when none was supplied.
	Voucher *voucher.Voucher

	// VoucherDiscount is the amount the voucher actually removed from the
	// promotion-discounted subtotal (clamped so the total never goes
	// negative).
	VoucherDiscount kernel.Money
}

// CandidateLookup fetches the promotion candidates matching a pricing
// context. Implemented by the promotion repository; the engine stays pure.
type CandidateLookup func(ctx promotion.TargetContext) ([]*promotion.Promotion, error)

// PricingEngine composes the discount sources into order totals. Discounts
// are applied as an explicit ordered pipeline, first the per-line promotion
// stage and then the order-level voucher stage, so the composition order is
// fixed and auditable. Given identical inputs and identical promotion and
// voucher state, the output is identical.
type PricingEngine struct {
	resolver PromotionResolver
}

// NewPricingEngine creates a PricingEngine using the given resolver.
func NewPricingEngine(resolver PromotionResolver) PricingEngine {
	return PricingEngine{resolver: resolver}
}

// pricingStage is one step of the pipeline. Each stage adjusts the quote's
// running totals and records what it applied.
type pricingStage struct {
	name  string
	apply func(quote *Quote) error
}

// ComputeTotals prices the given lines at the given instant. redeemed must
// already be validated by the voucher ledger (or nil when no code was
// supplied); the engine applies its discount once against the
// promotion-discounted subtotal, never per line.
func (e PricingEngine) ComputeTotals(
	lines []PricedLine,
	candidates CandidateLookup,
	redeemed *voucher.Voucher,
	now time.Time,
) (Quote, error) {
	quote := Quote{Voucher: redeemed}

	for _, stage := range e.stages(lines, candidates, now) {
		if err := stage.apply(&quote); err != nil {
			return Quote{}, fmt.Errorf("pricing stage %s: %w", stage.name, err)
		}
	}

	return quote, nil
}

func (e PricingEngine) stages(lines []PricedLine, candidates CandidateLookup, now time.Time) []pricingStage {
	return []pricingStage{
		{name: "promotion", apply: func(q *Quote) error {
			return e.applyPromotions(q, lines, candidates, now)
		}},
		{name: "voucher", apply: e.applyVoucher},
	}
}

// applyPromotions resolves and applies the best promotion per line and sums
// the gross and promotion-discounted totals.
func (e PricingEngine) applyPromotions(
	q *Quote,
	lines []PricedLine,
	candidates CandidateLookup,
	now time.Time,
) error {
	q.Lines = make([]LineResult, 0, len(lines))

	for _, line := range lines {
		targetCtx := line.Snapshot.TargetContext()

		matched, err := candidates(targetCtx)
		if err != nil {
			return err
		}
		best, err := e.resolver.Resolve(targetCtx, matched, now)
		if err != nil {
			return err
		}

		gross := line.Snapshot.Price.MulInt(line.Quantity)
		final := gross
		if best != nil {
			final = best.Apply(gross)
		}

		q.Lines = append(q.Lines, LineResult{
			LineID:            line.LineID,
			VariantID:         line.Snapshot.VariantID,
			Quantity:          line.Quantity,
			UnitPrice:         line.Snapshot.Price,
			GrossPrice:        gross,
			FinalPrice:        final,
			Promotion:         best,
			PromotionDiscount: gross.SubFloor(final),
		})

		q.Total = q.Total.Add(gross)
		q.FinalTotal = q.FinalTotal.Add(final)
	}

	q.Discount = q.Total.SubFloor(q.FinalTotal)
	return nil
}

// applyVoucher applies the redeemed voucher's fixed discount once against
// the promotion-discounted subtotal.
func (e PricingEngine) applyVoucher(q *Quote) error {
	if q.Voucher == nil {
		return nil
	}

	subtotal := q.FinalTotal
	final := q.Voucher.Apply(subtotal)

	q.VoucherDiscount = subtotal.SubFloor(final)
	q.FinalTotal = final
	q.Discount = q.Total.SubFloor(q.FinalTotal)
	return nil
}
