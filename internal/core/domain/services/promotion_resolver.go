package services

import (
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/promotion"
)

// PromotionResolver selects, among competing promotions, the single one
// applied to a pricing context. The choice is deterministic and independent
// of candidate order: lower priority wins, ties go to the larger discount.
//
// Example:
//
//	resolver := NewPromotionResolver()
//	best, err := resolver.Resolve(ctx, candidates, time.Now())
//	if err != nil {
//	    return err
//	}
//	if best == nil {
//	    // no promotion applies, price stays unchanged
//	}
type PromotionResolver struct{}

// NewPromotionResolver creates a PromotionResolver.
func NewPromotionResolver() PromotionResolver {
	return PromotionResolver{}
}

// Resolve returns the best applicable promotion for the context, or nil when
// none applies. Candidates may contain duplicates (a promotion can match
// through several target rows); they are deduplicated by id. Candidates that
// are inactive, outside their validity window, or do not match the context
// are skipped.
func (r PromotionResolver) Resolve(
	ctx promotion.TargetContext,
	candidates []*promotion.Promotion,
	now time.Time,
) (*promotion.Promotion, error) {
	applicable, err := r.applicable(ctx, candidates, now)
	if err != nil {
		return nil, err
	}
	if len(applicable) == 0 {
		return nil, nil
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		if applicable[i].Priority() != applicable[j].Priority() {
			return applicable[i].Priority() < applicable[j].Priority()
		}
		return applicable[i].Percent() > applicable[j].Percent()
	})

	return applicable[0], nil
}

func (r PromotionResolver) applicable(
	ctx promotion.TargetContext,
	candidates []*promotion.Promotion,
	now time.Time,
) ([]*promotion.Promotion, error) {
	seen := make(map[kernel.UUID]struct{}, len(candidates))
	applicable := make([]*promotion.Promotion, 0, len(candidates))

	for _, p := range candidates {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[p.ID()]; ok {
			continue
		}
		seen[p.ID()] = struct{}{}

		if !p.IsApplicableOn(now) || !p.Matches(ctx) {
			continue
		}
		applicable = append(applicable, p)
	}

	return applicable, nil
}
