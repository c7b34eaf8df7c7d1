package promotion

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrPromotionIsNotConstructed is returned when a Promotion instance was not
// created through NewPromotion or RestorePromotion.
var ErrPromotionIsNotConstructed = errors.New("Promotion must be created via NewPromotion constructor")

// TargetContext carries the catalog identifiers of one order line (or one
// listing entry) against which promotions are matched. Any of the identifiers
// may be zero when the catalog does not classify the variant further.
type TargetContext struct {
	VariantID  kernel.UUID
	ProductID  kernel.UUID
	CategoryID kernel.UUID
	BrandID    kernel.UUID
}

// Key returns a stable map key for batch price resolution.
func (c TargetContext) Key() string {
	return c.VariantID.String()
}

// Promotion is a time-bounded percentage discount rule targeting a slice of
// the catalog. Promotions compete: for one pricing context the engine applies
// at most one promotion, chosen by priority (lower wins) and then by the
// larger discount.
//
// Invariants:
//   - discount percent lies in (0, 100]
//   - priority is non-negative
//   - the validity window is ordered (startsAt before endsAt)
//   - ScopeAll promotions carry no targets; every other scope carries at
//     least one target id
type Promotion struct {
	id        kernel.UUID
	name      string
	scope     Scope
	percent   int
	priority  int
	active    bool
	startsAt  time.Time
	endsAt    time.Time
	targetIDs []kernel.UUID

	isConstructed bool
}

// NewPromotion creates a validated Promotion.
func NewPromotion(
	id kernel.UUID,
	name string,
	scope Scope,
	percent int,
	priority int,
	active bool,
	startsAt, endsAt time.Time,
	targetIDs []kernel.UUID,
) (*Promotion, error) {
	p := &Promotion{
		name:          name,
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setScope(scope, targetIDs),
		p.setPercent(percent),
		p.setPriority(priority),
		p.setWindow(startsAt, endsAt),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePromotion reconstructs a Promotion from persistence. The same
// invariants as NewPromotion apply.
func RestorePromotion(
	id kernel.UUID,
	name string,
	scope Scope,
	percent int,
	priority int,
	active bool,
	startsAt, endsAt time.Time,
	targetIDs []kernel.UUID,
) (*Promotion, error) {
	return NewPromotion(id, name, scope, percent, priority, active, startsAt, endsAt, targetIDs)
}

// Validate ensures the Promotion was created through its constructor.
func (p *Promotion) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPromotionIsNotConstructed
	}
	return nil
}

// ID returns the promotion's unique identifier.
func (p *Promotion) ID() kernel.UUID { return p.id }

// Name returns the display name of the promotion.
func (p *Promotion) Name() string { return p.name }

// Scope returns the catalog scope the promotion targets.
func (p *Promotion) Scope() Scope { return p.scope }

// Percent returns the discount percentage in (0, 100].
func (p *Promotion) Percent() int { return p.percent }

// Priority returns the resolution priority; lower values win.
func (p *Promotion) Priority() int { return p.priority }

// Active reports whether the promotion is switched on.
func (p *Promotion) Active() bool { return p.active }

// StartsAt returns the start of the validity window.
func (p *Promotion) StartsAt() time.Time { return p.startsAt }

// EndsAt returns the end of the validity window.
func (p *Promotion) EndsAt() time.Time { return p.endsAt }

// TargetIDs returns the catalog ids the promotion targets. Empty for ScopeAll.
func (p *Promotion) TargetIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(p.targetIDs))
	copy(ids, p.targetIDs)
	return ids
}

// IsApplicableOn reports whether the promotion is active and its validity
// window contains the given instant.
func (p *Promotion) IsApplicableOn(today time.Time) bool {
	return p.active && !today.Before(p.startsAt) && !today.After(p.endsAt)
}

// Matches reports whether the promotion targets the given pricing context.
// ScopeAll matches everything; other scopes match when any target id equals
// the context id of the corresponding kind.
func (p *Promotion) Matches(ctx TargetContext) bool {
	if p.scope == ScopeAll {
		return true
	}

	var want kernel.UUID
	switch p.scope {
	case ScopeVariant:
		want = ctx.VariantID
	case ScopeProduct:
		want = ctx.ProductID
	case ScopeCategory:
		want = ctx.CategoryID
	case ScopeBrand:
		want = ctx.BrandID
	default:
		return false
	}

	for _, target := range p.targetIDs {
		if target.IsEqual(want) {
			return true
		}
	}
	return false
}

// Apply returns the price after the promotion's percentage discount.
// The result is never negative and never exceeds the input price.
func (p *Promotion) Apply(price kernel.Money) kernel.Money {
	return price.DiscountPercent(p.percent)
}

func (p *Promotion) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Promotion) setScope(scope Scope, targetIDs []kernel.UUID) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	if scope == ScopeAll {
		if len(targetIDs) != 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"targets", errors.New("an all-scope promotion carries no targets"))
		}
		p.scope = scope
		return nil
	}

	if len(targetIDs) == 0 {
		return errs.NewValueIsRequiredError("targets")
	}
	for _, id := range targetIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	p.scope = scope
	p.targetIDs = make([]kernel.UUID, len(targetIDs))
	copy(p.targetIDs, targetIDs)
	return nil
}

func (p *Promotion) setPercent(percent int) error {
	if percent <= 0 || percent > 100 {
		return errs.NewValueIsOutOfRangeError("discountPercent", percent, 1, 100)
	}
	p.percent = percent
	return nil
}

func (p *Promotion) setPriority(priority int) error {
	if priority < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority", fmt.Errorf("%d is negative", priority))
	}
	p.priority = priority
	return nil
}

func (p *Promotion) setWindow(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return errs.NewValueIsRequiredError("validity window")
	}
	if endsAt.Before(startsAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"validity window", fmt.Errorf("ends %s before it starts %s", endsAt, startsAt))
	}
	p.startsAt = startsAt
	p.endsAt = endsAt
	return nil
}
