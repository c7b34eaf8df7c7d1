// Package voucher models redeemable discount codes and their usage ledger.
// A voucher removes a fixed amount from an order subtotal, once per order.
// Redemption failures are sentinel errors so callers can classify them.
package voucher

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Redemption failures. Validation resolves a code in a fixed order (issued
// GROUP code, then public ALL code, then RANK voucher) and rejects with the
// first applicable failure.
var (
	// ErrVoucherNotFound indicates the code matches no voucher visible to the
	// customer.
	ErrVoucherNotFound = errors.New("voucher not found")

	// ErrVoucherExpired indicates the voucher is inactive or outside its
	// validity window.
	ErrVoucherExpired = errors.New("voucher expired")

	// ErrVoucherNotAssigned indicates a GROUP code that was issued to a
	// different customer.
	ErrVoucherNotAssigned = errors.New("voucher not assigned to this customer")

	// ErrVoucherAlreadyUsed indicates a conflicting usage row already exists.
	ErrVoucherAlreadyUsed = errors.New("voucher already used")

	// ErrVoucherMinimumAmountNotMet indicates the order subtotal is below the
	// voucher's minimum order amount.
	ErrVoucherMinimumAmountNotMet = errors.New("voucher minimum order amount not met")
)

// ErrVoucherIsNotConstructed is returned when a Voucher instance was not
// created through NewVoucher or RestoreVoucher.
var ErrVoucherIsNotConstructed = errors.New("Voucher must be created via NewVoucher constructor")

// Kind discriminates who may redeem a voucher.
type Kind int

const (
	// KindUnknown is the invalid zero value.
	KindUnknown Kind = iota

	// KindAll is a public code any customer may redeem, once per order.
	KindAll

	// KindGroup is issued individually to selected customers; each issue
	// carries its own code and is single-use per customer.
	KindGroup

	// KindRank is restricted to customers holding a specific loyalty rank
	// and is single-use per customer.
	KindRank
)

func kindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown: "Unknown",
		KindAll:     "All",
		KindGroup:   "Group",
		KindRank:    "Rank",
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindStrings()[k]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects KindUnknown and out-of-range values.
func (k Kind) Validate() error {
	if _, ok := kindStrings()[k]; !ok || k == KindUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"kind", fmt.Errorf("%d is not a valid voucher kind", k))
	}
	return nil
}

// SingleUsePerCustomer reports whether one customer may redeem the voucher
// only once across all orders. ALL vouchers are instead single-use per order.
func (k Kind) SingleUsePerCustomer() bool {
	return k == KindGroup || k == KindRank
}

// Voucher is a redeemable code removing a fixed amount from an order
// subtotal when the subtotal meets the voucher's minimum.
type Voucher struct {
	id        kernel.UUID
	code      string
	kind      Kind
	discount  kernel.Money
	minOrder  kernel.Money
	active    bool
	startsAt  time.Time
	endsAt    time.Time
	rankingID *kernel.UUID

	isConstructed bool
}

// NewVoucher creates a validated Voucher. RANK vouchers must reference the
// ranking band they are restricted to; other kinds must not.
func NewVoucher(
	id kernel.UUID,
	code string,
	kind Kind,
	discount kernel.Money,
	minOrder kernel.Money,
	active bool,
	startsAt, endsAt time.Time,
	rankingID *kernel.UUID,
) (*Voucher, error) {
	v := &Voucher{
		discount:      discount,
		minOrder:      minOrder,
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		v.setID(id),
		v.setCode(code),
		v.setKind(kind, rankingID),
		v.setWindow(startsAt, endsAt),
		v.checkDiscount(discount),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVoucher reconstructs a Voucher from persistence.
func RestoreVoucher(
	id kernel.UUID,
	code string,
	kind Kind,
	discount kernel.Money,
	minOrder kernel.Money,
	active bool,
	startsAt, endsAt time.Time,
	rankingID *kernel.UUID,
) (*Voucher, error) {
	return NewVoucher(id, code, kind, discount, minOrder, active, startsAt, endsAt, rankingID)
}

// Validate ensures the Voucher was created through its constructor.
func (v *Voucher) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVoucherIsNotConstructed
	}
	return nil
}

// ID returns the voucher's unique identifier.
func (v *Voucher) ID() kernel.UUID { return v.id }

// Code returns the public code of the voucher. For GROUP vouchers individual
// issue codes differ from this base code.
func (v *Voucher) Code() string { return v.code }

// Kind returns who may redeem the voucher.
func (v *Voucher) Kind() Kind { return v.kind }

// Discount returns the fixed amount the voucher removes from a subtotal.
func (v *Voucher) Discount() kernel.Money { return v.discount }

// MinOrder returns the minimum subtotal required for redemption.
func (v *Voucher) MinOrder() kernel.Money { return v.minOrder }

// Active reports whether the voucher is switched on.
func (v *Voucher) Active() bool { return v.active }

// StartsAt returns the start of the validity window.
func (v *Voucher) StartsAt() time.Time { return v.startsAt }

// EndsAt returns the end of the validity window.
func (v *Voucher) EndsAt() time.Time { return v.endsAt }

// RankingID returns the ranking band a RANK voucher is restricted to,
// nil for other kinds.
func (v *Voucher) RankingID() *kernel.UUID { return v.rankingID }

// CheckRedeemable rejects redemption when the voucher is inactive, outside
// its validity window, or the subtotal is below the minimum order amount.
func (v *Voucher) CheckRedeemable(today time.Time, subtotal kernel.Money) error {
	if !v.active || today.Before(v.startsAt) || today.After(v.endsAt) {
		return ErrVoucherExpired
	}
	if subtotal.LessThan(v.minOrder) {
		return ErrVoucherMinimumAmountNotMet
	}
	return nil
}

// Apply returns the subtotal after the voucher discount, clamped at zero.
func (v *Voucher) Apply(subtotal kernel.Money) kernel.Money {
	return subtotal.SubFloor(v.discount)
}

func (v *Voucher) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Voucher) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	v.code = code
	return nil
}

func (v *Voucher) setKind(kind Kind, rankingID *kernel.UUID) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	if kind == KindRank {
		if rankingID == nil {
			return errs.NewValueIsRequiredError("rankingID")
		}
		if err := rankingID.Validate(); err != nil {
			return err
		}
		id := *rankingID
		v.rankingID = &id
	} else if rankingID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"rankingID", fmt.Errorf("a %s voucher carries no ranking restriction", kind))
	}

	v.kind = kind
	return nil
}

func (v *Voucher) setWindow(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return errs.NewValueIsRequiredError("validity window")
	}
	if endsAt.Before(startsAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"validity window", fmt.Errorf("ends %s before it starts %s", endsAt, startsAt))
	}
	v.startsAt = startsAt
	v.endsAt = endsAt
	return nil
}

func (v *Voucher) checkDiscount(discount kernel.Money) error {
	if discount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause(
			"discountAmount", errors.New("must be greater than zero"))
	}
	return nil
}
