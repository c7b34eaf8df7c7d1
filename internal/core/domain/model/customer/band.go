package customer

import (
	"errors"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrBandIsNotConstructed is returned when a Band instance was not
	// created through NewBand.
	ErrBandIsNotConstructed = errors.New("Band must be created via NewBand constructor")

	// ErrNoBandForSpend indicates that no band's range contains the given
	// spend. A well-formed table always has a band covering zero and an
	// unbounded top band, so this marks broken reference data.
	ErrNoBandForSpend = errors.New("no ranking band matches this spend")
)

// Band is one loyalty tier: customers whose completed-order spend lies in
// [minSpending, maxSpending) hold this band. The top band is unbounded
// (maxSpending nil). Bands carry a rank discount rate consumed by RANK
// vouchers and reporting.
type Band struct {
	id           kernel.UUID
	name         string
	minSpending  kernel.Money
	maxSpending  *kernel.Money
	discountRate int

	isConstructed bool
}

// NewBand creates a validated ranking band. maxSpending nil means unbounded.
func NewBand(id kernel.UUID, name string, minSpending kernel.Money, maxSpending *kernel.Money, discountRate int) (Band, error) {
	if err := id.Validate(); err != nil {
		return Band{}, err
	}
	if name == "" {
		return Band{}, errs.NewValueIsRequiredError("name")
	}
	if discountRate < 0 || discountRate > 100 {
		return Band{}, errs.NewValueIsOutOfRangeError("discountRate", discountRate, 0, 100)
	}

	b := Band{
		id:            id,
		name:          name,
		minSpending:   minSpending,
		discountRate:  discountRate,
		isConstructed: true,
	}
	if maxSpending != nil {
		if !maxSpending.GreaterThanOrEqual(minSpending) || maxSpending.IsEqual(minSpending) {
			return Band{}, errs.NewValueIsInvalidErrorWithCause(
				"maxSpending", fmt.Errorf("%s is not greater than minSpending %s", maxSpending, minSpending))
		}
		m := *maxSpending
		b.maxSpending = &m
	}
	return b, nil
}

// Validate ensures the Band was created through its constructor.
func (b Band) Validate() error {
	if !b.isConstructed {
		return ErrBandIsNotConstructed
	}
	return nil
}

// ID returns the band identifier.
func (b Band) ID() kernel.UUID { return b.id }

// Name returns the display name of the tier.
func (b Band) Name() string { return b.name }

// MinSpending returns the inclusive lower bound of the band.
func (b Band) MinSpending() kernel.Money { return b.minSpending }

// MaxSpending returns the exclusive upper bound, nil for the unbounded top band.
func (b Band) MaxSpending() *kernel.Money {
	if b.maxSpending == nil {
		return nil
	}
	m := *b.maxSpending
	return &m
}

// DiscountRate returns the rank discount percentage of the tier.
func (b Band) DiscountRate() int { return b.discountRate }

// Contains reports whether spend lies in [minSpending, maxSpending).
func (b Band) Contains(spend kernel.Money) bool {
	if !spend.GreaterThanOrEqual(b.minSpending) {
		return false
	}
	return b.maxSpending == nil || spend.LessThan(*b.maxSpending)
}

// Table is the immutable ordered list of ranking bands, loaded once at
// startup. It validates that bands do not overlap, start at zero spend, and
// end with a single unbounded band, so that every spend maps to exactly one
// band.
type Table struct {
	bands []Band
}

// NewTable builds a table from bands in any input order.
func NewTable(bands []Band) (Table, error) {
	if len(bands) == 0 {
		return Table{}, errs.NewValueIsRequiredError("bands")
	}
	for _, b := range bands {
		if err := b.Validate(); err != nil {
			return Table{}, err
		}
	}

	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].minSpending.LessThan(sorted[j].minSpending)
	})

	if !sorted[0].minSpending.IsZero() {
		return Table{}, errs.NewValueIsInvalidErrorWithCause(
			"bands", errors.New("the lowest band must start at zero spend"))
	}
	for i := 0; i < len(sorted)-1; i++ {
		maxSpending := sorted[i].maxSpending
		if maxSpending == nil {
			return Table{}, errs.NewValueIsInvalidErrorWithCause(
				"bands", fmt.Errorf("band %q is unbounded but not the top band", sorted[i].name))
		}
		if !maxSpending.IsEqual(sorted[i+1].minSpending) {
			return Table{}, errs.NewValueIsInvalidErrorWithCause(
				"bands", fmt.Errorf("band %q ends at %s but band %q starts at %s",
					sorted[i].name, maxSpending, sorted[i+1].name, sorted[i+1].minSpending))
		}
	}
	if sorted[len(sorted)-1].maxSpending != nil {
		return Table{}, errs.NewValueIsInvalidErrorWithCause(
			"bands", errors.New("the top band must be unbounded"))
	}

	return Table{bands: sorted}, nil
}

// Bands returns the bands ordered by ascending minSpending.
func (t Table) Bands() []Band {
	bands := make([]Band, len(t.bands))
	copy(bands, t.bands)
	return bands
}

// BandFor returns the band whose range contains the given spend.
func (t Table) BandFor(spend kernel.Money) (Band, error) {
	for i := len(t.bands) - 1; i >= 0; i-- {
		if t.bands[i].Contains(spend) {
			return t.bands[i], nil
		}
	}
	return Band{}, ErrNoBandForSpend
}
