package promotion

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Scope declares what part of the catalog a promotion targets.
type Scope int

const (
	// ScopeUnknown is the invalid zero value.
	ScopeUnknown Scope = iota

	// ScopeAll applies to the whole catalog and carries no targets.
	ScopeAll

	// ScopeVariant targets specific product variants.
	ScopeVariant

	// ScopeProduct targets specific products (all their variants).
	ScopeProduct

	// ScopeCategory targets whole categories.
	ScopeCategory

	// ScopeBrand targets whole brands.
	ScopeBrand
)

func scopeStrings() map[Scope]string {
	return map[Scope]string{
		ScopeUnknown:  "Unknown",
		ScopeAll:      "All",
		ScopeVariant:  "Variant",
		ScopeProduct:  "Product",
		ScopeCategory: "Category",
		ScopeBrand:    "Brand",
	}
}

// String implements fmt.Stringer.
func (s Scope) String() string {
	if str, ok := scopeStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects ScopeUnknown and out-of-range values.
func (s Scope) Validate() error {
	if _, ok := scopeStrings()[s]; !ok || s == ScopeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"scope", fmt.Errorf("%d is not a valid promotion scope", s))
	}
	return nil
}
