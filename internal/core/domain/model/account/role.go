// Package account defines the caller role used to authorize mutating
// operations. The role is resolved once at the transport boundary and carried
// explicitly by commands; no handler inspects account records at runtime.
package account

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role is the discriminated caller role attached to every command.
type Role int

const (
	// RoleUnknown is the invalid zero value.
	RoleUnknown Role = iota

	// RoleCustomer may create and cancel their own orders.
	RoleCustomer

	// RoleStaff may drive the forward order transitions (confirm, process,
	// ship, complete) and cancel orders.
	RoleStaff

	// RoleTeamLeader has staff permissions and may assign shippers.
	RoleTeamLeader

	// RoleShipper may start and complete their own delivery assignments.
	RoleShipper

	// RoleSystem is used by background jobs acting on behalf of the engine.
	RoleSystem
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleCustomer:   "Customer",
		RoleStaff:      "Staff",
		RoleTeamLeader: "TeamLeader",
		RoleShipper:    "Shipper",
		RoleSystem:     "System",
	}
}

// RoleFromString parses a role from its transport representation.
func RoleFromString(s string) (Role, error) {
	for role, str := range roleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a known role", s))
}

// String implements fmt.Stringer.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if _, ok := roleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// CanTransitionOrders reports whether the role may drive forward order
// transitions.
func (r Role) CanTransitionOrders() bool {
	return r == RoleStaff || r == RoleTeamLeader || r == RoleSystem
}

// CanAssignShippers reports whether the role may create delivery assignments.
func (r Role) CanAssignShippers() bool {
	return r == RoleTeamLeader || r == RoleSystem
}

// CanOperateDeliveries reports whether the role may start, complete, or fail
// delivery assignments.
func (r Role) CanOperateDeliveries() bool {
	return r == RoleShipper || r == RoleTeamLeader || r == RoleSystem
}
