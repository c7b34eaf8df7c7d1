package voucher

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrIssueIsNotConstructed is returned when an Issue instance was not created
// through NewIssue or RestoreIssue.
var ErrIssueIsNotConstructed = errors.New("Issue must be created via NewIssue constructor")

// IssueStatus tracks whether an individually issued voucher code has been
// delivered to its customer.
type IssueStatus int

const (
	// IssueStatusUnknown is the invalid zero value.
	IssueStatusUnknown IssueStatus = iota

	// IssueStatusDraft marks a generated code not yet sent to the customer.
	IssueStatusDraft

	// IssueStatusSent marks a code delivered to the customer and redeemable.
	IssueStatusSent
)

func issueStatusStrings() map[IssueStatus]string {
	return map[IssueStatus]string{
		IssueStatusUnknown: "Unknown",
		IssueStatusDraft:   "Draft",
		IssueStatusSent:    "Sent",
	}
}

// String implements fmt.Stringer.
func (s IssueStatus) String() string {
	if str, ok := issueStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects IssueStatusUnknown and out-of-range values.
func (s IssueStatus) Validate() error {
	if _, ok := issueStatusStrings()[s]; !ok || s == IssueStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"issueStatus", fmt.Errorf("%d is not a valid issue status", s))
	}
	return nil
}

// Issue links a GROUP voucher to one customer through an individually
// generated code. Only the issued customer may redeem that code, and only
// after the issue was sent.
type Issue struct {
	id         kernel.UUID
	voucherID  kernel.UUID
	customerID kernel.UUID
	code       string
	status     IssueStatus

	isConstructed bool
}

// NewIssue creates a draft issue of a GROUP voucher for one customer.
func NewIssue(id, voucherID, customerID kernel.UUID, code string) (*Issue, error) {
	return newIssue(id, voucherID, customerID, code, IssueStatusDraft)
}

// RestoreIssue reconstructs an issue from persistence.
func RestoreIssue(id, voucherID, customerID kernel.UUID, code string, status IssueStatus) (*Issue, error) {
	return newIssue(id, voucherID, customerID, code, status)
}

func newIssue(id, voucherID, customerID kernel.UUID, code string, status IssueStatus) (*Issue, error) {
	if err := errors.Join(
		id.Validate(),
		voucherID.Validate(),
		customerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return &Issue{
		id:            id,
		voucherID:     voucherID,
		customerID:    customerID,
		code:          code,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Issue was created through its constructor.
func (i *Issue) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIssueIsNotConstructed
	}
	return nil
}

// ID returns the issue identifier.
func (i *Issue) ID() kernel.UUID { return i.id }

// VoucherID returns the issued voucher's identifier.
func (i *Issue) VoucherID() kernel.UUID { return i.voucherID }

// CustomerID returns the customer the code was issued to.
func (i *Issue) CustomerID() kernel.UUID { return i.customerID }

// Code returns the individually generated code.
func (i *Issue) Code() string { return i.code }

// Status returns the delivery status of the issue.
func (i *Issue) Status() IssueStatus { return i.status }

// MarkSent transitions a draft issue to sent. Sending twice is harmless.
func (i *Issue) MarkSent() {
	i.status = IssueStatusSent
}

// BelongsTo reports whether the issue was made for the given customer.
func (i *Issue) BelongsTo(customerID kernel.UUID) bool {
	return i.customerID.IsEqual(customerID)
}
