package driver

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ApprovalStatus is the onboarding review state of a driver. New drivers
// start as ApprovalPending and must be approved by an operator before they
// can receive orders.
type ApprovalStatus int

const (
	// ApprovalUnknown represents an invalid or undefined approval status.
	ApprovalUnknown ApprovalStatus = iota

	// ApprovalPending means the driver registered and awaits review.
	ApprovalPending

	// ApprovalApproved means the driver passed review and may be dispatched.
	ApprovalApproved

	// ApprovalRejected means the driver failed review.
	ApprovalRejected
)

func getApprovalStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		ApprovalUnknown:  "unknown",
		ApprovalPending:  "pending",
		ApprovalApproved: "approved",
		ApprovalRejected: "rejected",
	}
}

// ApprovalStatusFromString parses the wire representation of an approval
// status ("pending", "approved", "rejected").
func ApprovalStatusFromString(s string) (ApprovalStatus, error) {
	for status, str := range getApprovalStrings() {
		if str == s && status != ApprovalUnknown {
			return status, nil
		}
	}
	return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause(
		"approvalStatus",
		fmt.Errorf("%q is not a known approval status", s),
	)
}

// Validate checks that the ApprovalStatus is one of the defined states.
func (a ApprovalStatus) Validate() error {
	if a < ApprovalPending || a > ApprovalRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"approvalStatus",
			fmt.Errorf("%d is not a valid approval status", a),
		)
	}
	return nil
}

// String implements fmt.Stringer.
func (a ApprovalStatus) String() string {
	if str, ok := getApprovalStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// review applies an operator decision. Only a pending driver can be
// reviewed; decisions are final.
func (a ApprovalStatus) review(decision ApprovalStatus) (ApprovalStatus, error) {
	if a != ApprovalPending {
		return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause(
			"approvalStatus",
			fmt.Errorf("driver is already %s", a),
		)
	}
	if decision != ApprovalApproved && decision != ApprovalRejected {
		return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause(
			"approvalStatus",
			fmt.Errorf("%s is not a review decision", decision),
		)
	}

	return decision, nil
}
