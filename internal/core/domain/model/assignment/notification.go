package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// NotificationOutcome records whether the driver was told about the
// assignment. The outcome is tri-state so that "we never tried" is
// distinguishable from "we tried and the send failed".
type NotificationOutcome int

const (
	// NotificationUnknown represents an invalid or undefined outcome.
	NotificationUnknown NotificationOutcome = iota

	// NotificationPending means no delivery attempt has been recorded yet.
	NotificationPending

	// NotificationSent means the driver was notified successfully.
	NotificationSent

	// NotificationFailed means the delivery attempt failed. The assignment
	// itself stays valid; operators follow up out of band.
	NotificationFailed
)

func getNotificationStrings() map[NotificationOutcome]string {
	return map[NotificationOutcome]string{
		NotificationUnknown: "unknown",
		NotificationPending: "pending",
		NotificationSent:    "sent",
		NotificationFailed:  "failed",
	}
}

// NotificationOutcomeFromString parses the wire representation of an
// outcome ("pending", "sent", "failed").
func NotificationOutcomeFromString(s string) (NotificationOutcome, error) {
	for outcome, str := range getNotificationStrings() {
		if str == s && outcome != NotificationUnknown {
			return outcome, nil
		}
	}
	return NotificationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"notificationOutcome",
		fmt.Errorf("%q is not a known notification outcome", s),
	)
}

// Validate checks that the outcome is one of the defined states.
func (n NotificationOutcome) Validate() error {
	if n < NotificationPending || n > NotificationFailed {
		return errs.NewValueIsInvalidErrorWithCause(
			"notificationOutcome",
			fmt.Errorf("%d is not a valid notification outcome", n),
		)
	}
	return nil
}

// String implements fmt.Stringer.
func (n NotificationOutcome) String() string {
	if str, ok := getNotificationStrings()[n]; ok {
		return str
	}
	return "unknown"
}
