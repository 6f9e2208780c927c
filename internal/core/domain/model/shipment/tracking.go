package shipment

import (
	"fmt"
	"math/rand/v2"
	"regexp"

	"nexus/internal/pkg/errs"
)

// trackingIDPattern matches the customer-facing tracking code format:
// the "NEX-" prefix followed by five digits.
var trackingIDPattern = regexp.MustCompile(`^NEX-\d{5}$`)

// ErrTrackingIDIsRequired is returned when a tracking id is missing.
var ErrTrackingIDIsRequired = errs.NewValueIsRequiredError("trackingId")

// TrackingID is the human-readable shipment code shown to customers and
// printed on handover labels, e.g. "NEX-48213". It is unique across all
// shipments; uniqueness is enforced at creation time by the order intake,
// which retries generation on collision.
type TrackingID string

// NewRandomTrackingID generates a candidate tracking id. Collisions are
// possible within the five-digit space; the caller checks the store and
// regenerates on collision with a bounded number of attempts.
func NewRandomTrackingID() TrackingID {
	return TrackingID(fmt.Sprintf("NEX-%05d", 10000+rand.IntN(90000))) //nolint:gosec // not a secret
}

// TrackingIDFromString parses and validates a tracking id arriving from a
// client or a scanned handover token.
func TrackingIDFromString(s string) (TrackingID, error) {
	if s == "" {
		return "", ErrTrackingIDIsRequired
	}
	if !trackingIDPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"trackingId", fmt.Errorf("%q does not match the NEX-NNNNN format", s))
	}
	return TrackingID(s), nil
}

// Validate checks the tracking id against the expected format.
func (t TrackingID) Validate() error {
	if t == "" {
		return ErrTrackingIDIsRequired
	}
	if !trackingIDPattern.MatchString(string(t)) {
		return errs.NewValueIsInvalidErrorWithCause(
			"trackingId", fmt.Errorf("%q does not match the NEX-NNNNN format", string(t)))
	}
	return nil
}

// String returns the tracking id as shown to customers.
func (t TrackingID) String() string {
	return string(t)
}
