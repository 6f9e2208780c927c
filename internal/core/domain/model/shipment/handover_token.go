package shipment

import (
	"encoding/json"
	"fmt"

	"nexus/internal/pkg/errs"
)

// HandoverAction names the driver action a scanned handover token requests.
type HandoverAction string

const (
	// ActionStartTransit asks to move the shipment from assigned to in_transit.
	ActionStartTransit HandoverAction = "start_transit"

	// ActionComplete asks to move the shipment from in_transit to delivered.
	ActionComplete HandoverAction = "complete"
)

// Validate checks the action against the known handover actions.
func (a HandoverAction) Validate() error {
	switch a {
	case ActionStartTransit, ActionComplete:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%q is not a valid handover action", string(a)))
	}
}

// HandoverToken is the structured payload carried by a scanned handover label.
// Drivers scan the label instead of typing a shipment id; the token carries
// the tracking id and the requested action, and the handover protocol resolves
// the tracking id to a shipment before mutating anything.
//
// Wire shape (the QR payload printed on the label):
//
//	{"id": "NEX-48213", "action": "start_transit"}
type HandoverToken struct {
	TrackingID TrackingID
	Action     HandoverAction
}

// handoverTokenDTO is the JSON shape of the scanned payload.
type handoverTokenDTO struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// ParseHandoverToken decodes and validates a scanned handover payload.
// Returns a validation error for malformed JSON, an unknown action, or a
// tracking id that does not match the expected format. Whether the tracking id
// refers to an existing shipment is not this function's concern.
func ParseHandoverToken(payload []byte) (HandoverToken, error) {
	var dto handoverTokenDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return HandoverToken{}, errs.NewValueIsInvalidErrorWithCause("handoverToken", err)
	}

	trackingID, err := TrackingIDFromString(dto.ID)
	if err != nil {
		return HandoverToken{}, err
	}

	action := HandoverAction(dto.Action)
	if err := action.Validate(); err != nil {
		return HandoverToken{}, err
	}

	return HandoverToken{TrackingID: trackingID, Action: action}, nil
}
