package light

import (
	"github.com/celestiaorg/zkblobstream/gateway"
	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
)

// Event names fired on the client's EventSwitch. Off-chain relayers and
// indexers listen for these to drive the request cadence and to present
// proofs to the gateway.
const (
	// EventAdvanceRequested is fired after a skip or step request has been
	// submitted to the gateway.
	EventAdvanceRequested = "AdvanceRequested"

	// EventAdvanceFulfilled is fired after a fulfillment has been applied and
	// the trusted height advanced.
	EventAdvanceFulfilled = "AdvanceFulfilled"
)

// AdvanceKind names the advancement mechanism of an event.
type AdvanceKind string

const (
	KindSkip AdvanceKind = "skip"
	KindStep AdvanceKind = "step"
)

// EventDataAdvanceRequested is the payload of EventAdvanceRequested.
type EventDataAdvanceRequested struct {
	Kind          AdvanceKind       `json:"kind"`
	TrustedHeight uint64            `json:"trusted_height"`
	TargetHeight  uint64            `json:"target_height"`
	RequestID     gateway.RequestID `json:"request_id"`
}

// EventDataAdvanceFulfilled is the payload of EventAdvanceFulfilled.
type EventDataAdvanceFulfilled struct {
	Kind   AdvanceKind      `json:"kind"`
	Height uint64           `json:"height"`
	Hash   tmbytes.HexBytes `json:"hash"`
}
