// Package gateway defines the boundary between the light client and the
// external proof gateway: the component that accepts proof requests,
// coordinates off-chain proof computation, and later invokes a callback with
// the verified public output.
package gateway

import (
	"context"

	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
)

// Address identifies a gateway. Callbacks are only accepted when their origin
// matches the address the light client was configured with.
type Address string

// RequestID is an opaque identifier minted by the gateway at submission time.
// It has no meaning to the light client beyond correlating logs and events
// with off-chain activity.
type RequestID string

// Request is a proof request handed to the gateway. The payload is an
// opaque, positionally-encoded byte string interpreted by the circuit; the
// context blob is returned unchanged in the eventual Callback.
type Request struct {
	// CircuitID is the registered identifier of the circuit that should
	// compute the proof.
	CircuitID tmbytes.HexBytes

	// Payload is the circuit input.
	Payload []byte

	// Method names the callback entry point the gateway must invoke on
	// completion.
	Method string

	// Context is threaded through to the Callback unchanged. The light client
	// holds no pending-request state; everything needed at fulfillment time
	// travels here.
	Context []byte

	// Fee is forwarded verbatim to the gateway. It is not refunded if the
	// request is never fulfilled or the fulfillment is rejected.
	Fee uint64
}

// Callback is the asynchronous reply to a Request. Output is the circuit's
// public output; Context is the blob given at submission time.
type Callback struct {
	Origin  Address
	Method  string
	Output  []byte
	Context []byte
}

// CallbackHandler consumes callbacks delivered by a gateway.
type CallbackHandler interface {
	HandleCallback(cb Callback) error
}

// Client submits proof requests to a gateway. Submission is fire-and-forget:
// it returns as soon as the request is accepted, and the result arrives at an
// arbitrary later time through the callback path, possibly out of submission
// order.
type Client interface {
	Submit(ctx context.Context, req Request) (RequestID, error)
}
