package light

import (
	"errors"
	"fmt"

	"github.com/celestiaorg/zkblobstream/gateway"
)

// ErrTrustedHeaderMissing means no header hash is stored at the latest
// trusted height. The light client must be seeded with a genesis header
// before it can advance.
var ErrTrustedHeaderMissing = errors.New("no trusted header at the latest height")

// ErrCircuitNotRegistered means no circuit identifier has been registered
// under the name the protocol needs.
type ErrCircuitNotRegistered struct {
	Name string
}

func (e ErrCircuitNotRegistered) Error() string {
	return fmt.Sprintf("no circuit registered under %q", e.Name)
}

// ErrSkipSpanExceeded means the requested height is further ahead of the
// latest trusted height than MaxSkipSpan allows.
type ErrSkipSpanExceeded struct {
	Latest uint64
	Target uint64
}

func (e ErrSkipSpanExceeded) Error() string {
	return fmt.Sprintf(
		"skip from #%d to #%d spans %d blocks, max %d",
		e.Latest, e.Target, e.Target-e.Latest, MaxSkipSpan)
}

// ErrNonAdvancingRequest means the requested height is at or below the latest
// trusted height, so fulfilling it could not advance the client.
type ErrNonAdvancingRequest struct {
	Latest uint64
	Target uint64
}

func (e ErrNonAdvancingRequest) Error() string {
	return fmt.Sprintf("requested height %d does not advance past %d", e.Target, e.Latest)
}

// ErrStaleFulfillment means a fulfillment arrived for a height that is no
// longer ahead of the latest trusted height: another request advanced past it
// first. The fulfillment is discarded and state is left untouched.
type ErrStaleFulfillment struct {
	Latest uint64
	Target uint64
}

func (e ErrStaleFulfillment) Error() string {
	return fmt.Sprintf("fulfillment for height %d is behind the trusted height %d", e.Target, e.Latest)
}

// ErrUnauthorizedCallback means a callback's origin did not match the
// configured gateway address. Nothing was mutated.
type ErrUnauthorizedCallback struct {
	From gateway.Address
}

func (e ErrUnauthorizedCallback) Error() string {
	return fmt.Sprintf("callback from %q, not the configured gateway", e.From)
}

// ErrUnknownCallbackMethod means a callback named an entry point this client
// does not have.
type ErrUnknownCallbackMethod struct {
	Method string
}

func (e ErrUnknownCallbackMethod) Error() string {
	return fmt.Sprintf("unknown callback method %q", e.Method)
}
