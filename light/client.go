// Package light implements a trust-minimized bridge light client. It tracks
// the latest verified header of a tracked consensus chain and extends that
// trusted state with succinct proofs computed off-chain and delivered
// asynchronously through a request/callback gateway.
//
// The client advances through two mechanisms: skip, a bulk advance bounded by
// MaxSkipSpan that assumes bounded validator-set churn across the span, and
// step, a single-block advance used when that assumption cannot hold. Both
// follow the same shape: a request phase builds a circuit input from the
// current trusted state and submits it to the gateway, and a fulfillment
// phase, triggered by the gateway at an arbitrary later time, validates
// ordering and applies the circuit's public output to the store.
//
// The client keeps no pending-request table. Any number of requests may be in
// flight at once, and fulfillments may arrive out of submission order. The
// single ordering guard (a fulfillment must still be ahead of the latest
// trusted height) makes reordering safe by discarding whichever fulfillment
// loses the race.
package light

import (
	"context"
	"sync"

	"github.com/celestiaorg/zkblobstream/gateway"
	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
	"github.com/celestiaorg/zkblobstream/libs/events"
	"github.com/celestiaorg/zkblobstream/libs/log"
	"github.com/celestiaorg/zkblobstream/light/store"
)

const (
	// MaxSkipSpan bounds how far a single skip request may advance the
	// trusted height. 512 matches the largest span the downstream
	// data-commitment aggregation can cover in one unit; integrators must
	// re-validate it against that limit.
	MaxSkipSpan uint64 = 512

	// Registered circuit names.
	SkipCircuitName = "skip"
	StepCircuitName = "step"

	// Callback entry point identifiers, dispatched on in HandleCallback.
	MethodFulfillSkip = "fulfill_skip"
	MethodFulfillStep = "fulfill_step"
)

// Option sets a parameter for the light client.
type Option func(*Client)

// Logger option sets a logger for the client.
func Logger(l log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// EventSwitch option sets the switch advance events are fired on.
func EventSwitch(evsw events.EventSwitch) Option {
	return func(c *Client) {
		c.evsw = evsw
	}
}

// WithMetrics option sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// RequestFee option sets the fee attached to every proof request and
// forwarded verbatim to the gateway. Fees are not refunded for requests that
// are never fulfilled or whose fulfillment is rejected.
func RequestFee(fee uint64) Option {
	return func(c *Client) {
		c.fee = fee
	}
}

// Client is the header-synchronization state machine. All state lives in the
// injected Store; the Client itself only serializes transitions.
type Client struct {
	store   store.Store
	gw      gateway.Client
	logger  log.Logger
	evsw    events.EventSwitch
	metrics *Metrics
	fee     uint64

	// Serializes request submissions and fulfillments, making each an
	// atomic, isolated unit of work.
	mtx sync.Mutex
}

var _ gateway.CallbackHandler = (*Client)(nil)

// NewClient returns a light client reading and writing trusted state through
// st and submitting proof requests through gw.
func NewClient(st store.Store, gw gateway.Client, options ...Option) *Client {
	c := &Client{
		store:   st,
		gw:      gw,
		logger:  log.NewNopLogger(),
		evsw:    events.NewEventSwitch(),
		metrics: NopMetrics(),
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// TrustedHeight returns the latest trusted height, or 0 before genesis.
func (c *Client) TrustedHeight() (uint64, error) {
	return c.store.LatestHeight()
}

// TrustedHeader returns the trusted header hash at the given height, or nil
// if none was recorded there.
func (c *Client) TrustedHeader(height uint64) (tmbytes.HexBytes, error) {
	return c.store.Header(height)
}

// Events returns the switch that EventAdvanceRequested and
// EventAdvanceFulfilled are fired on.
func (c *Client) Events() events.EventSwitch {
	return c.evsw
}

// RequestSkip submits a proof request advancing the trusted height to
// targetHeight in one jump. The target must be ahead of the latest trusted
// height by at least one and at most MaxSkipSpan blocks.
//
// The call returns as soon as the gateway accepts the request; the advance
// itself happens when the gateway later invokes the fulfillment callback.
func (c *Client) RequestSkip(ctx context.Context, targetHeight uint64) (gateway.RequestID, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	latest, trustedHash, circuitID, err := c.requestState(SkipCircuitName)
	if err != nil {
		return "", err
	}

	if targetHeight <= latest {
		return "", ErrNonAdvancingRequest{Latest: latest, Target: targetHeight}
	}
	if targetHeight-latest > MaxSkipSpan {
		return "", ErrSkipSpanExceeded{Latest: latest, Target: targetHeight}
	}

	id, err := c.gw.Submit(ctx, gateway.Request{
		CircuitID: circuitID,
		Payload:   skipPayload(trustedHash, latest, targetHeight),
		Method:    MethodFulfillSkip,
		Context:   encodeHeight(targetHeight),
		Fee:       c.fee,
	})
	if err != nil {
		return "", err
	}

	c.recordRequested(KindSkip, latest, targetHeight, id)
	return id, nil
}

// RequestStep submits a proof request advancing the trusted height by exactly
// one block. Use it when validator-set churn past the latest trusted header
// may exceed the safety margin the skip circuit assumes.
func (c *Client) RequestStep(ctx context.Context) (gateway.RequestID, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	latest, trustedHash, circuitID, err := c.requestState(StepCircuitName)
	if err != nil {
		return "", err
	}

	id, err := c.gw.Submit(ctx, gateway.Request{
		CircuitID: circuitID,
		Payload:   stepPayload(trustedHash, latest),
		Method:    MethodFulfillStep,
		// The context carries the previous height; the target is derived as
		// previous+1 at fulfillment time.
		Context: encodeHeight(latest),
		Fee:     c.fee,
	})
	if err != nil {
		return "", err
	}

	c.recordRequested(KindStep, latest, latest+1, id)
	return id, nil
}

// requestState reads everything a request phase needs from the store and
// checks the shared preconditions.
func (c *Client) requestState(circuitName string) (latest uint64, trustedHash, circuitID tmbytes.HexBytes, err error) {
	latest, err = c.store.LatestHeight()
	if err != nil {
		return 0, nil, nil, err
	}

	trustedHash, err = c.store.Header(latest)
	if err != nil {
		return 0, nil, nil, err
	}
	if len(trustedHash) == 0 {
		return 0, nil, nil, ErrTrustedHeaderMissing
	}

	circuitID, err = c.store.CircuitID(circuitName)
	if err != nil {
		return 0, nil, nil, err
	}
	if len(circuitID) == 0 {
		return 0, nil, nil, ErrCircuitNotRegistered{Name: circuitName}
	}

	return latest, trustedHash, circuitID, nil
}

// HandleCallback is the single entry point for gateway callbacks. The origin
// is authenticated against the configured gateway address before any handler
// logic runs; this is the only authentication in the system. Proof validity
// is the gateway's concern and is not re-checked here.
func (c *Client) HandleCallback(cb gateway.Callback) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	authorized, err := c.store.GatewayAddress()
	if err != nil {
		return err
	}
	if authorized == "" || cb.Origin != authorized {
		c.metrics.FulfillmentsRejected.With("reason", "unauthorized").Add(1)
		return ErrUnauthorizedCallback{From: cb.Origin}
	}

	switch cb.Method {
	case MethodFulfillSkip:
		return c.fulfillSkip(cb.Output, cb.Context)
	case MethodFulfillStep:
		return c.fulfillStep(cb.Output, cb.Context)
	default:
		c.metrics.FulfillmentsRejected.With("reason", "unknown_method").Add(1)
		return ErrUnknownCallbackMethod{Method: cb.Method}
	}
}

func (c *Client) fulfillSkip(output, context []byte) error {
	targetHeight, err := decodeHeight(context)
	if err != nil {
		c.metrics.FulfillmentsRejected.With("reason", "malformed").Add(1)
		return err
	}
	return c.applyFulfillment(KindSkip, targetHeight, output)
}

func (c *Client) fulfillStep(output, context []byte) error {
	prevHeight, err := decodeHeight(context)
	if err != nil {
		c.metrics.FulfillmentsRejected.With("reason", "malformed").Add(1)
		return err
	}
	return c.applyFulfillment(KindStep, prevHeight+1, output)
}

// applyFulfillment enforces the ordering guard and commits the new header.
// Either the whole application happens or none of it does.
func (c *Client) applyFulfillment(kind AdvanceKind, targetHeight uint64, output []byte) error {
	newHash, err := decodeHash(output)
	if err != nil {
		c.metrics.FulfillmentsRejected.With("reason", "malformed").Add(1)
		return err
	}

	latest, err := c.store.LatestHeight()
	if err != nil {
		return err
	}

	// The linchpin ordering guarantee: a fulfillment that is no longer ahead
	// of the trusted frontier lost a race against another request and must
	// not regress or duplicate progress.
	if targetHeight <= latest {
		c.metrics.FulfillmentsRejected.With("reason", "stale").Add(1)
		return ErrStaleFulfillment{Latest: latest, Target: targetHeight}
	}

	if err := c.store.SaveHeader(targetHeight, newHash); err != nil {
		return err
	}

	c.logger.Info("header advance fulfilled",
		"kind", kind, "height", targetHeight, "hash", newHash)
	c.metrics.TrustedHeight.Set(float64(targetHeight))
	c.metrics.FulfillmentsAccepted.With("kind", string(kind)).Add(1)
	c.evsw.FireEvent(EventAdvanceFulfilled, EventDataAdvanceFulfilled{
		Kind:   kind,
		Height: targetHeight,
		Hash:   newHash,
	})

	return nil
}

func (c *Client) recordRequested(kind AdvanceKind, latest, target uint64, id gateway.RequestID) {
	c.logger.Info("header advance requested",
		"kind", kind, "trusted_height", latest, "target_height", target, "request_id", id)
	c.metrics.RequestsSubmitted.With("kind", string(kind)).Add(1)
	c.evsw.FireEvent(EventAdvanceRequested, EventDataAdvanceRequested{
		Kind:          kind,
		TrustedHeight: latest,
		TargetHeight:  target,
		RequestID:     id,
	})
}
