package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Local is an in-process gateway used in tests and development loops. It
// queues submitted requests and delivers callbacks to the registered handler
// on demand, from its own origin address. No proofs are computed; the caller
// of Deliver supplies whatever output bytes it wants the circuit to have
// produced.
type Local struct {
	origin Address

	mtx     sync.Mutex
	pending map[RequestID]Request
	order   []RequestID
	handler CallbackHandler
}

var _ Client = (*Local)(nil)

// NewLocal creates a Local gateway that signs its callbacks with origin.
func NewLocal(origin Address) *Local {
	return &Local{
		origin:  origin,
		pending: make(map[RequestID]Request),
	}
}

// Origin returns the address the gateway delivers callbacks from.
func (l *Local) Origin() Address {
	return l.origin
}

// SetHandler registers the callback receiver. Usually the light client.
func (l *Local) SetHandler(h CallbackHandler) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.handler = h
}

// Submit implements Client. The request is queued and a fresh request id is
// returned.
func (l *Local) Submit(ctx context.Context, req Request) (RequestID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := RequestID(uuid.NewString())

	l.mtx.Lock()
	l.pending[id] = req
	l.order = append(l.order, id)
	l.mtx.Unlock()

	return id, nil
}

// Pending returns the queued request for id, if any.
func (l *Local) Pending(id RequestID) (Request, bool) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	req, ok := l.pending[id]
	return req, ok
}

// PendingIDs returns the ids of all queued requests in submission order.
func (l *Local) PendingIDs() []RequestID {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	ids := make([]RequestID, 0, len(l.pending))
	for _, id := range l.order {
		if _, ok := l.pending[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Deliver pops the request for id and invokes the handler with a callback
// carrying the given output and the request's original context blob. The
// request is consumed even if the handler rejects the callback; a real
// gateway does not re-deliver, the off-chain work is simply lost.
func (l *Local) Deliver(id RequestID, output []byte) error {
	l.mtx.Lock()
	req, ok := l.pending[id]
	if ok {
		delete(l.pending, id)
	}
	handler := l.handler
	l.mtx.Unlock()

	if !ok {
		return fmt.Errorf("no pending request %s", id)
	}
	if handler == nil {
		return fmt.Errorf("no callback handler registered")
	}

	return handler.HandleCallback(Callback{
		Origin:  l.origin,
		Method:  req.Method,
		Output:  output,
		Context: req.Context,
	})
}
