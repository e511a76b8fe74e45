package light

import (
	"context"
	"errors"
	"time"

	"github.com/celestiaorg/zkblobstream/libs/service"
	"github.com/celestiaorg/zkblobstream/light/provider"
)

// AutoSync periodically asks a head provider how far the tracked chain has
// progressed and submits skip requests to close the gap, clamped to
// MaxSkipSpan per request. It is the in-process equivalent of the off-chain
// relayer that drives the request cadence.
type AutoSync struct {
	service.BaseService

	client   *Client
	provider provider.Provider
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewAutoSync creates an AutoSync submitting at most one skip request per
// interval.
func NewAutoSync(client *Client, p provider.Provider, interval time.Duration) *AutoSync {
	as := &AutoSync{
		client:   client,
		provider: p,
		interval: interval,
		done:     make(chan struct{}),
	}
	as.ctx, as.cancel = context.WithCancel(context.Background())
	as.BaseService = *service.NewBaseService(nil, "AutoSync", as)
	return as
}

// OnStart implements service.Service.
func (as *AutoSync) OnStart() error {
	go as.syncRoutine()
	return nil
}

// OnStop implements service.Service.
func (as *AutoSync) OnStop() {
	as.cancel()
	<-as.done
}

func (as *AutoSync) syncRoutine() {
	defer close(as.done)

	ticker := time.NewTicker(as.interval)
	defer ticker.Stop()

	for {
		select {
		case <-as.ctx.Done():
			return
		case <-ticker.C:
			as.trySync()
		}
	}
}

func (as *AutoSync) trySync() {
	head, err := as.provider.LatestHeight(as.ctx)
	if err != nil {
		as.Logger.Error("failed to fetch chain head", "err", err)
		return
	}

	latest, err := as.client.TrustedHeight()
	if err != nil {
		as.Logger.Error("failed to read trusted height", "err", err)
		return
	}
	if latest == 0 {
		// not seeded yet
		return
	}
	if head <= latest {
		return
	}

	target := head
	if head-latest > MaxSkipSpan {
		target = latest + MaxSkipSpan
	}

	if _, err := as.client.RequestSkip(as.ctx, target); err != nil {
		// Losing a race against an in-flight fulfillment is expected; anything
		// else is worth surfacing.
		if errors.As(err, &ErrNonAdvancingRequest{}) {
			as.Logger.Debug("skip request no longer advancing", "target", target)
			return
		}
		as.Logger.Error("failed to request skip", "target", target, "err", err)
	}
}
