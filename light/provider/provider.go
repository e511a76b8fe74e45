// Package provider defines where the light client learns about the tracked
// chain's head, so a syncer knows how far it can request to advance.
package provider

import (
	"context"
	"errors"
)

// ErrNoResponse is returned when the provider could not determine the chain
// head.
var ErrNoResponse = errors.New("no response from provider")

// Provider reports the tracked chain's latest height. It does not verify
// anything; the reported head only steers request cadence, never trust.
type Provider interface {
	// LatestHeight returns the current head height of the tracked chain.
	LatestHeight(ctx context.Context) (uint64, error)
}
