// Package mock provides a settable Provider for tests.
package mock

import (
	"context"
	"sync"

	"github.com/celestiaorg/zkblobstream/light/provider"
)

type Mock struct {
	mtx    sync.Mutex
	height uint64
	err    error
}

var _ provider.Provider = (*Mock)(nil)

// New returns a Mock reporting the given head height.
func New(height uint64) *Mock {
	return &Mock{height: height}
}

func (m *Mock) LatestHeight(ctx context.Context) (uint64, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.height, m.err
}

// SetHeight changes the reported head height and clears any error.
func (m *Mock) SetHeight(height uint64) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.height = height
	m.err = nil
}

// SetError makes LatestHeight fail until cleared with SetHeight.
func (m *Mock) SetError(err error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.err = err
}
