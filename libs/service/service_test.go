package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testService struct {
	BaseService
	started bool
	stopped bool
}

func newTestService() *testService {
	ts := &testService{}
	ts.BaseService = *NewBaseService(nil, "TestService", ts)
	return ts
}

func (ts *testService) OnStart() error {
	ts.started = true
	return nil
}

func (ts *testService) OnStop() {
	ts.stopped = true
}

func TestBaseServiceStartStop(t *testing.T) {
	ts := newTestService()

	require.NoError(t, ts.Start())
	require.True(t, ts.IsRunning())
	require.True(t, ts.started)

	// double start
	require.ErrorIs(t, ts.Start(), ErrAlreadyStarted)

	require.NoError(t, ts.Stop())
	require.False(t, ts.IsRunning())
	require.True(t, ts.stopped)

	select {
	case <-ts.Quit():
	default:
		t.Fatal("quit channel not closed after Stop")
	}

	// double stop
	require.ErrorIs(t, ts.Stop(), ErrAlreadyStopped)
}

func TestBaseServiceStopWithoutStart(t *testing.T) {
	ts := newTestService()
	require.Error(t, ts.Stop())
}
