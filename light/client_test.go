package light_test

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tm-db"

	"github.com/celestiaorg/zkblobstream/gateway"
	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
	"github.com/celestiaorg/zkblobstream/libs/events"
	"github.com/celestiaorg/zkblobstream/light"
	"github.com/celestiaorg/zkblobstream/light/store"
	dbs "github.com/celestiaorg/zkblobstream/light/store/db"
)

const (
	genesisHeight = uint64(3000)

	// Header of block 3000 on mocha, also the circuit test fixture.
	genesisHashHex = "a8512f18c34b70e1533cfd5aa04f251fcb0d7be56ec570051fbad9bdb9435e6a"

	gatewayAddr = gateway.Address("gateway")
)

func genesisHash(t *testing.T) tmbytes.HexBytes {
	t.Helper()
	hash, err := hex.DecodeString(genesisHashHex)
	require.NoError(t, err)
	return hash
}

func testHash(fill byte) tmbytes.HexBytes {
	hash := make([]byte, light.HashSize)
	for i := range hash {
		hash[i] = fill
	}
	return hash
}

// setupClient seeds a store with genesis, both circuits and the gateway
// address, and wires a client to a local gateway.
func setupClient(t *testing.T) (*light.Client, *gateway.Local, store.Store) {
	t.Helper()

	st := dbs.New(dbm.NewMemDB(), "test")
	require.NoError(t, st.SetGenesis(genesisHeight, genesisHash(t)))
	require.NoError(t, st.RegisterCircuit(light.SkipCircuitName, testHash(0x51)))
	require.NoError(t, st.RegisterCircuit(light.StepCircuitName, testHash(0x52)))
	require.NoError(t, st.SetGatewayAddress(gatewayAddr))

	gw := gateway.NewLocal(gatewayAddr)
	c := light.NewClient(st, gw)
	gw.SetHandler(c)

	return c, gw, st
}

func TestRequestStepAndFulfill(t *testing.T) {
	c, gw, _ := setupClient(t)

	id, err := c.RequestStep(context.Background())
	require.NoError(t, err)

	req, ok := gw.Pending(id)
	require.True(t, ok)
	assert.Equal(t, testHash(0x52).Bytes(), req.CircuitID.Bytes())
	assert.Equal(t, light.MethodFulfillStep, req.Method)

	// payload = headerHash(32) || trustedHeight(8, BE); 3000 = 0xbb8
	wantPayload := genesisHashHex + "0000000000000bb8"
	assert.Equal(t, wantPayload, hex.EncodeToString(req.Payload))
	assert.Equal(t, "0000000000000bb8", hex.EncodeToString(req.Context))

	newHash := testHash(0xbc)
	require.NoError(t, gw.Deliver(id, newHash))

	height, err := c.TrustedHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 3001, height)

	got, err := c.TrustedHeader(3001)
	require.NoError(t, err)
	assert.Equal(t, newHash, got)
}

func TestRequestSkipPayload(t *testing.T) {
	c, gw, _ := setupClient(t)

	id, err := c.RequestSkip(context.Background(), 3100)
	require.NoError(t, err)

	req, ok := gw.Pending(id)
	require.True(t, ok)
	assert.Equal(t, light.MethodFulfillSkip, req.Method)

	// Fixture from the skip circuit: trustedHash || 3000 || 3100.
	wantPayload := genesisHashHex + "0000000000000bb8" + "0000000000000c1c"
	assert.Equal(t, wantPayload, hex.EncodeToString(req.Payload))
	assert.Equal(t, "0000000000000c1c", hex.EncodeToString(req.Context))
}

func TestRequestSkipBounds(t *testing.T) {
	c, _, _ := setupClient(t)
	ctx := context.Background()

	// span 512 is the maximum allowed
	_, err := c.RequestSkip(ctx, genesisHeight+light.MaxSkipSpan)
	require.NoError(t, err)

	// span 513 exceeds the bound
	_, err = c.RequestSkip(ctx, 3513)
	require.ErrorAs(t, err, &light.ErrSkipSpanExceeded{})

	// non-advancing targets
	_, err = c.RequestSkip(ctx, genesisHeight)
	require.ErrorAs(t, err, &light.ErrNonAdvancingRequest{})

	_, err = c.RequestSkip(ctx, genesisHeight-100)
	require.ErrorAs(t, err, &light.ErrNonAdvancingRequest{})
}

func TestRequestPreconditions(t *testing.T) {
	t.Run("no genesis", func(t *testing.T) {
		st := dbs.New(dbm.NewMemDB(), "test")
		require.NoError(t, st.RegisterCircuit(light.SkipCircuitName, testHash(0x51)))

		c := light.NewClient(st, gateway.NewLocal(gatewayAddr))

		_, err := c.RequestSkip(context.Background(), 100)
		require.ErrorIs(t, err, light.ErrTrustedHeaderMissing)
	})

	t.Run("no skip circuit", func(t *testing.T) {
		st := dbs.New(dbm.NewMemDB(), "test")
		require.NoError(t, st.SetGenesis(genesisHeight, testHash(0xa8)))

		c := light.NewClient(st, gateway.NewLocal(gatewayAddr))

		_, err := c.RequestSkip(context.Background(), genesisHeight+1)
		var errNotRegistered light.ErrCircuitNotRegistered
		require.ErrorAs(t, err, &errNotRegistered)
		assert.Equal(t, light.SkipCircuitName, errNotRegistered.Name)
	})

	t.Run("no step circuit", func(t *testing.T) {
		st := dbs.New(dbm.NewMemDB(), "test")
		require.NoError(t, st.SetGenesis(genesisHeight, testHash(0xa8)))

		c := light.NewClient(st, gateway.NewLocal(gatewayAddr))

		_, err := c.RequestStep(context.Background())
		var errNotRegistered light.ErrCircuitNotRegistered
		require.ErrorAs(t, err, &errNotRegistered)
		assert.Equal(t, light.StepCircuitName, errNotRegistered.Name)
	})
}

// TestOutOfOrderFulfillment reproduces the race the ordering guard exists
// for: with two in-flight skips H1 < H2, the H2 fulfillment lands first and
// the late H1 fulfillment must be rejected without touching state.
func TestOutOfOrderFulfillment(t *testing.T) {
	c, gw, _ := setupClient(t)
	ctx := context.Background()

	id1, err := c.RequestSkip(ctx, 3100)
	require.NoError(t, err)
	id2, err := c.RequestSkip(ctx, 3200)
	require.NoError(t, err)

	hash2 := testHash(0xc2)
	require.NoError(t, gw.Deliver(id2, hash2))

	height, err := c.TrustedHeight()
	require.NoError(t, err)
	require.EqualValues(t, 3200, height)

	err = gw.Deliver(id1, testHash(0xc1))
	require.ErrorAs(t, err, &light.ErrStaleFulfillment{})

	// no state change: latest still 3200, nothing recorded at 3100
	height, err = c.TrustedHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 3200, height)

	h, err := c.TrustedHeader(3100)
	require.NoError(t, err)
	assert.Nil(t, h)

	h, err = c.TrustedHeader(3200)
	require.NoError(t, err)
	assert.Equal(t, hash2, h)
}

func TestDuplicateFulfillment(t *testing.T) {
	c, gw, _ := setupClient(t)
	ctx := context.Background()

	id1, err := c.RequestSkip(ctx, 3100)
	require.NoError(t, err)
	id2, err := c.RequestSkip(ctx, 3100)
	require.NoError(t, err)

	require.NoError(t, gw.Deliver(id1, testHash(0xc1)))

	// the second fulfillment for the same height must not re-apply
	err = gw.Deliver(id2, testHash(0xc9))
	require.ErrorAs(t, err, &light.ErrStaleFulfillment{})

	h, err := c.TrustedHeader(3100)
	require.NoError(t, err)
	assert.Equal(t, testHash(0xc1), h)
}

func TestUnauthorizedCallback(t *testing.T) {
	c, _, _ := setupClient(t)

	// a valid-looking payload from the wrong origin
	err := c.HandleCallback(gateway.Callback{
		Origin:  "imposter",
		Method:  light.MethodFulfillSkip,
		Output:  testHash(0xc1),
		Context: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0c, 0x1c},
	})

	var errUnauthorized light.ErrUnauthorizedCallback
	require.ErrorAs(t, err, &errUnauthorized)
	assert.Equal(t, gateway.Address("imposter"), errUnauthorized.From)

	height, err := c.TrustedHeight()
	require.NoError(t, err)
	assert.EqualValues(t, genesisHeight, height)
}

func TestCallbackWithoutConfiguredGateway(t *testing.T) {
	st := dbs.New(dbm.NewMemDB(), "test")
	require.NoError(t, st.SetGenesis(genesisHeight, testHash(0xa8)))

	c := light.NewClient(st, gateway.NewLocal(gatewayAddr))

	err := c.HandleCallback(gateway.Callback{
		Origin: gatewayAddr,
		Method: light.MethodFulfillSkip,
	})
	require.ErrorAs(t, err, &light.ErrUnauthorizedCallback{})
}

func TestUnknownCallbackMethod(t *testing.T) {
	c, _, _ := setupClient(t)

	err := c.HandleCallback(gateway.Callback{
		Origin: gatewayAddr,
		Method: "fulfill_other",
	})

	var errUnknown light.ErrUnknownCallbackMethod
	require.ErrorAs(t, err, &errUnknown)
	assert.Equal(t, "fulfill_other", errUnknown.Method)
}

func TestMalformedCallback(t *testing.T) {
	c, _, _ := setupClient(t)

	// short context
	err := c.HandleCallback(gateway.Callback{
		Origin:  gatewayAddr,
		Method:  light.MethodFulfillSkip,
		Output:  testHash(0xc1),
		Context: []byte{0x01},
	})
	require.Error(t, err)

	// short output
	err = c.HandleCallback(gateway.Callback{
		Origin:  gatewayAddr,
		Method:  light.MethodFulfillStep,
		Output:  []byte{0x01, 0x02},
		Context: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0b, 0xb8},
	})
	require.Error(t, err)

	height, err := c.TrustedHeight()
	require.NoError(t, err)
	assert.EqualValues(t, genesisHeight, height)
}

func TestAdvanceEvents(t *testing.T) {
	c, gw, _ := setupClient(t)

	var requested []light.EventDataAdvanceRequested
	var fulfilled []light.EventDataAdvanceFulfilled

	c.Events().AddListenerForEvent("test", light.EventAdvanceRequested, func(data events.EventData) {
		requested = append(requested, data.(light.EventDataAdvanceRequested))
	})
	c.Events().AddListenerForEvent("test", light.EventAdvanceFulfilled, func(data events.EventData) {
		fulfilled = append(fulfilled, data.(light.EventDataAdvanceFulfilled))
	})

	id, err := c.RequestSkip(context.Background(), 3100)
	require.NoError(t, err)

	require.Len(t, requested, 1)
	assert.Equal(t, light.KindSkip, requested[0].Kind)
	assert.EqualValues(t, genesisHeight, requested[0].TrustedHeight)
	assert.EqualValues(t, 3100, requested[0].TargetHeight)
	assert.Equal(t, id, requested[0].RequestID)

	newHash := testHash(0xc1)
	require.NoError(t, gw.Deliver(id, newHash))

	require.Len(t, fulfilled, 1)
	assert.Equal(t, light.KindSkip, fulfilled[0].Kind)
	assert.EqualValues(t, 3100, fulfilled[0].Height)
	assert.Equal(t, newHash, fulfilled[0].Hash)
}

func TestStepAfterSkipRace(t *testing.T) {
	c, gw, _ := setupClient(t)
	ctx := context.Background()

	stepID, err := c.RequestStep(ctx)
	require.NoError(t, err)
	skipID, err := c.RequestSkip(ctx, 3050)
	require.NoError(t, err)

	// skip lands first, advancing past the step target 3001
	require.NoError(t, gw.Deliver(skipID, testHash(0xc5)))

	err = gw.Deliver(stepID, testHash(0xc6))
	require.ErrorAs(t, err, &light.ErrStaleFulfillment{})

	height, err := c.TrustedHeight()
	require.NoError(t, err)
	assert.EqualValues(t, 3050, height)
}
