package store

import (
	"github.com/celestiaorg/zkblobstream/gateway"
	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
)

// Store is anything that can persistently hold the light client's state: the
// trusted header map, the latest-height pointer, the circuit registry and the
// authorized gateway address.
type Store interface {
	// LatestHeight returns the height of the newest trusted header, or 0 if
	// genesis has not been set yet.
	LatestHeight() (uint64, error)

	// Header returns the trusted header hash at the given height, or nil if
	// no header was recorded there.
	Header(height uint64) (tmbytes.HexBytes, error)

	// SetGenesis seeds the store with the initial trusted header and sets the
	// latest-height pointer to it.
	//
	// height must be > 0 and hash must be a non-zero 32-byte digest.
	//
	// NOTE: nothing prevents repeated calls; a second call overwrites the
	// stored header and may move the pointer backwards. Callers are expected
	// to gate access externally.
	SetGenesis(height uint64, hash tmbytes.HexBytes) error

	// SaveHeader records a trusted header and advances the latest-height
	// pointer to it, atomically.
	//
	// height must be > 0 and hash must be a non-zero 32-byte digest.
	//
	// Ordering (height > LatestHeight) is enforced by the calling protocol,
	// not here.
	SaveHeader(height uint64, hash tmbytes.HexBytes) error

	// CircuitID returns the circuit identifier registered under name, or nil
	// if none was registered.
	CircuitID(name string) (tmbytes.HexBytes, error)

	// RegisterCircuit stores a circuit identifier under name, overwriting any
	// previous registration.
	//
	// NOTE: unrestricted, like SetGenesis.
	RegisterCircuit(name string, id tmbytes.HexBytes) error

	// GatewayAddress returns the authorized callback origin, or "" if none
	// was configured.
	GatewayAddress() (gateway.Address, error)

	// SetGatewayAddress changes the authorized callback origin.
	//
	// NOTE: unrestricted, like SetGenesis.
	SetGatewayAddress(addr gateway.Address) error
}
