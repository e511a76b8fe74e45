package db

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/orderedcode"
	dbm "github.com/tendermint/tm-db"

	"github.com/celestiaorg/zkblobstream/gateway"
	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
	"github.com/celestiaorg/zkblobstream/light/store"
)

// HashSize is the size of a trusted header hash in bytes.
const HashSize = 32

// Key subspaces. Header keys sort by height so the store can be inspected
// with a range iterator.
const (
	subspaceHeader  = int64(0)
	subspaceLatest  = int64(1)
	subspaceCircuit = int64(2)
	subspaceGateway = int64(3)
)

type dbs struct {
	db dbm.DB

	mtx sync.RWMutex
}

// New returns a Store backed by any tm-db database. Pass a prefix in case you
// want to share one database between several light clients.
func New(db dbm.DB, prefix string) store.Store {
	if prefix != "" {
		db = dbm.NewPrefixDB(db, []byte(prefix))
	}
	return &dbs{db: db}
}

// LatestHeight implements store.Store.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) LatestHeight() (uint64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	bz, err := s.db.Get(latestKey())
	if err != nil {
		return 0, err
	}
	if len(bz) == 0 {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, fmt.Errorf("corrupt latest-height record: %d bytes", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// Header implements store.Store.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) Header(height uint64) (tmbytes.HexBytes, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	bz, err := s.db.Get(headerKey(height))
	if err != nil {
		return nil, err
	}
	if len(bz) == 0 {
		return nil, nil
	}
	if len(bz) != HashSize {
		return nil, fmt.Errorf("corrupt header record at height %d: %d bytes", height, len(bz))
	}
	return bz, nil
}

// SetGenesis implements store.Store. The header and the pointer are written
// in a single batch.
func (s *dbs) SetGenesis(height uint64, hash tmbytes.HexBytes) error {
	return s.saveHeaderAndPointer(height, hash)
}

// SaveHeader implements store.Store. The header and the pointer are written
// in a single batch, so a crash cannot leave the pointer at a height with no
// header.
func (s *dbs) SaveHeader(height uint64, hash tmbytes.HexBytes) error {
	return s.saveHeaderAndPointer(height, hash)
}

func (s *dbs) saveHeaderAndPointer(height uint64, hash tmbytes.HexBytes) error {
	if height == 0 {
		return fmt.Errorf("height must be > 0")
	}
	if err := validateHash(hash); err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	latestBz := make([]byte, 8)
	binary.BigEndian.PutUint64(latestBz, height)

	b := s.db.NewBatch()
	defer b.Close()

	if err := b.Set(headerKey(height), hash); err != nil {
		return err
	}
	if err := b.Set(latestKey(), latestBz); err != nil {
		return err
	}
	return b.WriteSync()
}

// CircuitID implements store.Store.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) CircuitID(name string) (tmbytes.HexBytes, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	bz, err := s.db.Get(circuitKey(name))
	if err != nil {
		return nil, err
	}
	if len(bz) == 0 {
		return nil, nil
	}
	return bz, nil
}

// RegisterCircuit implements store.Store.
func (s *dbs) RegisterCircuit(name string, id tmbytes.HexBytes) error {
	if name == "" {
		return fmt.Errorf("circuit name must not be empty")
	}
	if err := validateHash(id); err != nil {
		return fmt.Errorf("circuit id: %w", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.db.SetSync(circuitKey(name), id)
}

// GatewayAddress implements store.Store.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) GatewayAddress() (gateway.Address, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	bz, err := s.db.Get(gatewayKey())
	if err != nil {
		return "", err
	}
	return gateway.Address(bz), nil
}

// SetGatewayAddress implements store.Store.
func (s *dbs) SetGatewayAddress(addr gateway.Address) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.db.SetSync(gatewayKey(), []byte(addr))
}

func validateHash(hash tmbytes.HexBytes) error {
	if len(hash) != HashSize {
		return fmt.Errorf("expected %d bytes, got %d", HashSize, len(hash))
	}
	for _, b := range hash {
		if b != 0 {
			return nil
		}
	}
	return fmt.Errorf("hash must not be all zero")
}

func headerKey(height uint64) []byte {
	key, err := orderedcode.Append(nil, subspaceHeader, height)
	if err != nil {
		panic(err)
	}
	return key
}

func latestKey() []byte {
	key, err := orderedcode.Append(nil, subspaceLatest)
	if err != nil {
		panic(err)
	}
	return key
}

func circuitKey(name string) []byte {
	key, err := orderedcode.Append(nil, subspaceCircuit, name)
	if err != nil {
		panic(err)
	}
	return key
}

func gatewayKey() []byte {
	key, err := orderedcode.Append(nil, subspaceGateway)
	if err != nil {
		panic(err)
	}
	return key
}
