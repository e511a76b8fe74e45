package light

import (
	"encoding/binary"
	"fmt"

	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
)

// HashSize is the size of a header hash and of a circuit's public output.
const HashSize = 32

// Request payloads and context blobs use fixed-width positional encoding with
// no delimiters; the circuits interpret the bytes by offset. Heights are
// 8-byte big-endian.

func skipPayload(trustedHash tmbytes.HexBytes, trustedHeight, targetHeight uint64) []byte {
	bz := make([]byte, 0, HashSize+8+8)
	bz = append(bz, trustedHash...)
	bz = appendHeight(bz, trustedHeight)
	bz = appendHeight(bz, targetHeight)
	return bz
}

func stepPayload(trustedHash tmbytes.HexBytes, trustedHeight uint64) []byte {
	bz := make([]byte, 0, HashSize+8)
	bz = append(bz, trustedHash...)
	bz = appendHeight(bz, trustedHeight)
	return bz
}

func appendHeight(bz []byte, height uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], height)
	return append(bz, buf[:]...)
}

func encodeHeight(height uint64) []byte {
	return appendHeight(nil, height)
}

func decodeHeight(bz []byte) (uint64, error) {
	if len(bz) != 8 {
		return 0, fmt.Errorf("malformed height: expected 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

func decodeHash(bz []byte) (tmbytes.HexBytes, error) {
	if len(bz) != HashSize {
		return nil, fmt.Errorf("malformed header hash: expected %d bytes, got %d", HashSize, len(bz))
	}
	hash := make(tmbytes.HexBytes, HashSize)
	copy(hash, bz)
	return hash, nil
}
