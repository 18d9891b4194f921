package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Runes computes the xxHash64 of a sequence of runes, each written as a
// fixed-width little-endian uint32 so that different splits never collide
// on their byte encoding.
func Runes(runes ...rune) uint64 {
	d := xxhash.New()
	var b [4]byte
	for _, r := range runes {
		binary.LittleEndian.PutUint32(b[:], uint32(r)) //nolint:gosec
		_, _ = d.Write(b[:])
	}

	return d.Sum64()
}
