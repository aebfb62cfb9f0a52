package search

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Digest returns a 64-bit fingerprint of r. Two results have the same digest
// when they hold the same keys with the same counts, regardless of map order.
func (r Result) Digest() uint64 {
	h := xxhash.New()
	for _, key := range r.Keys() {
		h.Write([]byte(key))
		h.Write([]byte{0})
		binary.Write(h, binary.LittleEndian, int64(r[key]))
	}
	return h.Sum64()
}
