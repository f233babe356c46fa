// Package hash computes content digests used to verify round trips.
package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Sum64 computes the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Hex returns the xxHash64 of data as 16 lowercase hex digits.
func Hex(data []byte) string {
	return fmt.Sprintf("%016x", Sum64(data))
}

// Digester accumulates a digest over several writes.
type Digester struct {
	d *xxhash.Digest
}

// NewDigester creates an empty Digester.
func NewDigester() *Digester {
	return &Digester{d: xxhash.New()}
}

// Write adds data to the digest. It never fails.
func (g *Digester) Write(data []byte) (int, error) {
	return g.d.Write(data)
}

// Sum64 returns the digest of everything written so far.
func (g *Digester) Sum64() uint64 {
	return g.d.Sum64()
}
