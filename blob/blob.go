package blob

import (
	"time"

	"github.com/arloliu/sbpe/section"
)

// Blob is an encoded sbpe container together with encoding statistics.
type Blob struct {
	data   []byte
	header *section.Header
	stats  Stats
}

// Bytes returns the encoded container.
func (b Blob) Bytes() []byte {
	return b.data
}

// Len returns the container size in bytes.
func (b Blob) Len() int {
	return len(b.data)
}

// Header returns the container header.
func (b Blob) Header() *section.Header {
	return b.header
}

// Stats returns statistics collected while encoding.
func (b Blob) Stats() Stats {
	return b.stats
}

// Stats describes one Encode call.
type Stats struct {
	InputSize      int           // input bytes
	OutputSize     int           // container bytes, header included
	VocabularySize int           // merged entries learned by the builder
	StoredEntries  int           // entries referenced at least once
	Tokens         int           // references into the stored entries
	LiteralRuns    int           // literal runs, empty edge runs included
	TokenRuns      int           // token runs
	LiteralBytes   int           // bytes stored as literals
	BestScore      int           // drain score of the chosen vocabulary order
	BestSeed       uint64        // seed of the winning optimizer attempt
	BestAttempt    int           // winning attempt index, -1 if no shuffle ran
	Attempts       int           // optimizer attempts evaluated
	Histogram      map[int]int   // optimizer score -> attempts
	Digest         uint64        // xxHash64 of the input
	Elapsed        time.Duration // wall time of Encode
}

// Ratio returns OutputSize divided by InputSize, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.InputSize == 0 {
		return 0
	}

	return float64(s.OutputSize) / float64(s.InputSize)
}

// SavedBytes returns InputSize minus OutputSize. It is negative when the
// container is larger than the input.
func (s Stats) SavedBytes() int {
	return s.InputSize - s.OutputSize
}
