package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4 frame modes
const (
	lz4ModeStored     byte = 0 // payload is the raw input
	lz4ModeCompressed byte = 1 // payload is one lz4 block
)

// maxLZ4Size bounds the declared decompressed size.
const maxLZ4Size = 1 << 30

var errInvalidLZ4Frame = errors.New("invalid lz4 frame")

// lz4CompressorPool pools lz4.Compressor instances; they keep a hash table between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression.
//
// Each output starts with a mode byte and the uvarint input length, so
// incompressible input is stored as is and decompression allocates exactly once.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using a pooled lz4.Compressor.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	prefix := make([]byte, 1, 1+binary.MaxVarintLen64)
	prefix = binary.AppendUvarint(prefix, uint64(len(data)))

	dst := make([]byte, len(prefix)+lz4.CompressBlockBound(len(data)))
	copy(dst, prefix)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[len(prefix):])
	if err != nil {
		return nil, err
	}

	// n == 0 means the block did not shrink
	if n == 0 || n >= len(data) {
		dst[0] = lz4ModeStored
		return append(dst[:len(prefix)], data...), nil
	}

	dst[0] = lz4ModeCompressed

	return dst[:len(prefix)+n], nil
}

// Decompress decompresses data produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, n := binary.Uvarint(data[1:])
	if n <= 0 || size > maxLZ4Size {
		return nil, fmt.Errorf("%w: bad length prefix", errInvalidLZ4Frame)
	}
	payload := data[1+n:]

	switch data[0] {
	case lz4ModeStored:
		if uint64(len(payload)) != size {
			return nil, fmt.Errorf("%w: stored %d bytes, declared %d", errInvalidLZ4Frame, len(payload), size)
		}

		return append([]byte(nil), payload...), nil
	case lz4ModeCompressed:
		buf := make([]byte, size)
		written, err := lz4.UncompressBlock(payload, buf)
		if err != nil {
			return nil, err
		}
		if uint64(written) != size { //nolint: gosec
			return nil, fmt.Errorf("%w: decoded %d bytes, declared %d", errInvalidLZ4Frame, written, size)
		}

		return buf, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", errInvalidLZ4Frame, data[0])
	}
}
