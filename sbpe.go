// Package sbpe is a dictionary-based byte-stream compressor.
//
// Compression learns a vocabulary of recurring multi-byte substrings from the
// input by greedy pairwise merging, searches for a vocabulary order that
// claims as much input as possible, and rewrites the input as alternating
// runs of literal bytes and vocabulary references. The result is stored in a
// compact self-describing container that Decompress reverses exactly.
//
// # Core Features
//
//   - Vocabulary learned from the input itself, stored inside the container
//   - Self-delimiting universal code for every integer in the container
//   - Seeded, parallel search over vocabulary orders with reproducible output
//   - Strict container validation: malformed input never yields partial output
//
// # Basic Usage
//
//	import "github.com/arloliu/sbpe"
//
//	compressed, err := sbpe.Compress(data)
//	if err != nil {
//	    return err
//	}
//
//	original, err := sbpe.Decompress(compressed)
//
// Tuning the search:
//
//	compressed, err := sbpe.Compress(data,
//	    sbpe.WithSeed(7),
//	    sbpe.WithOptimizeAttempts(100),
//	)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob package.
// The building blocks live in their own packages: vocab (vocabulary builder),
// drain (match simulation), optimize (order search), encoding (universal code)
// and section (container header).
package sbpe

import (
	"github.com/arloliu/sbpe/blob"
	"github.com/arloliu/sbpe/errs"
	"github.com/arloliu/sbpe/internal/hash"
)

// Option configures compression.
type Option = blob.EncoderOption

// Encoder options re-exported for convenience.
var (
	WithSeed                = blob.WithSeed
	WithGenerateAttempts    = blob.WithGenerateAttempts
	WithUnboundedVocabulary = blob.WithUnboundedVocabulary
	WithOptimizeAttempts    = blob.WithOptimizeAttempts
	WithConcurrency         = blob.WithConcurrency
	WithLogger              = blob.WithLogger
)

// Stats describes one compression call.
type Stats = blob.Stats

// Compress compresses data into an sbpe container.
//
// Returns an error only for invalid options or input larger than a container can hold.
func Compress(data []byte, opts ...Option) ([]byte, error) {
	b, err := CompressWithStats(data, opts...)
	if err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// CompressWithStats compresses data and returns the container with encoding statistics.
func CompressWithStats(data []byte, opts ...Option) (blob.Blob, error) {
	encoder, err := blob.NewEncoder(opts...)
	if err != nil {
		return blob.Blob{}, err
	}

	return encoder.Encode(data)
}

// Decompress restores the bytes stored in an sbpe container.
//
// Malformed containers return an error wrapping errs.ErrFormat.
func Decompress(data []byte) ([]byte, error) {
	decoder, err := blob.NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}

// IsFormatError reports whether err was caused by a malformed container.
func IsFormatError(err error) bool {
	return errs.IsFormat(err)
}

// Digest returns the xxHash64 of data, as recorded in Stats.Digest.
func Digest(data []byte) uint64 {
	return hash.Sum64(data)
}
