// Package compress provides a common Codec interface over sbpe and the
// general-purpose compressors it is measured against.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): returns the input, the size baseline
//   - Zstd (format.CompressionZstd): klauspost/compress zstd with pooled encoders and decoders
//   - S2 (format.CompressionS2): klauspost/compress s2 block format
//   - LZ4 (format.CompressionLZ4): pierrec/lz4 block format with a length prefix
//   - SBPE (format.CompressionSBPE): the sbpe container from package blob
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//
//	compressed, err := codec.Compress(data)
//	original, err := codec.Decompress(compressed)
//
// Measure runs a full round trip and reports sizes and timings:
//
//	for _, ct := range compress.AllCompressionTypes() {
//	    codec, _ := compress.GetCodec(ct)
//	    stats, err := compress.Measure(ct, codec, data)
//	    ...
//	}
//
// # Thread Safety
//
// All built-in codecs are safe for concurrent use. Zstd and LZ4 keep their
// encoder state in sync.Pool instances.
package compress
