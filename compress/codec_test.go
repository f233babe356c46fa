package compress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sbpe/blob"
	"github.com/arloliu/sbpe/errs"
	"github.com/arloliu/sbpe/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"Zstd": NewZstdCompressor(),
		"S2":   NewS2Compressor(),
		"LZ4":  NewLZ4Compressor(),
		"SBPE": NewSBPECompressor(),
	}
}

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		ct   format.CompressionType
		want string
	}{
		{format.CompressionNone, "None"},
		{format.CompressionZstd, "Zstd"},
		{format.CompressionS2, "S2"},
		{format.CompressionLZ4, "LZ4"},
		{format.CompressionSBPE, "SBPE"},
		{format.CompressionType(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.ct.String())
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range AllCompressionTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "test")
			require.NoError(t, err)
			require.NotNil(t, codec)

			builtin, err := GetCodec(ct)
			require.NoError(t, err)
			require.IsType(t, builtin, codec)
		})
	}

	_, err := CreateCodec(format.CompressionType(0), "payload")
	require.ErrorContains(t, err, "invalid payload compression")

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestCompressionStats_Calculations(t *testing.T) {
	stats := CompressionStats{OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	require.Zero(t, empty.CompressionRatio())

	expanded := CompressionStats{OriginalSize: 10, CompressedSize: 20}
	require.InDelta(t, -100.0, expanded.SpaceSavings(), 1e-9)
}

// TestAllCodecs_EmptyData checks the byte-stream codecs; sbpe always emits a header.
func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)

			if name == "SBPE" {
				require.NotEmpty(t, compressed)
				return
			}

			compressed, err = codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"small_text", []byte("Hello, World!")},
		{"repeated_pattern", bytes.Repeat([]byte("ABCD"), 100)},
		{"binary_data", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{"single_byte", []byte{0x42}},
		{"medium_payload", bytes.Repeat([]byte("a dictionary learned from the input itself "), 128)},
		{
			name: "pseudo_random",
			data: func() []byte {
				data := make([]byte, 4096)
				for i := range data {
					if i%100 < 50 {
						data[i] = byte(i % 256)
					} else {
						data[i] = byte((i*7 + i*i) % 256)
					}
				}

				return data
			}(),
		},
		{"highly_compressible", make([]byte, 64*1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					t.Logf("Original: %d bytes, Compressed: %d bytes", len(tc.data), len(compressed))

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{"random_bytes", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"text_as_compressed", []byte("this is not compressed data")},
		{"corrupted_header", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("NoOp codec doesn't validate data")
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestSBPECompressor_FormatErrors(t *testing.T) {
	codec := NewSBPECompressor()

	_, err := codec.Decompress([]byte("SBPE"))
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestSBPECompressor_Options(t *testing.T) {
	data := bytes.Repeat([]byte("options reach the encoder "), 20)

	_, err := NewSBPECompressor(blob.WithOptimizeAttempts(-1)).Compress(data)
	require.Error(t, err)

	plain, err := NewSBPECompressor(blob.WithGenerateAttempts(0)).Compress(data)
	require.NoError(t, err)

	learned, err := NewSBPECompressor().Compress(data)
	require.NoError(t, err)
	require.Less(t, len(learned), len(plain))
}

func TestLZ4Compressor_Incompressible(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i*131 + i*i*7)
	}

	codec := NewLZ4Compressor()
	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)

	// A stored frame with a wrong length is rejected
	compressed[0] = lz4ModeStored
	_, err = codec.Decompress(compressed[:len(compressed)-1])
	require.Error(t, err)
}

func TestMeasure(t *testing.T) {
	data := bytes.Repeat([]byte("measure me "), 100)

	for _, ct := range AllCompressionTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			stats, err := Measure(ct, codec, data)
			require.NoError(t, err)
			require.Equal(t, ct, stats.Algorithm)
			require.Equal(t, int64(len(data)), stats.OriginalSize)
			require.Positive(t, stats.CompressedSize)
			require.InDelta(t, stats.CompressionRatio(), stats.Ratio, 1e-12)
		})
	}
}

type lossyCodec struct{}

func (lossyCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (lossyCodec) Decompress(data []byte) ([]byte, error) { return data[1:], nil }

type failingCodec struct{}

func (failingCodec) Compress([]byte) ([]byte, error)   { return nil, fmt.Errorf("boom") }
func (failingCodec) Decompress([]byte) ([]byte, error) { return nil, nil }

func TestMeasure_Errors(t *testing.T) {
	_, err := Measure(format.CompressionNone, lossyCodec{}, []byte("abc"))
	require.ErrorIs(t, err, ErrRoundTripMismatch)

	_, err = Measure(format.CompressionNone, failingCodec{}, []byte("abc"))
	require.ErrorContains(t, err, "boom")
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 20
	testData := []byte("Concurrent compression test data with some content to compress")

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			done := make(chan error, numGoroutines)
			for range numGoroutines {
				go func() {
					compressed, err := codec.Compress(testData)
					if err != nil {
						done <- err
						return
					}

					restored, err := codec.Decompress(compressed)
					if err != nil {
						done <- err
						return
					}
					if !bytes.Equal(restored, testData) {
						done <- fmt.Errorf("round trip mismatch")
						return
					}
					done <- nil
				}()
			}

			for range numGoroutines {
				require.NoError(t, <-done)
			}
		})
	}
}
