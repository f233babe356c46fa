package encoding

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sbpe/errs"
)

// bitString renders the first n bits of data as '0'/'1' characters.
func bitString(data []byte, n int) string {
	out := make([]byte, n)
	for i := range n {
		if data[i/8]&(0x80>>(i%8)) != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}

	return string(out)
}

func TestEncode_KnownCodes(t *testing.T) {
	tests := []struct {
		n    uint64
		bits string
	}{
		{2, "00"},
		{3, "01"},
		{4, "1000"},
		{5, "1001"},
		{6, "1010"},
		{7, "1011"},
		{8, "110000"},
		{15, "110111"},
		{16, "11100000"},
		{100, "111110100100"},
	}

	for _, tt := range tests {
		t.Run(tt.bits, func(t *testing.T) {
			data, bitLen, err := Encode(tt.n)
			require.NoError(t, err)
			require.Equal(t, len(tt.bits), bitLen)
			require.Equal(t, CodeLen(tt.n), bitLen)
			require.Equal(t, tt.bits, bitString(data, bitLen))
		})
	}
}

func TestEncode_DomainError(t *testing.T) {
	for _, n := range []uint64{0, 1} {
		_, _, err := Encode(n)
		require.ErrorIs(t, err, errs.ErrDomain)
		require.Equal(t, 0, CodeLen(n))
	}
}

func TestUniversal_RoundTripRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for n := uint64(2); n <= 1<<20; n++ {
		data, bitLen, err := Encode(n)
		require.NoError(t, err)

		// Append arbitrary trailing padding bits by filling unused bits and an extra byte
		padded := append([]byte(nil), data...)
		if rem := bitLen % 8; rem != 0 {
			padded[len(padded)-1] |= byte(rng.UintN(256)) & (0xFF >> rem)
		}
		padded = append(padded, byte(rng.UintN(256)))

		got, consumed, err := Decode(padded, 0)
		require.NoError(t, err)
		require.Equal(t, n, got)
		require.Equal(t, bitLen, consumed)
	}
}

func TestUniversal_LargeValues(t *testing.T) {
	values := []uint64{1 << 32, 1<<40 + 12345, math.MaxUint64, math.MaxUint64 - 1, 1 << 63}

	for _, n := range values {
		data, bitLen, err := Encode(n)
		require.NoError(t, err)
		require.Equal(t, 2*(64-1), CodeLen(math.MaxUint64))

		got, consumed, err := Decode(data, 0)
		require.NoError(t, err)
		require.Equal(t, n, got)
		require.Equal(t, bitLen, consumed)
	}
}

func TestDecode_AtOffset(t *testing.T) {
	sec, err := EncodeList([]uint64{9, 2, 1000})
	require.NoError(t, err)

	got, consumed, err := Decode(sec.Data, CodeLen(9))
	require.NoError(t, err)
	require.Equal(t, uint64(2), got)
	require.Equal(t, 2, consumed)

	got, _, err = Decode(sec.Data, CodeLen(9)+2)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), got)
}

func TestDecode_MissingTrailingBitsReadAsZero(t *testing.T) {
	// "110" then end of buffer: remainder 000 is implied
	got, consumed, err := Decode([]byte{0b11111110}, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(8), got)
	require.Equal(t, 3, consumed, "only real bits count as consumed")
}

func TestDecode_Errors(t *testing.T) {
	t.Run("no delimiter", func(t *testing.T) {
		_, _, err := Decode([]byte{0xFF, 0xFF}, 0)
		require.ErrorIs(t, err, errs.ErrMissingDelimiter)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := Decode(nil, 0)
		require.ErrorIs(t, err, errs.ErrMissingDelimiter)
	})

	t.Run("offset out of range", func(t *testing.T) {
		_, _, err := Decode([]byte{0}, 9)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
	})

	t.Run("prefix too long", func(t *testing.T) {
		data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}
		_, _, err := Decode(data, 0)
		require.ErrorIs(t, err, errs.ErrValueOverflow)
	})
}

func TestList_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	tests := map[string][]uint64{
		"empty":  {},
		"single": {2},
		"small":  {2, 3, 4, 5, 6, 7, 8},
		"mixed":  {1 << 20, 2, 77, 3, 1 << 40},
	}

	random := make([]uint64, 500)
	for i := range random {
		random[i] = rng.Uint64N(1<<uint(rng.IntN(40)+2)) + 2
	}
	tests["random"] = random

	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			sec, err := EncodeList(values)
			require.NoError(t, err)
			require.Equal(t, (sec.BitLen+7)/8, len(sec.Data))
			require.Equal(t, len(sec.Data)*8-sec.BitLen, sec.Padding)

			got, err := DecodeList(sec.Data, sec.BitLen)
			require.NoError(t, err)
			require.Equal(t, len(values), len(got))
			for i := range values {
				require.Equal(t, values[i], got[i], "index %d", i)
			}
		})
	}
}

func TestEncodeList_DomainError(t *testing.T) {
	_, err := EncodeList([]uint64{5, 1, 9})
	require.ErrorIs(t, err, errs.ErrDomain)
}

func TestDecodeList_Truncated(t *testing.T) {
	sec, err := EncodeList([]uint64{100, 200})
	require.NoError(t, err)

	_, err = DecodeList(sec.Data, sec.BitLen-1)
	require.ErrorIs(t, err, errs.ErrTruncatedSection)

	_, err = DecodeList(sec.Data, len(sec.Data)*8+1)
	require.ErrorIs(t, err, errs.ErrTruncatedSection)
}

func TestDecodeList_PaddingWithoutStrip(t *testing.T) {
	// Unstripped zero padding decodes as extra 2s, so the header must record it.
	sec, err := EncodeList([]uint64{4})
	require.NoError(t, err)
	require.Equal(t, 4, sec.Padding)

	got, err := DecodeList(sec.Data, 8)
	require.NoError(t, err)
	require.Equal(t, []uint64{4, 2, 2}, got)
}

func TestBiasedList_RoundTrip(t *testing.T) {
	values := []int{0, 1, 2, 0, 1000, 65535, 0}

	sec, err := EncodeBiasedList(values)
	require.NoError(t, err)

	got, err := DecodeBiasedList(sec.Data, sec.BitLen)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestBiasedList_Negative(t *testing.T) {
	_, err := EncodeBiasedList([]int{3, -1})
	require.ErrorIs(t, err, errs.ErrDomain)
}

func TestDecodeSection(t *testing.T) {
	t.Run("biased", func(t *testing.T) {
		sec, err := EncodeBiasedList([]int{0, 7, 3})
		require.NoError(t, err)

		got, err := DecodeSection(sec.Data, sec.Padding, true)
		require.NoError(t, err)
		require.Equal(t, []int{0, 7, 3}, got)
	})

	t.Run("unbiased", func(t *testing.T) {
		sec, err := EncodeList([]uint64{2, 9, 3})
		require.NoError(t, err)

		got, err := DecodeSection(sec.Data, sec.Padding, false)
		require.NoError(t, err)
		require.Equal(t, []int{2, 9, 3}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := DecodeSection(nil, 0, true)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("invalid padding", func(t *testing.T) {
		_, err := DecodeSection([]byte{0}, 8, true)
		require.ErrorIs(t, err, errs.ErrInvalidPadding)

		_, err = DecodeSection(nil, 1, false)
		require.ErrorIs(t, err, errs.ErrInvalidPadding)
	})

	t.Run("overflow", func(t *testing.T) {
		sec, err := EncodeList([]uint64{math.MaxUint64})
		require.NoError(t, err)

		_, err = DecodeSection(sec.Data, sec.Padding, false)
		require.ErrorIs(t, err, errs.ErrValueOverflow)
	})
}
