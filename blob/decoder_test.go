package blob

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sbpe/encoding"
	"github.com/arloliu/sbpe/errs"
	"github.com/arloliu/sbpe/format"
	"github.com/arloliu/sbpe/section"
)

func decode(data []byte) ([]byte, error) {
	decoder, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}

// rawContainer assembles a container from already encoded sections.
func rawContainer(t *testing.T, payloads [format.SectionCount][]byte, paddings [format.BitSections]int) []byte {
	t.Helper()

	header := section.NewHeader()
	for _, s := range format.AllSections() {
		padding := 0
		if s.IsBitPacked() {
			padding = paddings[s]
		}
		require.NoError(t, header.SetSection(s, len(payloads[s]), padding))
	}

	data := header.Bytes()
	for _, p := range payloads {
		data = append(data, p...)
	}

	return data
}

// container encodes the given section contents without checking their consistency.
func container(t *testing.T, literalLengths, tokenLengths, entryLengths, tokens []int, literals, bytePairs string) []byte {
	t.Helper()

	var payloads [format.SectionCount][]byte
	var paddings [format.BitSections]int

	biased := func(s format.SectionType, values []int) {
		sec, err := encoding.EncodeBiasedList(values)
		require.NoError(t, err)
		payloads[s], paddings[s] = sec.Data, sec.Padding
	}

	biased(format.SectionLiteralLengths, literalLengths)
	biased(format.SectionTokenLengths, tokenLengths)
	biased(format.SectionTokens, tokens)

	raw := make([]uint64, len(entryLengths))
	for i, n := range entryLengths {
		raw[i] = uint64(n) //nolint: gosec
	}
	sec, err := encoding.EncodeList(raw)
	require.NoError(t, err)
	payloads[format.SectionBytePairLengths], paddings[format.SectionBytePairLengths] = sec.Data, sec.Padding

	payloads[format.SectionLiterals] = []byte(literals)
	payloads[format.SectionBytePairs] = []byte(bytePairs)

	return rawContainer(t, payloads, paddings)
}

func TestDecoder_Decode_HandBuilt(t *testing.T) {
	data := container(t,
		[]int{1, 0, 2},
		[]int{2, 1},
		[]int{2, 3},
		[]int{1, 0, 1},
		"xyz", "abcde",
	)

	out, err := decode(data)

	require.NoError(t, err)
	require.Equal(t, "xcdeabcdeyz", string(out))
}

func TestDecoder_Decode_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 2048)
	rng.Read(random)

	lowEntropy := make([]byte, 4096)
	for i := range lowEntropy {
		lowEntropy[i] = "ab"[rng.Intn(2)]
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{"Empty", []byte{}},
		{"Single byte", []byte{0xFF}},
		{"Two identical bytes", []byte{0, 0}},
		{"Repeated byte", []byte("aaaa")},
		{"Odd repeated byte", []byte("aaaaaaa")},
		{"All identical", make([]byte, 1000)},
		{"All byte values", allBytes()},
		{"Random binary", random},
		{"Low entropy", lowEntropy},
		{"Text", []byte(strings.Repeat("to be or not to be, that is the question. ", 30))},
		{"Ends with match", []byte("xyzabcabcabc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := encode(t, tt.input)

			out, err := decode(b.Bytes())
			require.NoError(t, err)
			require.Equal(t, len(tt.input), len(out))
			require.Equal(t, tt.input, out)

			layout, err := Inspect(b.Bytes())
			require.NoError(t, err)
			require.Equal(t, len(tt.input), layout.DecodedSize)
			require.Equal(t, layout.TokenRuns+1, layout.LiteralRuns)
		})
	}
}

func allBytes() []byte {
	data := make([]byte, 0, 512)
	for range 2 {
		for b := range 256 {
			data = append(data, byte(b))
		}
	}

	return data
}

func TestDecoder_Decode_Errors(t *testing.T) {
	valid := encode(t, []byte("abcabcabcxyz")).Bytes()

	tests := []struct {
		name string
		data func() []byte
		err  error
	}{
		{
			name: "Too short",
			data: func() []byte { return valid[:section.HeaderSize-1] },
			err:  errs.ErrInvalidHeaderSize,
		},
		{
			name: "Bad magic",
			data: func() []byte {
				data := clone(valid)
				data[0] = 'X'
				return data
			},
			err: errs.ErrInvalidMagicNumber,
		},
		{
			name: "Truncated",
			data: func() []byte { return valid[:len(valid)-1] },
			err:  errs.ErrSectionLengthMismatch,
		},
		{
			name: "Trailing bytes",
			data: func() []byte { return append(clone(valid), 0) },
			err:  errs.ErrSectionLengthMismatch,
		},
		{
			name: "Padding out of range",
			data: func() []byte {
				data := clone(valid)
				data[section.PaddingOffset] = 8
				return data
			},
			err: errs.ErrInvalidPadding,
		},
		{
			name: "Run count mismatch",
			data: func() []byte { return container(t, []int{1, 1}, nil, nil, nil, "ab", "") },
			err:  errs.ErrRunCountMismatch,
		},
		{
			name: "Literal bytes mismatch",
			data: func() []byte { return container(t, []int{2}, nil, nil, nil, "a", "") },
			err:  errs.ErrSectionLengthMismatch,
		},
		{
			name: "Entry bytes mismatch",
			data: func() []byte { return container(t, []int{0}, nil, []int{3}, nil, "", "ab") },
			err:  errs.ErrSectionLengthMismatch,
		},
		{
			name: "Token count mismatch",
			data: func() []byte { return container(t, []int{0, 0}, []int{2}, []int{2}, []int{0}, "", "ab") },
			err:  errs.ErrRunCountMismatch,
		},
		{
			name: "Token index out of range",
			data: func() []byte { return container(t, []int{0, 0}, []int{1}, []int{2}, []int{1}, "", "ab") },
			err:  errs.ErrInvalidTokenIndex,
		},
		{
			name: "Missing delimiter",
			data: func() []byte {
				var payloads [format.SectionCount][]byte
				payloads[format.SectionLiteralLengths] = []byte{0xFF}
				return rawContainer(t, payloads, [format.BitSections]int{})
			},
			err: errs.ErrMissingDelimiter,
		},
		{
			name: "Code past section end",
			data: func() []byte {
				var payloads [format.SectionCount][]byte
				payloads[format.SectionLiteralLengths] = []byte{0x80}
				return rawContainer(t, payloads, [format.BitSections]int{6})
			},
			err: errs.ErrTruncatedSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := decode(tt.data())

			require.ErrorIs(t, err, tt.err)
			require.ErrorIs(t, err, errs.ErrFormat)
			require.True(t, errs.IsFormat(err))
			require.Nil(t, out)

			_, err = Inspect(tt.data())
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecoder_Header(t *testing.T) {
	b := encode(t, []byte("aaaa"))

	decoder, err := NewDecoder(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, b.Header(), decoder.Header())
}

func TestInspect(t *testing.T) {
	b := encode(t, []byte("aaaa"))

	layout, err := Inspect(b.Bytes())
	require.NoError(t, err)

	require.Equal(t, b.Len(), layout.TotalSize)
	require.Equal(t, 2, layout.LiteralRuns)
	require.Equal(t, 1, layout.TokenRuns)
	require.Equal(t, 1, layout.Entries)
	require.Equal(t, 2, layout.Tokens)
	require.Zero(t, layout.LiteralBytes)
	require.Equal(t, 4, layout.DecodedSize)

	tokens := layout.Sections[format.SectionTokens]
	require.Equal(t, format.SectionTokens, tokens.Type)
	require.Equal(t, section.HeaderSize+3, tokens.Offset)
	require.Equal(t, 1, tokens.Size)
	require.Equal(t, 4, tokens.Padding)
	require.Equal(t, 2, tokens.Count)

	pairs := layout.Sections[format.SectionBytePairs]
	require.Equal(t, 2, pairs.Size)
	require.Equal(t, 2, pairs.Count)
}

func clone(data []byte) []byte {
	return append([]byte(nil), data...)
}

func BenchmarkDecoder_Decode(b *testing.B) {
	encoder, err := NewEncoder()
	require.NoError(b, err)

	blob, err := encoder.Encode([]byte(strings.Repeat("lorem ipsum dolor sit amet ", 400)))
	require.NoError(b, err)
	data := blob.Bytes()

	b.ResetTimer()
	for b.Loop() {
		if _, err := decode(data); err != nil {
			b.Fatal(err)
		}
	}
}
