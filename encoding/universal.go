package encoding

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/arloliu/sbpe/errs"
	ienc "github.com/arloliu/sbpe/internal/encoding"
)

const (
	// MinValue is the smallest integer the universal code can represent.
	MinValue = 2

	// Bias is added to values whose domain starts at 0.
	Bias = 2

	// maxPrefix is the longest unary prefix whose value still fits in 64 bits.
	maxPrefix = 62
)

// Section is a universal-coded integer list packed into whole bytes.
type Section struct {
	// Data holds the packed bits, MSB-first, padded with zero bits.
	Data []byte
	// BitLen is the number of meaningful bits in Data.
	BitLen int
	// Padding is the number of trailing zero bits appended to reach a byte boundary.
	Padding int
}

// CodeLen returns the number of bits the universal code uses for n.
// It returns 0 for values outside the domain.
func CodeLen(n uint64) int {
	if n < MinValue {
		return 0
	}

	return 2 * (bits.Len64(n) - 1)
}

// Encode returns the universal code of n packed into bytes, and its length in bits.
//
// Values below MinValue return an error wrapping errs.ErrDomain.
func Encode(n uint64) ([]byte, int, error) {
	w := ienc.NewBitWriter()
	if err := writeCode(w, n); err != nil {
		w.Finish()
		return nil, 0, err
	}
	bitLen := w.BitLen()

	return w.Finish(), bitLen, nil
}

// Decode decodes one universal code starting at bitOffset in data.
//
// Remainder bits that lie past the end of data read as 0. It returns the value
// and the number of bits consumed.
func Decode(data []byte, bitOffset int) (uint64, int, error) {
	if bitOffset < 0 || bitOffset > len(data)*8 {
		return 0, 0, fmt.Errorf("%w: bit offset %d outside %d-byte buffer", errs.ErrTruncatedSection, bitOffset, len(data))
	}

	r := ienc.NewBitReader(data)
	skip(r, bitOffset)

	value, err := readCode(r, len(data)*8, false)
	if err != nil {
		return 0, 0, err
	}

	return value, r.Consumed() - bitOffset, nil
}

// EncodeList concatenates the universal codes of values into a Section.
func EncodeList(values []uint64) (Section, error) {
	w := ienc.NewBitWriter()
	for i, v := range values {
		if err := writeCode(w, v); err != nil {
			w.Finish()
			return Section{}, fmt.Errorf("value %d: %w", i, err)
		}
	}

	return finishSection(w), nil
}

// DecodeList decodes universal codes from data until exactly bitLen bits are consumed.
//
// A code that runs past bitLen, or a prefix without a delimiter, is a format error.
func DecodeList(data []byte, bitLen int) ([]uint64, error) {
	if bitLen < 0 || bitLen > len(data)*8 {
		return nil, fmt.Errorf("%w: %d bits declared in %d bytes", errs.ErrTruncatedSection, bitLen, len(data))
	}

	// Every code is at least 2 bits
	values := make([]uint64, 0, bitLen/2)
	r := ienc.NewBitReader(data)
	for r.Consumed() < bitLen {
		v, err := readCode(r, bitLen, true)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(values), err)
		}
		values = append(values, v)
	}

	return values, nil
}

// EncodeBiasedList encodes non-negative values after adding Bias to each.
func EncodeBiasedList(values []int) (Section, error) {
	w := ienc.NewBitWriter()
	for i, v := range values {
		if v < 0 {
			w.Finish()
			return Section{}, fmt.Errorf("value %d: %w: %d is negative", i, errs.ErrDomain, v)
		}

		if err := writeCode(w, uint64(v)+Bias); err != nil {
			w.Finish()
			return Section{}, fmt.Errorf("value %d: %w", i, err)
		}
	}

	return finishSection(w), nil
}

// DecodeBiasedList decodes a list written by EncodeBiasedList.
func DecodeBiasedList(data []byte, bitLen int) ([]int, error) {
	raw, err := DecodeList(data, bitLen)
	if err != nil {
		return nil, err
	}

	return toInts(raw, Bias)
}

// DecodeSection decodes a padded section, biased or not.
func DecodeSection(data []byte, padding int, biased bool) ([]int, error) {
	if padding < 0 || padding > 7 || padding > len(data)*8 {
		return nil, fmt.Errorf("%w: %d bits", errs.ErrInvalidPadding, padding)
	}

	bitLen := len(data)*8 - padding
	if biased {
		return DecodeBiasedList(data, bitLen)
	}

	raw, err := DecodeList(data, bitLen)
	if err != nil {
		return nil, err
	}

	return toInts(raw, 0)
}

func toInts(raw []uint64, bias uint64) ([]int, error) {
	values := make([]int, len(raw))
	for i, v := range raw {
		v -= bias
		if v > math.MaxInt {
			return nil, fmt.Errorf("value %d: %w", i, errs.ErrValueOverflow)
		}
		values[i] = int(v)
	}

	return values, nil
}

func writeCode(w *ienc.BitWriter, n uint64) error {
	if n < MinValue {
		return fmt.Errorf("%w: %d", errs.ErrDomain, n)
	}

	width := bits.Len64(n) - 1
	w.WriteOnes(width - 1)
	w.WriteBit(0)
	w.WriteBits(n, width)

	return nil
}

// readCode reads one code. Bits past limit are a format error when strict,
// otherwise remainder bits past the data read as 0.
func readCode(r *ienc.BitReader, limit int, strict bool) (uint64, error) {
	start := r.Consumed()

	d := 0
	for {
		if r.Consumed() >= limit {
			return 0, fmt.Errorf("%w at bit %d", errs.ErrMissingDelimiter, start)
		}

		bit, ok := r.ReadBit()
		if !ok {
			return 0, fmt.Errorf("%w at bit %d", errs.ErrMissingDelimiter, start)
		}
		if bit == 0 {
			break
		}

		d++
		if d > maxPrefix {
			return 0, fmt.Errorf("%w at bit %d", errs.ErrValueOverflow, start)
		}
	}

	if strict && r.Consumed()+d+1 > limit {
		return 0, fmt.Errorf("%w: code at bit %d needs %d bits, %d available",
			errs.ErrTruncatedSection, start, 2*(d+1), limit-start)
	}

	remainder, _ := r.ReadBitsZeroFill(d + 1)

	return (uint64(1) << (d + 1)) + remainder, nil
}

func finishSection(w *ienc.BitWriter) Section {
	bitLen := w.BitLen()
	padding := w.Padding()

	return Section{
		Data:    w.Finish(),
		BitLen:  bitLen,
		Padding: padding,
	}
}

func skip(r *ienc.BitReader, n int) {
	for n > 0 {
		step := min(n, 64)
		r.ReadBitsZeroFill(step)
		n -= step
	}
}
