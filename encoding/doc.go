// Package encoding implements the universal code used by every bit-packed
// section of an sbpe container.
//
// The universal code is a self-delimiting bit encoding for integers n >= 2.
// A value with bit length L is written as L-2 one bits, a single zero bit, and
// the low L-1 bits of n:
//
//	n = 2   ->  00
//	n = 3   ->  01
//	n = 4   ->  10 00
//	n = 7   ->  10 11
//	n = 8   ->  110 000
//
// A decoder scans for the first zero bit at relative offset d, reads the next
// d+1 bits as the remainder r, and recovers n = 2^(d+1) + r after consuming
// 2(d+1) bits.
//
// Lists are plain concatenations of codes. Values whose domain includes 0 or 1
// (run lengths, token indices) go through the biased helpers, which add 2
// before encoding and subtract it after decoding.
//
//	sec, err := encoding.EncodeBiasedList([]int{0, 5, 1})
//	// sec.Data holds the packed bytes, sec.Padding the trailing zero bits
//	values, err := encoding.DecodeBiasedList(sec.Data, sec.BitLen)
package encoding
