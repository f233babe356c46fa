// Package section defines the fixed 32-byte header of an sbpe container.
//
// Header layout (all multi-byte integers big-endian):
//
//	offset  size  field
//	0       4     magic "SBPE"
//	4       4     literal-lengths section length in bytes
//	8       4     token-lengths section length in bytes
//	12      4     byte-pair-lengths section length in bytes
//	16      4     tokens section length in bytes
//	20      4     literals section length in bytes
//	24      4     byte-pairs section length in bytes
//	28      1     padding bits of literal-lengths
//	29      1     padding bits of token-lengths
//	30      1     padding bits of byte-pair-lengths
//	31      1     padding bits of tokens
//
// The six section payloads follow the header in the same order as their
// length fields.
package section
