// Package encoding provides the MSB-first bit stream used by the universal code.
//
// BitWriter packs bits into a 64-bit accumulator and flushes whole words to a
// pooled byte buffer in big-endian order; BitReader reads them back from a
// byte slice. Both are internal: the public entry points are in the top-level
// encoding package.
package encoding
