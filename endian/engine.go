// Package endian provides the byte order used by the sbpe container.
//
// The container stores every multi-byte integer in network byte order. Header
// code reads and writes through an EndianEngine so both the fixed-offset
// (Put/Uint32) and append-style (AppendUint32) forms are available from a
// single value.
//
//	engine := endian.GetContainerEngine()
//	buf = engine.AppendUint32(buf, sectionLen)
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary.
//
// binary.BigEndian and binary.LittleEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetContainerEngine returns the engine used for sbpe container headers.
func GetContainerEngine() EndianEngine {
	return binary.BigEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// IsNetworkOrder reports whether engine writes the most significant byte first.
func IsNetworkOrder(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x01
}
