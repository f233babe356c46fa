package encoding

import (
	"encoding/binary"

	"github.com/arloliu/sbpe/internal/pool"
)

// BitWriter accumulates bits MSB-first and flushes them to a pooled byte buffer.
//
// Bits are collected in a 64-bit buffer and written out in big-endian byte order
// whenever the buffer fills. The final partial byte is padded with zero bits on
// Finish.
type BitWriter struct {
	bitBuf   uint64 // Pending bits, right-aligned
	bitCount int    // Number of valid bits in bitBuf
	bitLen   int    // Total bits written

	buf      *pool.ByteBuffer
	finished bool
}

// NewBitWriter creates a BitWriter backed by a section buffer from the pool.
func NewBitWriter() *BitWriter {
	return &BitWriter{
		buf: pool.GetSectionBuffer(),
	}
}

// WriteBit writes a single bit (0 or 1).
func (w *BitWriter) WriteBit(bit uint64) {
	w.WriteBits(bit&1, 1)
}

// WriteOnes writes count consecutive 1 bits.
func (w *BitWriter) WriteOnes(count int) {
	for count > 0 {
		n := min(count, 64)
		w.WriteBits((uint64(1)<<n)-1, n)
		count -= n
	}
}

// WriteBits writes the low numBits bits of value, most significant first.
func (w *BitWriter) WriteBits(value uint64, numBits int) {
	if w.finished {
		panic("bit writer already finished - cannot write bits after Finish()")
	}

	if numBits == 0 {
		return
	}

	if numBits < 64 {
		value &= (1 << numBits) - 1
	}

	w.bitLen += numBits
	available := 64 - w.bitCount

	if numBits <= available {
		w.bitBuf = (w.bitBuf << numBits) | value
		w.bitCount += numBits

		if w.bitCount == 64 {
			w.flushBits()
		}

		return
	}

	// Split across buffer boundary: high bits complete the current word
	highBits := numBits - available
	w.bitBuf = (w.bitBuf << available) | (value >> highBits)
	w.bitCount = 64
	w.flushBits()

	w.bitBuf = value & ((1 << highBits) - 1)
	w.bitCount = highBits
}

// BitLen returns the number of bits written so far, excluding padding.
func (w *BitWriter) BitLen() int {
	return w.bitLen
}

// Padding returns the number of zero bits needed to reach a byte boundary.
func (w *BitWriter) Padding() int {
	return (8 - w.bitLen%8) % 8
}

// Finish pads the stream to a whole byte and returns the encoded bytes.
//
// The returned slice is a copy owned by the caller. The writer returns its
// buffer to the pool and must not be used afterwards.
func (w *BitWriter) Finish() []byte {
	if w.finished {
		panic("bit writer already finished")
	}

	w.flushBits()
	w.finished = true

	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())

	pool.PutSectionBuffer(w.buf)
	w.buf = nil

	return out
}

func (w *BitWriter) flushBits() {
	if w.bitCount == 0 {
		return
	}

	numBytes := (w.bitCount + 7) / 8

	// Left-align so the first written bit becomes the MSB of the first byte
	alignedBits := w.bitBuf << (64 - w.bitCount)

	startLen := w.buf.Len()
	w.buf.ExtendOrGrow(numBytes)
	bs := w.buf.Slice(startLen, startLen+numBytes)

	if numBytes == 8 {
		binary.BigEndian.PutUint64(bs, alignedBits)
	} else {
		for i := range numBytes {
			bs[i] = byte(alignedBits >> (56 - i*8))
		}
	}

	w.bitBuf = 0
	w.bitCount = 0
}

// BitReader reads bits MSB-first from a byte slice.
type BitReader struct {
	data     []byte // Source data
	bytePos  int    // Next byte to load into bitBuf
	bitBuf   uint64 // Left-aligned pending bits
	bitCount int    // Number of valid bits in bitBuf
	consumed int    // Total bits handed out
}

// NewBitReader creates a reader over data.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// Consumed returns the number of bits read so far.
func (br *BitReader) Consumed() int {
	return br.consumed
}

// Remaining returns the number of unread bits in the underlying data.
func (br *BitReader) Remaining() int {
	return len(br.data)*8 - br.consumed
}

// ReadBit reads a single bit.
//
// Returns zero and false if no more data is available.
func (br *BitReader) ReadBit() (uint64, bool) {
	if br.bitCount == 0 && !br.fillBuffer() {
		return 0, false
	}

	bit := br.bitBuf >> 63
	br.bitBuf <<= 1
	br.bitCount--
	br.consumed++

	return bit, true
}

// ReadBits reads numBits (0-64) bits and returns them right-aligned.
//
// Returns false if the data ends first; bits consumed before that point are lost.
func (br *BitReader) ReadBits(numBits int) (uint64, bool) {
	value, read := br.ReadBitsZeroFill(numBits)

	return value, read == numBits
}

// ReadBitsZeroFill reads numBits (0-64) bits, substituting 0 for any bits past
// the end of the data. It returns the value and the number of real bits read.
func (br *BitReader) ReadBitsZeroFill(numBits int) (uint64, int) {
	var result uint64
	read := 0

	for read < numBits {
		if br.bitCount == 0 && !br.fillBuffer() {
			break
		}

		n := min(numBits-read, br.bitCount)
		chunk := br.bitBuf >> (64 - n)

		result = (result << n) | chunk
		br.bitBuf <<= n
		br.bitCount -= n
		br.consumed += n
		read += n
	}

	// Shifts of 64 or more yield 0 for unsigned operands
	result <<= numBits - read

	return result, read
}

// fillBuffer loads up to 8 bytes into the bit buffer.
func (br *BitReader) fillBuffer() bool {
	if br.bytePos >= len(br.data) {
		return false
	}

	bytesToRead := min(8, len(br.data)-br.bytePos)

	if bytesToRead == 8 {
		br.bitBuf = binary.BigEndian.Uint64(br.data[br.bytePos : br.bytePos+8])
		br.bytePos += 8
		br.bitCount = 64

		return true
	}

	br.bitBuf = 0
	for range bytesToRead {
		br.bitBuf = (br.bitBuf << 8) | uint64(br.data[br.bytePos])
		br.bytePos++
	}

	br.bitBuf <<= (8 - bytesToRead) * 8
	br.bitCount = bytesToRead * 8

	return true
}
