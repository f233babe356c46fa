package section

import (
	"fmt"

	"github.com/arloliu/sbpe/endian"
	"github.com/arloliu/sbpe/errs"
	"github.com/arloliu/sbpe/format"
)

// Header is the fixed-size header of an sbpe container.
type Header struct {
	// SectionLengths holds the payload length in bytes of each section, indexed by format.SectionType.
	SectionLengths [format.SectionCount]uint32 // 24 bytes, offset 4-27
	// Paddings holds the trailing zero bits of each bit-packed section.
	Paddings [format.BitSections]uint8 // 4 bytes, offset 28-31
}

// NewHeader creates an empty header.
func NewHeader() *Header {
	return &Header{}
}

// SetSection records the payload length and padding of a section.
// Padding is ignored for raw byte sections.
func (h *Header) SetSection(s format.SectionType, length int, padding int) error {
	if length < 0 || uint64(length) > MaxSectionLen {
		return fmt.Errorf("%s section length %d out of range", s, length)
	}

	h.SectionLengths[s] = uint32(length)
	if s.IsBitPacked() {
		if padding < 0 || padding > MaxPaddingBits {
			return fmt.Errorf("%s section padding %d out of range", s, padding)
		}
		h.Paddings[s] = uint8(padding)
	}

	return nil
}

// SectionLen returns the payload length in bytes of section s.
func (h *Header) SectionLen(s format.SectionType) int {
	return int(h.SectionLengths[s])
}

// Padding returns the padding bits of section s, 0 for raw byte sections.
func (h *Header) Padding(s format.SectionType) int {
	if !s.IsBitPacked() {
		return 0
	}

	return int(h.Paddings[s])
}

// SectionOffset returns the byte offset of section s within the container.
func (h *Header) SectionOffset(s format.SectionType) int {
	offset := PayloadOffset
	for i := range s {
		offset += int(h.SectionLengths[i])
	}

	return offset
}

// PayloadSize returns the summed length of all section payloads.
func (h *Header) PayloadSize() int {
	total := 0
	for _, n := range h.SectionLengths {
		total += int(n)
	}

	return total
}

// TotalSize returns the container size the header describes.
func (h *Header) TotalSize() int {
	return HeaderSize + h.PayloadSize()
}

// Parse parses the header from a byte slice.
// It returns an error if the data is not exactly HeaderSize bytes, the magic
// does not match, or a padding field is inconsistent with its section.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	if string(data[:MagicSize]) != Magic {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagicNumber, data[:MagicSize])
	}

	engine := h.GetEndianEngine()
	for i := range h.SectionLengths {
		offset := SectionLenOffset + i*SectionLenSize
		h.SectionLengths[i] = engine.Uint32(data[offset : offset+SectionLenSize])
	}
	copy(h.Paddings[:], data[PaddingOffset:HeaderSize])

	return h.Validate()
}

// Bytes serializes the header into a new byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to buf.
func (h *Header) AppendTo(buf []byte) []byte {
	engine := h.GetEndianEngine()

	buf = append(buf, Magic...)
	for _, n := range h.SectionLengths {
		buf = engine.AppendUint32(buf, n)
	}

	return append(buf, h.Paddings[:]...)
}

// Validate checks that every padding field fits its section.
func (h *Header) Validate() error {
	for i, p := range h.Paddings {
		s := format.SectionType(i)
		if p > MaxPaddingBits || int(p) > h.SectionLen(s)*8 {
			return fmt.Errorf("%w: %s declares %d bits over %d bytes", errs.ErrInvalidPadding, s, p, h.SectionLen(s))
		}
	}

	return nil
}

// GetEndianEngine returns the engine used for the header's integer fields.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	return endian.GetContainerEngine()
}
