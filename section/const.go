package section

import "math"

// Magic identifies an sbpe container.
const Magic = "SBPE"

// offset and section sizes in the container
const (
	MagicSize         = 4                                  // magic identifier size in bytes
	SectionLenSize    = 4                                  // size of one section length field (u32)
	SectionLenOffset  = MagicSize                          // byte offset of the first section length
	PaddingOffset     = SectionLenOffset + 6*SectionLenSize // byte offset of the first padding field
	HeaderSize        = PaddingOffset + 4                  // fixed header size in bytes
	PayloadOffset     = HeaderSize                         // byte offset where section payloads start
	MaxPaddingBits    = 7                                  // largest valid padding field value
	MaxSectionLen     = math.MaxUint32                     // largest section payload in bytes
	MaxContainerInput = math.MaxUint32                     // largest input the literal section can hold
)
