package blob

import (
	"github.com/arloliu/sbpe/format"
	"github.com/arloliu/sbpe/section"
)

// SectionInfo describes one section of a container.
type SectionInfo struct {
	Type    format.SectionType
	Offset  int // byte offset from the start of the container
	Size    int // payload bytes
	Padding int // trailing zero bits, bit-packed sections only
	Count   int // decoded integers, or bytes for raw sections
}

// Layout summarizes a validated container without replaying it.
type Layout struct {
	Header       *section.Header
	Sections     [format.SectionCount]SectionInfo
	TotalSize    int
	LiteralRuns  int
	TokenRuns    int
	Entries      int
	Tokens       int
	LiteralBytes int
	DecodedSize  int
}

// Inspect parses and validates data and returns its layout.
//
// Inspect applies the same checks as Decode, so a nil error means Decode
// would succeed.
func Inspect(data []byte) (Layout, error) {
	d, err := NewDecoder(data)
	if err != nil {
		return Layout{}, err
	}

	p, err := d.parse()
	if err != nil {
		return Layout{}, err
	}

	counts := [format.SectionCount]int{
		format.SectionLiteralLengths:  len(p.literalLengths),
		format.SectionTokenLengths:    len(p.tokenLengths),
		format.SectionBytePairLengths: len(p.entryLengths),
		format.SectionTokens:          len(p.tokens),
		format.SectionLiterals:        len(p.literals),
		format.SectionBytePairs:       len(p.bytePairs),
	}

	layout := Layout{
		Header:       d.header,
		TotalSize:    d.header.TotalSize(),
		LiteralRuns:  len(p.literalLengths),
		TokenRuns:    len(p.tokenLengths),
		Entries:      len(p.entryLengths),
		Tokens:       len(p.tokens),
		LiteralBytes: len(p.literals),
		DecodedSize:  p.outputSize,
	}

	for _, s := range format.AllSections() {
		layout.Sections[s] = SectionInfo{
			Type:    s,
			Offset:  d.header.SectionOffset(s),
			Size:    d.header.SectionLen(s),
			Padding: d.header.Padding(s),
			Count:   counts[s],
		}
	}

	return layout, nil
}
