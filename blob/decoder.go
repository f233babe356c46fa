package blob

import (
	"fmt"

	"github.com/arloliu/sbpe/encoding"
	"github.com/arloliu/sbpe/errs"
	"github.com/arloliu/sbpe/format"
	"github.com/arloliu/sbpe/section"
)

// Decoder restores the original bytes from a container.
//
// Note: The Decoder is NOT thread-safe. Each decoder instance should be used by a single goroutine at a time.
type Decoder struct {
	data   []byte
	header *section.Header
}

// NewDecoder creates a Decoder for the given container.
//
// The header is parsed and checked against the container size here; the
// sections are decoded and validated by Decode.
//
// Returns:
//   - *Decoder: decoder ready for Decode
//   - error: wrapping errs.ErrFormat if the header is invalid
func NewDecoder(data []byte) (*Decoder, error) {
	if len(data) < section.HeaderSize {
		return nil, fmt.Errorf("%w: container has %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	header := section.NewHeader()
	if err := header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, err
	}

	if header.TotalSize() != len(data) {
		return nil, fmt.Errorf("%w: header declares %d bytes, container has %d",
			errs.ErrSectionLengthMismatch, header.TotalSize(), len(data))
	}

	return &Decoder{data: data, header: header}, nil
}

// Header returns the parsed container header.
func (d *Decoder) Header() *section.Header {
	return d.header
}

// Decode validates every section and replays the runs.
//
// No output is returned unless the whole container is consistent.
func (d *Decoder) Decode() ([]byte, error) {
	p, err := d.parse()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, p.outputSize)
	literals := p.literals
	tokens := p.tokens

	for run, count := range p.tokenLengths {
		litLen := p.literalLengths[run]
		out = append(out, literals[:litLen]...)
		literals = literals[litLen:]

		for _, idx := range tokens[:count] {
			out = append(out, p.entry(idx)...)
		}
		tokens = tokens[count:]
	}
	out = append(out, literals...)

	return out, nil
}

// parsed holds the decoded sections of a validated container.
type parsed struct {
	literalLengths []int
	tokenLengths   []int
	entryLengths   []int
	tokens         []int
	literals       []byte
	bytePairs      []byte

	entryOffsets []int // start of entry i in bytePairs, plus a final end offset
	outputSize   int
}

func (p *parsed) entry(idx int) []byte {
	return p.bytePairs[p.entryOffsets[idx]:p.entryOffsets[idx+1]]
}

func (d *Decoder) payload(s format.SectionType) []byte {
	offset := d.header.SectionOffset(s)

	return d.data[offset : offset+d.header.SectionLen(s)]
}

func (d *Decoder) decodeSection(s format.SectionType) ([]int, error) {
	values, err := encoding.DecodeSection(d.payload(s), d.header.Padding(s), s.IsBiased())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s, err)
	}

	return values, nil
}

func (d *Decoder) parse() (*parsed, error) {
	p := &parsed{
		literals:  d.payload(format.SectionLiterals),
		bytePairs: d.payload(format.SectionBytePairs),
	}

	var err error
	if p.literalLengths, err = d.decodeSection(format.SectionLiteralLengths); err != nil {
		return nil, err
	}
	if p.tokenLengths, err = d.decodeSection(format.SectionTokenLengths); err != nil {
		return nil, err
	}
	if p.entryLengths, err = d.decodeSection(format.SectionBytePairLengths); err != nil {
		return nil, err
	}
	if p.tokens, err = d.decodeSection(format.SectionTokens); err != nil {
		return nil, err
	}

	if len(p.literalLengths) != len(p.tokenLengths)+1 {
		return nil, fmt.Errorf("%w: %d literal runs for %d token runs",
			errs.ErrRunCountMismatch, len(p.literalLengths), len(p.tokenLengths))
	}

	if sum, ok := sumWithin(p.literalLengths, len(p.literals)); !ok || sum != len(p.literals) {
		return nil, fmt.Errorf("%w: literal lengths do not add up to %d literal bytes",
			errs.ErrSectionLengthMismatch, len(p.literals))
	}

	if sum, ok := sumWithin(p.tokenLengths, len(p.tokens)); !ok || sum != len(p.tokens) {
		return nil, fmt.Errorf("%w: token run lengths do not add up to %d tokens",
			errs.ErrRunCountMismatch, len(p.tokens))
	}

	if sum, ok := sumWithin(p.entryLengths, len(p.bytePairs)); !ok || sum != len(p.bytePairs) {
		return nil, fmt.Errorf("%w: entry lengths do not add up to %d byte-pair bytes",
			errs.ErrSectionLengthMismatch, len(p.bytePairs))
	}

	p.entryOffsets = make([]int, len(p.entryLengths)+1)
	for i, n := range p.entryLengths {
		p.entryOffsets[i+1] = p.entryOffsets[i] + n
	}

	p.outputSize = len(p.literals)
	for i, idx := range p.tokens {
		if idx >= len(p.entryLengths) {
			return nil, fmt.Errorf("%w: token %d references entry %d of %d",
				errs.ErrInvalidTokenIndex, i, idx, len(p.entryLengths))
		}
		p.outputSize += p.entryLengths[idx]
	}

	return p, nil
}

// sumWithin adds values and reports false as soon as the sum exceeds limit.
func sumWithin(values []int, limit int) (int, bool) {
	sum := 0
	for _, v := range values {
		if v > limit-sum {
			return 0, false
		}
		sum += v
	}

	return sum, true
}
