package blob

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/arloliu/sbpe/drain"
	"github.com/arloliu/sbpe/encoding"
	"github.com/arloliu/sbpe/errs"
	"github.com/arloliu/sbpe/format"
	"github.com/arloliu/sbpe/internal/hash"
	"github.com/arloliu/sbpe/internal/options"
	"github.com/arloliu/sbpe/internal/pool"
	"github.com/arloliu/sbpe/optimize"
	"github.com/arloliu/sbpe/section"
	"github.com/arloliu/sbpe/vocab"
)

// Encoder compresses byte buffers into sbpe containers.
//
// An Encoder is immutable after construction and may be used concurrently.
type Encoder struct {
	config *EncoderConfig
}

// NewEncoder creates an Encoder with the given options.
//
// Returns an error if any option is invalid.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := defaultEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Encoder{config: config}, nil
}

// Config returns the encoder configuration.
func (e *Encoder) Config() *EncoderConfig {
	return e.config
}

// storedEntry is a vocabulary entry that made it into the container.
type storedEntry struct {
	data  []byte
	id    int // creation id
	uses  int
	order int // position in the optimized order
}

func (s storedEntry) gain() int {
	return len(s.data)*s.uses - len(s.data)
}

// match is one accepted occurrence, addressed by storage index.
type match struct {
	offset int
	entry  int
}

// runs is the input rewritten as alternating literal and token runs.
type runs struct {
	literalLengths []int
	tokenLengths   []int
	tokens         []int
	literals       []byte
}

// Encode compresses input into a container.
//
// The output depends only on input and the encoder configuration.
func (e *Encoder) Encode(input []byte) (Blob, error) {
	if uint64(len(input)) > section.MaxContainerInput {
		return Blob{}, fmt.Errorf("%w: input of %d bytes exceeds container limit", errs.ErrDomain, len(input))
	}

	start := time.Now()
	logger := e.config.logger

	voc := vocab.Build(input, e.config.generateAttempts)
	merged := voc.Merged()
	logger.Debug().
		Int("input_size", len(input)).
		Int("base_entries", voc.BaseSize()).
		Int("merged_entries", len(merged)).
		Int("token_stream", len(voc.Tokens())).
		Msg("vocabulary built")

	best, err := optimize.Optimize(merged, input, e.config.optimizeOptions()...)
	if err != nil {
		return Blob{}, err
	}

	ordered := best.Entries(merged)
	result := drain.Simulate(ordered, input)

	stored := storeEntries(ordered, best.Order, result)
	r := buildRuns(input, stored, result)

	header, data, err := assemble(r, stored)
	if err != nil {
		return Blob{}, err
	}

	stats := Stats{
		InputSize:      len(input),
		OutputSize:     len(data),
		VocabularySize: len(merged),
		StoredEntries:  len(stored),
		Tokens:         len(r.tokens),
		LiteralRuns:    len(r.literalLengths),
		TokenRuns:      len(r.tokenLengths),
		LiteralBytes:   len(r.literals),
		BestScore:      best.Score,
		BestSeed:       best.Seed,
		BestAttempt:    best.Attempt,
		Attempts:       best.Attempts,
		Histogram:      best.Histogram,
		Digest:         hash.Sum64(input),
		Elapsed:        time.Since(start),
	}

	logger.Debug().
		Int("input_size", stats.InputSize).
		Int("output_size", stats.OutputSize).
		Int("stored_entries", stats.StoredEntries).
		Int("tokens", stats.Tokens).
		Dur("elapsed", stats.Elapsed).
		Msg("container encoded")

	return Blob{data: data, header: header, stats: stats}, nil
}

// storeEntries keeps the entries with at least one accepted occurrence and
// sorts them by gain, highest first, ties by creation id.
func storeEntries(ordered [][]byte, ids []int, result *drain.Result) []storedEntry {
	stored := make([]storedEntry, 0, result.UsedCount())
	for k, entry := range ordered {
		if !result.Used(k) {
			continue
		}

		stored = append(stored, storedEntry{
			data:  entry,
			id:    ids[k],
			uses:  len(result.Positions[k]),
			order: k,
		})
	}

	slices.SortFunc(stored, func(a, b storedEntry) int {
		if c := cmp.Compare(b.gain(), a.gain()); c != 0 {
			return c
		}

		return cmp.Compare(a.id, b.id)
	})

	return stored
}

// buildRuns walks input in offset order and splits it into runs.
func buildRuns(input []byte, stored []storedEntry, result *drain.Result) runs {
	matches := make([]match, 0, result.Matches())
	for idx, s := range stored {
		for _, offset := range result.Positions[s.order] {
			matches = append(matches, match{offset: offset, entry: idx})
		}
	}
	slices.SortFunc(matches, func(a, b match) int {
		return cmp.Compare(a.offset, b.offset)
	})

	r := runs{
		literalLengths: make([]int, 0, len(matches)+1),
		tokenLengths:   make([]int, 0, len(matches)),
		tokens:         make([]int, 0, len(matches)),
		literals:       make([]byte, 0, result.Undrained()),
	}

	cursor := 0
	for i := 0; i < len(matches); {
		begin := matches[i].offset
		r.literalLengths = append(r.literalLengths, begin-cursor)
		r.literals = append(r.literals, input[cursor:begin]...)
		cursor = begin

		count := 0
		for i < len(matches) && matches[i].offset == cursor {
			r.tokens = append(r.tokens, matches[i].entry)
			cursor += len(stored[matches[i].entry].data)
			count++
			i++
		}
		r.tokenLengths = append(r.tokenLengths, count)
	}

	r.literalLengths = append(r.literalLengths, len(input)-cursor)
	r.literals = append(r.literals, input[cursor:]...)

	return r
}

// assemble encodes the sections and writes header and payloads into one buffer.
func assemble(r runs, stored []storedEntry) (*section.Header, []byte, error) {
	entryLengths := make([]uint64, len(stored))
	entryBytes := 0
	for i, s := range stored {
		entryLengths[i] = uint64(len(s.data))
		entryBytes += len(s.data)
	}

	var sections [format.BitSections]encoding.Section
	var err error

	if sections[format.SectionLiteralLengths], err = encoding.EncodeBiasedList(r.literalLengths); err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", format.SectionLiteralLengths, err)
	}
	if sections[format.SectionTokenLengths], err = encoding.EncodeBiasedList(r.tokenLengths); err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", format.SectionTokenLengths, err)
	}
	if sections[format.SectionBytePairLengths], err = encoding.EncodeList(entryLengths); err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", format.SectionBytePairLengths, err)
	}
	if sections[format.SectionTokens], err = encoding.EncodeBiasedList(r.tokens); err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", format.SectionTokens, err)
	}

	header := section.NewHeader()
	for i, s := range sections {
		if err := header.SetSection(format.SectionType(i), len(s.Data), s.Padding); err != nil { //nolint: gosec
			return nil, nil, err
		}
	}
	if err := header.SetSection(format.SectionLiterals, len(r.literals), 0); err != nil {
		return nil, nil, err
	}
	if err := header.SetSection(format.SectionBytePairs, entryBytes, 0); err != nil {
		return nil, nil, err
	}

	buf := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(buf)

	buf.Grow(header.TotalSize())
	buf.MustWrite(header.Bytes())
	for _, s := range sections {
		buf.MustWrite(s.Data)
	}
	buf.MustWrite(r.literals)
	for _, s := range stored {
		buf.MustWrite(s.data)
	}

	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())

	return header, data, nil
}
