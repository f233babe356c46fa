// Package drain simulates claiming input bytes with an ordered vocabulary.
//
// Entries are matched in list order. Each entry claims every occurrence whose
// bytes are still unclaimed, so entries earlier in the list win overlapping
// regions. Claimed ("drained") bytes are tracked in a coverage bitmap.
package drain

import (
	"bytes"
	"iter"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Result is the outcome of a single drain pass.
type Result struct {
	// Coverage has one bit per input byte; a set bit means drained.
	Coverage *bitset.BitSet
	// Positions holds, per vocabulary entry, the accepted start offsets in ascending order.
	Positions [][]int

	size int
}

// Simulate runs one greedy left-to-right pass of entries over input.
func Simulate(entries [][]byte, input []byte) *Result {
	r := &Result{
		Coverage:  bitset.New(uint(len(input))),
		Positions: make([][]int, len(entries)),
		size:      len(input),
	}

	for i, entry := range entries {
		if len(entry) == 0 {
			continue
		}

		var accepted []int
		for begin := range r.candidates(input, entry) {
			r.drain(begin, len(entry))
			accepted = append(accepted, begin)
		}
		r.Positions[i] = accepted
	}

	return r
}

// candidates yields the start offsets where entry occurs over undrained
// bytes only, scanning left to right. The caller drains each yielded
// occurrence before the scan resumes.
//
// An occurrence that overlaps drained bytes is skipped together with every
// later start up to the end of that drained span, since those occurrences
// would cover drained bytes too.
func (r *Result) candidates(input, entry []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		begin := 0
		for begin+len(entry) <= len(input) {
			idx := bytes.Index(input[begin:], entry)
			if idx < 0 {
				return
			}
			begin += idx

			if p, blocked := r.firstDrained(begin, len(entry)); blocked {
				next, found := r.Coverage.NextClear(p)
				if !found {
					return
				}
				begin = int(next) //nolint: gosec

				continue
			}

			if !yield(begin) {
				return
			}
			begin += len(entry)
		}
	}
}

// firstDrained returns the first drained offset in [begin, begin+length).
func (r *Result) firstDrained(begin, length int) (uint, bool) {
	next, found := r.Coverage.NextSet(uint(begin)) //nolint: gosec
	if !found || next >= uint(begin+length) {      //nolint: gosec
		return 0, false
	}

	return next, true
}

func (r *Result) drain(begin, length int) {
	for i := begin; i < begin+length; i++ {
		r.Coverage.Set(uint(i))
	}
}

// Len returns the input length the pass ran over.
func (r *Result) Len() int {
	return r.size
}

// Undrained returns the number of input bytes no entry claimed.
func (r *Result) Undrained() int {
	return r.size - int(r.Coverage.Count())
}

// IsDrained reports whether the byte at offset was claimed.
func (r *Result) IsDrained(offset int) bool {
	return r.Coverage.Test(uint(offset))
}

// Used reports whether entry i was accepted at least once.
func (r *Result) Used(i int) bool {
	return len(r.Positions[i]) > 0
}

// UsedCount returns the number of entries accepted at least once.
func (r *Result) UsedCount() int {
	n := 0
	for i := range r.Positions {
		if r.Used(i) {
			n++
		}
	}

	return n
}

// Matches returns the total number of accepted occurrences over all entries.
func (r *Result) Matches() int {
	n := 0
	for _, p := range r.Positions {
		n += len(p)
	}

	return n
}

// UsedLength returns the summed byte length of the entries accepted at least once.
// entries must be the list the pass ran with.
func (r *Result) UsedLength(entries [][]byte) int {
	n := 0
	for i, e := range entries {
		if r.Used(i) {
			n += len(e)
		}
	}

	return n
}

// Score estimates output size as undrained bytes plus the bytes of every used entry.
// Token reference overhead is ignored.
func (r *Result) Score(entries [][]byte) int {
	return r.Undrained() + r.UsedLength(entries)
}

// Equal reports whether two results have identical coverage and positions.
func (r *Result) Equal(other *Result) bool {
	if r.size != other.size || !r.Coverage.Equal(other.Coverage) || len(r.Positions) != len(other.Positions) {
		return false
	}

	for i := range r.Positions {
		if !slices.Equal(r.Positions[i], other.Positions[i]) {
			return false
		}
	}

	return true
}
