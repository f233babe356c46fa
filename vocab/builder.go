// Package vocab learns a vocabulary of recurring byte strings by greedy
// pairwise merging.
//
// The builder starts with one base entry per distinct byte value in the input,
// numbered in ascending byte order, and repeatedly merges the most frequent
// adjacent pair of entries in the token stream into a new entry. Entries are
// stored in an arena indexed by id: a merged entry's bytes are resolved once,
// when it is created, by concatenating its two constituents.
package vocab

import "math"

// Unbounded runs the merge loop until no pair occurs at least twice.
const Unbounded = math.MaxInt

// Pair is an ordered pair of adjacent entry ids.
type Pair struct {
	Left  int
	Right int
}

// Vocabulary is the result of a Build call.
type Vocabulary struct {
	entries  [][]byte
	merges   []Pair
	baseSize int
	tokens   []int
}

// Build learns a vocabulary from input, performing at most maxAttempts merges.
//
// A maxAttempts of 0 performs no merges; Unbounded runs to convergence.
func Build(input []byte, maxAttempts int) *Vocabulary {
	v := &Vocabulary{}
	v.initBase(input)

	counter := newPairCounter()
	for range max(maxAttempts, 0) {
		best, count := counter.best(v.tokens)
		if count < 2 {
			break
		}

		id := v.addMerge(best)
		v.tokens = replacePair(v.tokens, best, id)
	}

	return v
}

// initBase creates one entry per distinct byte, ids in ascending byte order,
// and rewrites input as base ids.
func (v *Vocabulary) initBase(input []byte) {
	var present [256]bool
	for _, b := range input {
		present[b] = true
	}

	var ids [256]int
	for b := range 256 {
		if !present[b] {
			continue
		}
		ids[b] = len(v.entries)
		v.entries = append(v.entries, []byte{byte(b)})
	}
	v.baseSize = len(v.entries)

	v.tokens = make([]int, len(input))
	for i, b := range input {
		v.tokens[i] = ids[b]
	}
}

func (v *Vocabulary) addMerge(p Pair) int {
	left, right := v.entries[p.Left], v.entries[p.Right]

	merged := make([]byte, len(left)+len(right))
	copy(merged, left)
	copy(merged[len(left):], right)

	id := len(v.entries)
	v.entries = append(v.entries, merged)
	v.merges = append(v.merges, p)

	return id
}

// Merged returns the merged entries in creation order. Base entries are excluded.
func (v *Vocabulary) Merged() [][]byte {
	return v.entries[v.baseSize:]
}

// Entry returns the bytes of the entry with the given id.
func (v *Vocabulary) Entry(id int) []byte {
	return v.entries[id]
}

// Len returns the total number of entries, base and merged.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// BaseSize returns the number of base entries, which is the number of distinct input bytes.
func (v *Vocabulary) BaseSize() int {
	return v.baseSize
}

// Merges returns the pair merged to create each merged entry, in creation order.
func (v *Vocabulary) Merges() []Pair {
	return v.merges
}

// Tokens returns the input rewritten as entry ids after the last merge.
func (v *Vocabulary) Tokens() []int {
	return v.tokens
}

// replacePair rewrites tokens in place, replacing each non-overlapping
// occurrence of p, scanned left to right, with id.
func replacePair(tokens []int, p Pair, id int) []int {
	out := tokens[:0]
	for i := 0; i < len(tokens); {
		if i+1 < len(tokens) && tokens[i] == p.Left && tokens[i+1] == p.Right {
			out = append(out, id)
			i += 2

			continue
		}

		out = append(out, tokens[i])
		i++
	}

	return out
}
