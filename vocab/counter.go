package vocab

// pairCounter counts adjacent pairs in first-seen order. Its storage is
// reused across merge rounds.
type pairCounter struct {
	index  map[Pair]int
	pairs  []Pair
	counts []int
}

func newPairCounter() *pairCounter {
	return &pairCounter{index: make(map[Pair]int)}
}

// best returns the most frequent adjacent pair in tokens and its count.
// Ties go to the pair that first appears earliest. The count is 0 when
// tokens holds fewer than two ids.
func (c *pairCounter) best(tokens []int) (Pair, int) {
	clear(c.index)
	c.pairs = c.pairs[:0]
	c.counts = c.counts[:0]

	for i := 0; i+1 < len(tokens); i++ {
		p := Pair{tokens[i], tokens[i+1]}

		idx, ok := c.index[p]
		if !ok {
			idx = len(c.pairs)
			c.index[p] = idx
			c.pairs = append(c.pairs, p)
			c.counts = append(c.counts, 0)
		}
		c.counts[idx]++
	}

	var bestPair Pair
	bestCount := 0
	for i, n := range c.counts {
		if n > bestCount {
			bestPair, bestCount = c.pairs[i], n
		}
	}

	return bestPair, bestCount
}
