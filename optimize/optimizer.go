// Package optimize searches for a vocabulary order that minimizes the
// estimated container size.
//
// Match order decides which of two overlapping entries claims the shared
// bytes, so the same vocabulary can drain very different amounts of input.
// Optimize evaluates a number of seeded shuffles independently, possibly in
// parallel, and keeps the best one. The search is a heuristic: more attempts
// never make the result worse, but nothing guarantees the optimum.
package optimize

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/sbpe/drain"
	"github.com/arloliu/sbpe/internal/options"
)

// Result describes the best vocabulary order found.
type Result struct {
	// Order lists indices into the input entries, best order first.
	Order []int
	// Score is the drain score of Order: undrained bytes plus used entry bytes.
	Score int
	// Attempt is the index of the winning attempt, or -1 if no shuffle ran.
	Attempt int
	// Seed is the seed of the winning attempt.
	Seed uint64
	// Attempts is the number of shuffles evaluated.
	Attempts int
	// Histogram counts how many attempts produced each score.
	Histogram map[int]int
}

// Entries returns entries permuted into the result order.
func (r *Result) Entries(entries [][]byte) [][]byte {
	return Permute(entries, r.Order)
}

type attempt struct {
	order []int
	score int
	seed  uint64
}

// Optimize evaluates shuffled orders of entries against input and returns the
// lowest-scoring one. Ties keep the earliest attempt.
func Optimize(entries [][]byte, input []byte, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	start := time.Now()

	if cfg.attempts <= 0 {
		order := identity(len(entries))
		score := drain.Simulate(entries, input).Score(entries)

		return &Result{
			Order:     order,
			Score:     score,
			Attempt:   -1,
			Histogram: map[int]int{score: 1},
		}, nil
	}

	attempts := make([]attempt, cfg.attempts)

	var g errgroup.Group
	g.SetLimit(max(cfg.concurrency, 1))
	for i := range attempts {
		g.Go(func() error {
			attempts[i] = evaluate(entries, input, cfg.startSeed+uint64(i)) //nolint: gosec

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Attempt:   -1,
		Attempts:  len(attempts),
		Histogram: make(map[int]int),
	}
	for i, a := range attempts {
		res.Histogram[a.score]++

		if res.Attempt >= 0 && a.score >= res.Score {
			continue
		}

		res.Order, res.Score, res.Seed, res.Attempt = a.order, a.score, a.seed, i
		cfg.logger.Debug().
			Int("attempt", i).
			Uint64("seed", a.seed).
			Int("score", a.score).
			Msg("new best vocabulary order")
	}

	cfg.logger.Debug().
		Int("attempts", res.Attempts).
		Int("entries", len(entries)).
		Int("best_score", res.Score).
		Dur("elapsed", time.Since(start)).
		Msg("vocabulary order optimized")

	return res, nil
}

// Evaluate shuffles the input order with seed and returns the order and its score.
func Evaluate(entries [][]byte, input []byte, seed uint64) ([]int, int) {
	a := evaluate(entries, input, seed)

	return a.order, a.score
}

func evaluate(entries [][]byte, input []byte, seed uint64) attempt {
	order := identity(len(entries))
	NewXorShift64(seed).Shuffle(order)

	shuffled := Permute(entries, order)

	return attempt{
		order: order,
		score: drain.Simulate(shuffled, input).Score(shuffled),
		seed:  seed,
	}
}

// Permute returns entries reordered so that element k is entries[order[k]].
func Permute(entries [][]byte, order []int) [][]byte {
	out := make([][]byte, len(order))
	for k, idx := range order {
		out[k] = entries[idx]
	}

	return out
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	return order
}
