package motionplan

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

const defaultParallelNeighbors = 1000

// Check for cancellation every this many distance evaluations in a worker.
const neighborCtxCheckInterval = 256

type neighborManager struct {
	nCPU              int
	parallelNeighbors int
}

type neighbor struct {
	dist float64
	idx  int
}

// better orders candidates by distance, then by lowest index.
func (n neighbor) better(other neighbor) bool {
	if n.dist != other.dist {
		return n.dist < other.dist
	}
	return n.idx < other.idx
}

// nearestNeighbor returns the index of the state in `states` closest to `seed` under distFunc,
// measured from the tree state to the seed. Ties resolve to the lowest index.
func (nm *neighborManager) nearestNeighbor(
	ctx context.Context,
	seed State,
	states []State,
	distFunc func(from, to State) float64,
) (int, error) {
	if nm != nil && nm.nCPU > 1 && len(states) > nm.parallelNeighbors {
		// If the tree is large, calculate distances in parallel
		return nm.parallelNearestNeighbor(ctx, seed, states, distFunc)
	}
	return scanNearest(seed, states, 0, len(states), distFunc).idx, nil
}

func (nm *neighborManager) parallelNearestNeighbor(
	ctx context.Context,
	seed State,
	states []State,
	distFunc func(from, to State) float64,
) (int, error) {
	workers := nm.nCPU
	if workers > len(states) {
		workers = len(states)
	}
	chunk := (len(states) + workers - 1) / workers
	results := make([]neighbor, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(states) {
			hi = len(states)
		}
		results[w] = neighbor{dist: math.Inf(1), idx: lo}
		if lo >= hi {
			continue
		}
		w := w
		g.Go(func() error {
			best := neighbor{dist: math.Inf(1), idx: lo}
			for start := lo; start < hi; start += neighborCtxCheckInterval {
				if err := gctx.Err(); err != nil {
					return err
				}
				end := start + neighborCtxCheckInterval
				if end > hi {
					end = hi
				}
				if candidate := scanNearest(seed, states, start, end, distFunc); candidate.better(best) {
					best = candidate
				}
			}
			results[w] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.better(best) {
			best = r
		}
	}
	return best.idx, nil
}

// scanNearest serially scans states[lo:hi]. If every distance is +Inf or NaN, lo is returned.
func scanNearest(seed State, states []State, lo, hi int, distFunc func(from, to State) float64) neighbor {
	best := neighbor{dist: math.Inf(1), idx: lo}
	for i := lo; i < hi; i++ {
		if dist := distFunc(states[i], seed); dist < best.dist {
			best = neighbor{dist: dist, idx: i}
		}
	}
	return best
}
