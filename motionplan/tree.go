package motionplan

import (
	"context"

	"github.com/pkg/errors"
)

// NoParent is the parent index of the root.
const NoParent = -1

// Tree is the append-only store of states explored by a search. Every state except the root has
// exactly one parent, and a parent always has a lower index than its child, so the tree is acyclic
// by construction and every walk toward the root terminates.
//
// Only the first Len() entries exist; there are no placeholder slots. A Tree is not safe for
// concurrent mutation.
type Tree struct {
	states   []State
	parents  []int
	capacity int
	dynamics Dynamics
	nm       *neighborManager
}

// NewTree creates a tree holding only root, able to grow to capacity states in total. Nearest
// neighbor queries use dynamics.Distance.
func NewTree(root State, capacity int, dynamics Dynamics) (*Tree, error) {
	if capacity < 1 {
		return nil, newInvalidConfigurationError("tree capacity must be at least 1, got %d", capacity)
	}
	if dynamics == nil {
		return nil, newInvalidConfigurationError("tree requires dynamics")
	}
	t := &Tree{
		states:   make([]State, 0, capacity),
		parents:  make([]int, 0, capacity),
		capacity: capacity,
		dynamics: dynamics,
	}
	t.states = append(t.states, root.Clone())
	t.parents = append(t.parents, NoParent)
	return t, nil
}

// Len returns the number of states in the tree.
func (t *Tree) Len() int {
	return len(t.states)
}

// Cap returns the maximum number of states the tree may hold.
func (t *Tree) Cap() int {
	return t.capacity
}

// State returns the state at index i. The returned slice must not be modified.
func (t *Tree) State(i int) State {
	return t.states[i]
}

// Parent returns the parent index of i, or NoParent for the root.
func (t *Tree) Parent(i int) int {
	return t.parents[i]
}

// States returns a copy of every state, in insertion order.
func (t *Tree) States() []State {
	return cloneStates(t.states)
}

// Parents returns a copy of the parent index of every state.
func (t *Tree) Parents() []int {
	return append([]int(nil), t.parents...)
}

// Insert appends a state as a child of parent and returns its index.
func (t *Tree) Insert(parent int, s State) (int, error) {
	if len(t.states) >= t.capacity {
		return 0, errors.Wrapf(ErrCapacityExceeded, "capacity %d", t.capacity)
	}
	if parent < 0 || parent >= len(t.states) {
		return 0, errors.Errorf("parent index %d out of range [0, %d)", parent, len(t.states))
	}
	t.states = append(t.states, s.Clone())
	t.parents = append(t.parents, parent)
	return len(t.states) - 1, nil
}

// Nearest returns the index of the state with the smallest Distance(state, query). Ties resolve to
// the lowest index. Large trees are scanned in parallel when the tree was configured to do so; the
// result is the same either way.
func (t *Tree) Nearest(ctx context.Context, query State) (int, error) {
	return t.nm.nearestNeighbor(ctx, query, t.states, t.dynamics.Distance)
}

// PathToRoot returns the states from the root to index i, inclusive.
func (t *Tree) PathToRoot(i int) []State {
	if i < 0 || i >= len(t.states) {
		return nil
	}
	var reversed []State
	// Parents strictly decrease, so this takes at most Len() steps.
	for idx := i; idx != NoParent; idx = t.parents[idx] {
		reversed = append(reversed, t.states[idx].Clone())
	}
	path := make([]State, 0, len(reversed))
	for j := len(reversed) - 1; j >= 0; j-- {
		path = append(path, reversed[j])
	}
	return path
}

func (t *Tree) setParallelism(nCPU, parallelNeighbors int) {
	t.nm = &neighborManager{nCPU: nCPU, parallelNeighbors: parallelNeighbors}
}
