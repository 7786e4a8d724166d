package motionplan

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Status is the state of a search.
type Status int

// A search starts Running and ends in exactly one of Succeeded or Exhausted.
const (
	Running Status = iota
	Succeeded
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalJSON encodes the status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range []Status{Running, Succeeded, Exhausted} {
		if strings.EqualFold(name, candidate.String()) {
			*s = candidate
			return nil
		}
	}
	return errors.Errorf("unknown plan status %q", name)
}

// Plan is the outcome of a search: the explored tree and, on success, the path from start to goal.
// It is read-only.
type Plan struct {
	// Status is Succeeded or Exhausted.
	Status Status
	// Iterations is the number of search iterations that ran.
	Iterations int
	// Path lists the states from start to goal inclusive. It is empty unless Status is Succeeded.
	Path []State

	tree *Tree
}

// Success returns true if the goal was reached.
func (p *Plan) Success() bool {
	return p.Status == Succeeded
}

// Len returns the number of states in the explored tree.
func (p *Plan) Len() int {
	return p.tree.Len()
}

// States returns a copy of every state of the explored tree, in insertion order.
func (p *Plan) States() []State {
	return p.tree.States()
}

// Parents returns a copy of the parent index of every tree state; the root's is NoParent.
func (p *Plan) Parents() []int {
	return p.tree.Parents()
}

// Tree returns the explored tree.
func (p *Plan) Tree() *Tree {
	return p.tree
}

// Cost assigns a numeric score to a plan that corresponds to the cumulative distance between states
// of the path. Plans without a path score +Inf.
func (p *Plan) Cost(dynamics Dynamics) float64 {
	if len(p.Path) < 2 {
		if len(p.Path) == 1 {
			return 0
		}
		return math.Inf(1)
	}
	total := 0.
	for i := 1; i < len(p.Path); i++ {
		total += dynamics.Distance(p.Path[i-1], p.Path[i])
	}
	return total
}

// Trajectory returns the dense motion along the path, sampled at most step apart.
func (p *Plan) Trajectory(dynamics Dynamics, step float64) []State {
	if len(p.Path) == 0 {
		return nil
	}
	out := []State{p.Path[0].Clone()}
	for i := 1; i < len(p.Path); i++ {
		// Each leg starts where the previous one ended.
		out = append(out, dynamics.Interpolate(p.Path[i-1], p.Path[i], step)[1:]...)
	}
	return out
}

// Edges returns the dense motion of every tree edge, sampled at most step apart, in child index order.
func (p *Plan) Edges(dynamics Dynamics, step float64) [][]State {
	out := make([][]State, 0, p.Len()-1)
	for i := 1; i < p.Len(); i++ {
		out = append(out, dynamics.Interpolate(p.tree.State(p.tree.Parent(i)), p.tree.State(i), step))
	}
	return out
}

type planJSON struct {
	Status     Status      `json:"status"`
	Iterations int         `json:"iterations"`
	States     [][]float64 `json:"states"`
	Parents    []int       `json:"parents"`
	Path       [][]float64 `json:"path"`
}

// MarshalJSON encodes the status, iteration count, tree and path.
func (p *Plan) MarshalJSON() ([]byte, error) {
	out := planJSON{
		Status:     p.Status,
		Iterations: p.Iterations,
		States:     statesToSlices(p.tree.states),
		Parents:    p.tree.parents,
		Path:       statesToSlices(p.Path),
	}
	return json.Marshal(out)
}

func statesToSlices(states []State) [][]float64 {
	out := make([][]float64, 0, len(states))
	for _, s := range states {
		out = append(out, s)
	}
	return out
}
