package scenario

import (
	"fmt"
	"math/rand"

	"github.com/cuemby/swanling/pkg/types"
)

// entry pairs a registered task sequence with its selection weight.
type entry struct {
	sequence types.TaskSequence
	weight   int
}

// Registry holds every virtual-user type (task sequence) a run can assign,
// and performs weighted random selection among them at ramp-up.
type Registry struct {
	entries     []entry
	totalWeight int
}

// NewRegistry builds an empty Registry. Register at least one sequence
// before calling SelectSequence.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a task sequence with the given selection weight. weight
// must be >= 1; Register panics on a non-positive weight since that
// indicates a configuration bug, not a runtime condition to recover from.
func (r *Registry) Register(seq types.TaskSequence, weight int) {
	if weight < 1 {
		panic(fmt.Sprintf("scenario: sequence %q registered with weight %d, want >= 1", seq.Name, weight))
	}
	r.entries = append(r.entries, entry{sequence: seq, weight: weight})
	r.totalWeight += weight
}

// Len reports how many sequences are registered.
func (r *Registry) Len() int {
	return len(r.entries)
}

// SelectSequence picks one registered task sequence at random, weighted by
// its registration weight. Returns false if nothing is registered.
func (r *Registry) SelectSequence(rng *rand.Rand) (types.TaskSequence, bool) {
	if len(r.entries) == 0 {
		return types.TaskSequence{}, false
	}
	pick := rng.Intn(r.totalWeight)
	for _, e := range r.entries {
		if pick < e.weight {
			return e.sequence, true
		}
		pick -= e.weight
	}
	// Unreachable as long as totalWeight tracks entries correctly.
	return r.entries[len(r.entries)-1].sequence, true
}

// SelectTask picks one task from seq at random, weighted by each task's
// own Weight. Returns false if seq has no tasks.
func SelectTask(rng *rand.Rand, seq types.TaskSequence) (types.Task, bool) {
	if len(seq.Tasks) == 0 {
		return types.Task{}, false
	}
	total := 0
	for _, t := range seq.Tasks {
		w := t.Weight
		if w < 1 {
			w = 1
		}
		total += w
	}
	pick := rng.Intn(total)
	for _, t := range seq.Tasks {
		w := t.Weight
		if w < 1 {
			w = 1
		}
		if pick < w {
			return t, true
		}
		pick -= w
	}
	return seq.Tasks[len(seq.Tasks)-1], true
}
