package scenario

import (
	"math/rand"
	"testing"

	"github.com/cuemby/swanling/pkg/types"
)

func TestSelectSequenceEmptyRegistryReturnsFalse(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.SelectSequence(rand.New(rand.NewSource(1))); ok {
		t.Error("SelectSequence on an empty registry should return false")
	}
}

func TestSelectSequenceSingleEntryAlwaysWins(t *testing.T) {
	r := NewRegistry()
	seq := types.TaskSequence{Name: "checkout"}
	r.Register(seq, 3)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		got, ok := r.SelectSequence(rng)
		if !ok || got.Name != "checkout" {
			t.Fatalf("SelectSequence() = %v, %v; want checkout, true", got, ok)
		}
	}
}

func TestSelectSequenceRespectsWeightDistribution(t *testing.T) {
	r := NewRegistry()
	r.Register(types.TaskSequence{Name: "heavy"}, 9)
	r.Register(types.TaskSequence{Name: "light"}, 1)

	rng := rand.New(rand.NewSource(7))
	counts := map[string]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		got, ok := r.SelectSequence(rng)
		if !ok {
			t.Fatal("SelectSequence returned false with entries registered")
		}
		counts[got.Name]++
	}

	heavyFrac := float64(counts["heavy"]) / n
	if heavyFrac < 0.85 || heavyFrac > 0.95 {
		t.Errorf("heavy fraction = %.3f, want ~0.90 (weight 9:1)", heavyFrac)
	}
}

func TestRegisterPanicsOnNonPositiveWeight(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register with weight 0 should panic")
		}
	}()
	NewRegistry().Register(types.TaskSequence{Name: "x"}, 0)
}

func TestSelectTaskEmptySequenceReturnsFalse(t *testing.T) {
	if _, ok := SelectTask(rand.New(rand.NewSource(1)), types.TaskSequence{}); ok {
		t.Error("SelectTask on an empty sequence should return false")
	}
}

func TestSelectTaskRespectsWeightDistribution(t *testing.T) {
	seq := types.TaskSequence{
		Name: "browse",
		Tasks: []types.Task{
			{Name: "home", Weight: 1},
			{Name: "search", Weight: 4},
		},
	}
	rng := rand.New(rand.NewSource(99))
	counts := map[string]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		got, ok := SelectTask(rng, seq)
		if !ok {
			t.Fatal("SelectTask returned false for a non-empty sequence")
		}
		counts[got.Name]++
	}

	searchFrac := float64(counts["search"]) / n
	if searchFrac < 0.72 || searchFrac > 0.88 {
		t.Errorf("search fraction = %.3f, want ~0.80 (weight 4:1)", searchFrac)
	}
}

func TestSelectTaskTreatsNonPositiveWeightAsOne(t *testing.T) {
	seq := types.TaskSequence{
		Name: "s",
		Tasks: []types.Task{
			{Name: "a", Weight: 0},
			{Name: "b", Weight: 1},
		},
	}
	rng := rand.New(rand.NewSource(3))
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		got, _ := SelectTask(rng, seq)
		seen[got.Name] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("expected both tasks reachable, got %v", seen)
	}
}
