package metrics

import (
	"reflect"
	"testing"

	"github.com/agbru/orbitcalc/internal/orbit"
)

func TestComputeOrbitStats_SevenSlots(t *testing.T) {
	t.Parallel()
	reps, err := orbit.Classify(7)
	if err != nil {
		t.Fatal(err)
	}
	s := ComputeOrbitStats(7, reps)

	if s.Orbits != 10 || s.Configurations != 128 || !s.Complete() {
		t.Errorf("stats = %+v", s)
	}
	if s.Largest != 14 || s.Smallest != 2 {
		t.Errorf("largest/smallest = %d/%d, want 14/2", s.Largest, s.Smallest)
	}
	want := []SizeBucket{{Size: 14, Count: 9}, {Size: 2, Count: 1}}
	if !reflect.DeepEqual(s.Histogram, want) {
		t.Errorf("histogram = %v, want %v", s.Histogram, want)
	}
}

func TestComputeOrbitStats_Empty(t *testing.T) {
	t.Parallel()
	s := ComputeOrbitStats(3, nil)
	if s.Orbits != 0 || s.Largest != 0 || s.Smallest != 0 || len(s.Histogram) != 0 || s.Complete() {
		t.Errorf("empty stats = %+v", s)
	}
}
