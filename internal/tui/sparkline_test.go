package tui

import (
	"testing"
)

func TestRingBuffer_PushAndSlice(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)

	got := rb.Slice()
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer(3)
	for _, v := range []float64{1, 2, 3, 4} {
		rb.Push(v)
	}

	got := rb.Slice()
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
	if rb.Len() != 3 {
		t.Errorf("Len() = %d, want 3", rb.Len())
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	rb := NewRingBuffer(0)
	rb.Push(5)
	rb.Reset()
	if rb.Len() != 0 || rb.Slice() != nil {
		t.Errorf("buffer not empty after Reset: %v", rb.Slice())
	}
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"extremes", []float64{0, 100}, "▁█"},
		{"clamped", []float64{-10, 250}, "▁█"},
		{"midpoint", []float64{50}, "▄"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestSizeProfile(t *testing.T) {
	got := SizeProfile([]int{14, 7, 2})
	if got[0] != 100 || got[1] != 50 {
		t.Errorf("SizeProfile = %v, want [100 50 ...]", got)
	}
	for _, v := range SizeProfile([]int{0, 0}) {
		if v != 0 {
			t.Errorf("SizeProfile of zeros = %v", v)
		}
	}
}
