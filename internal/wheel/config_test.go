package wheel

import (
	"errors"
	"reflect"
	"testing"
)

func TestFromUint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		width int
		v     uint64
		want  string
	}{
		{"single zero", 1, 0, "0"},
		{"single one", 1, 1, "1"},
		{"msb first", 7, 0b1000000, "1000000"},
		{"lsb is last slot", 7, 1, "0000001"},
		{"high bits ignored", 3, 0b11010, "010"},
		{"all ones", 7, 127, "1111111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := FromUint(tt.width, tt.v)
			if err != nil {
				t.Fatalf("FromUint(%d, %d) error: %v", tt.width, tt.v, err)
			}
			if got := c.String(); got != tt.want {
				t.Errorf("FromUint(%d, %d) = %s, want %s", tt.width, tt.v, got, tt.want)
			}
			if c.Len() != tt.width {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.width)
			}
		})
	}
}

func TestFromUint_InvalidWidth(t *testing.T) {
	t.Parallel()
	for _, width := range []int{-1, 0, MaxWidth + 1} {
		if _, err := FromUint(width, 0); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("FromUint(%d, 0) error = %v, want ErrInvalidWidth", width, err)
		}
	}
}

func TestMustFromUint_Panics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustFromUint(0, 0) did not panic")
		}
	}()
	MustFromUint(0, 0)
}

func TestFromBools(t *testing.T) {
	t.Parallel()

	t.Run("matches integer encoding", func(t *testing.T) {
		t.Parallel()
		c, err := FromBools(4, []bool{true, false, true, true})
		if err != nil {
			t.Fatalf("FromBools error: %v", err)
		}
		if c.Uint64() != 0b1011 {
			t.Errorf("Uint64() = %b, want 1011", c.Uint64())
		}
		if !c.Equal(MustFromUint(4, 0b1011)) {
			t.Error("FromBools and FromUint disagree")
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := FromBools(7, []bool{true, false})
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("error = %v, want ErrInvalidLength", err)
		}
	})

	t.Run("invalid width", func(t *testing.T) {
		t.Parallel()
		_, err := FromBools(0, nil)
		if !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("error = %v, want ErrInvalidWidth", err)
		}
	})
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    uint64
		wantErr error
	}{
		{"0", 0, nil},
		{"1", 1, nil},
		{"0010010", 0b0010010, nil},
		{"", 0, ErrInvalidLength},
		{"0120", 0, ErrInvalidBit},
		{"01 1", 0, ErrInvalidBit},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			c, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if c.Uint64() != tt.want || c.Len() != len(tt.input) {
				t.Errorf("Parse(%q) = %s (width %d)", tt.input, c, c.Len())
			}
			if c.String() != tt.input {
				t.Errorf("String() = %q, want %q", c.String(), tt.input)
			}
		})
	}
}

func TestConfig_BitAndBools(t *testing.T) {
	t.Parallel()
	c, _ := Parse("1101000")
	want := []bool{true, true, false, true, false, false, false}
	if got := c.Bools(); !reflect.DeepEqual(got, want) {
		t.Errorf("Bools() = %v, want %v", got, want)
	}
	for i, b := range want {
		if c.Bit(i) != b {
			t.Errorf("Bit(%d) = %v, want %v", i, c.Bit(i), b)
		}
	}

	// Mutating the returned slice must not affect the configuration.
	bools := c.Bools()
	bools[0] = false
	if !c.Bit(0) {
		t.Error("Bools() exposed internal state")
	}
}

func TestConfig_BitOutOfRange(t *testing.T) {
	t.Parallel()
	c := MustFromUint(3, 0)
	for _, i := range []int{-1, 3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Bit(%d) did not panic", i)
				}
			}()
			c.Bit(i)
		}()
	}
}

func TestConfig_Equal(t *testing.T) {
	t.Parallel()
	a := MustFromUint(7, 5)
	b := MustFromUint(7, 5)
	c := MustFromUint(7, 6)
	d := MustFromUint(8, 5)

	if !a.Equal(b) {
		t.Error("identical configurations should be equal")
	}
	if a.Equal(c) {
		t.Error("configurations with different bits should differ")
	}
	if a.Equal(d) {
		t.Error("configurations with different widths should differ")
	}

	set := map[Config]int{a: 1}
	if set[b] != 1 {
		t.Error("equal configurations should hash to the same map key")
	}
}

func TestConfig_Spokes(t *testing.T) {
	t.Parallel()
	c, _ := Parse("0100001")
	want := []int{0, 8, 2, 3, 4, 5, 13}
	if got := c.Spokes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Spokes() = %v, want %v", got, want)
	}
}

// TestFromUint_Bijection checks that index -> configuration -> index is the
// identity over the whole universe.
func TestFromUint_Bijection(t *testing.T) {
	t.Parallel()
	for width := 1; width <= 10; width++ {
		seen := make(map[Config]bool, 1<<width)
		for v := uint64(0); v < 1<<width; v++ {
			c := MustFromUint(width, v)
			if c.Uint64() != v {
				t.Fatalf("width %d: Uint64(FromUint(%d)) = %d", width, v, c.Uint64())
			}
			if seen[c] {
				t.Fatalf("width %d: configuration %s produced twice", width, c)
			}
			seen[c] = true
		}
	}
}

func FuzzParse(f *testing.F) {
	f.Add("0")
	f.Add("1010101")
	f.Add("")
	f.Add("10x1")

	f.Fuzz(func(t *testing.T, s string) {
		c, err := Parse(s)
		if err != nil {
			return
		}
		if c.String() != s {
			t.Errorf("Parse(%q).String() = %q", s, c.String())
		}
		again, err := FromUint(c.Len(), c.Uint64())
		if err != nil || !again.Equal(c) {
			t.Errorf("FromUint round trip failed for %q: %v", s, err)
		}
	})
}
