package wheel

import (
	"testing"
)

func TestOrbitOf_SmallCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		action   Action
		start    string
		wantSize int
	}{
		{"N=1 zero and one swap", TwistedRotation{}, "0", 2},
		{"N=1 from one", TwistedRotation{}, "1", 2},
		{"all false spans full period", TwistedRotation{}, "0000000", 14},
		{"all true shares the all-false orbit", TwistedRotation{}, "1111111", 14},
		{"alternating pattern is a 2-cycle", TwistedRotation{}, "0101010", 2},
		{"N=3 alternating", TwistedRotation{}, "010", 2},
		{"cyclic fixed point", CyclicRotation{}, "0000000", 1},
		{"cyclic full necklace", CyclicRotation{}, "0000001", 7},
		{"cyclic period divides", CyclicRotation{}, "010101", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := Parse(tt.start)
			o := OrbitOf(tt.action, c)
			if o.Len() != tt.wantSize {
				t.Errorf("OrbitOf(%s).Len() = %d, want %d (members %v)", tt.start, o.Len(), tt.wantSize, o.Members())
			}
			if !o.Contains(c) {
				t.Errorf("orbit of %s does not contain its generator", tt.start)
			}
			if !o.Members()[0].Equal(c) {
				t.Errorf("first member = %s, want generator %s", o.Members()[0], c)
			}
		})
	}
}

func TestOrbitOf_AllFalseContainsAllTrue(t *testing.T) {
	t.Parallel()
	zero, _ := Parse("0000000")
	ones, _ := Parse("1111111")
	o := OrbitOf(TwistedRotation{}, zero)
	if !o.Contains(ones) {
		t.Errorf("orbit of %s should contain %s", zero, ones)
	}
	if !o.Equal(OrbitOf(TwistedRotation{}, ones)) {
		t.Error("all-false and all-true should generate the same orbit")
	}
}

// TestOrbit_Closure checks that applying the action to any member yields a member.
func TestOrbit_Closure(t *testing.T) {
	t.Parallel()
	for _, a := range []Action{TwistedRotation{}, CyclicRotation{}} {
		for width := 1; width <= 8; width++ {
			for v := uint64(0); v < 1<<width; v++ {
				o := OrbitOf(a, MustFromUint(width, v))
				for _, m := range o.Members() {
					if !o.Contains(a.Apply(m)) {
						t.Fatalf("%s width %d: orbit of %d not closed at %s", a.Name(), width, v, m)
					}
				}
				if a.Period(width)%o.Len() != 0 {
					t.Fatalf("%s width %d: orbit size %d does not divide period %d", a.Name(), width, o.Len(), a.Period(width))
				}
			}
		}
	}
}

func TestOrbit_EqualIsSetEquality(t *testing.T) {
	t.Parallel()
	a, _ := Parse("0010010")
	b := ApplyN(TwistedRotation{}, a, 5)
	other, _ := Parse("0101010")

	oa := OrbitOf(TwistedRotation{}, a)
	ob := OrbitOf(TwistedRotation{}, b)
	oc := OrbitOf(TwistedRotation{}, other)

	if oa.Members()[0].Equal(ob.Members()[0]) {
		t.Fatal("test setup: generators should differ")
	}
	if !oa.Equal(ob) || !ob.Equal(oa) {
		t.Error("orbits generated from different members should be equal")
	}
	if oa.Equal(oc) {
		t.Error("distinct orbits should not be equal")
	}
	if oa.Key() != ob.Key() {
		t.Errorf("equal orbits have different keys: %s vs %s", oa.Key(), ob.Key())
	}
}

func TestOrbit_Key(t *testing.T) {
	t.Parallel()
	c, _ := Parse("1101100")
	o := OrbitOf(TwistedRotation{}, c)
	key := o.Key()
	for _, m := range o.Members() {
		if m.Uint64() < key.Uint64() {
			t.Errorf("member %s is smaller than key %s", m, key)
		}
	}
	if (Orbit{}).Key() != (Config{}) {
		t.Error("empty orbit should have the zero key")
	}
}

func TestOrbit_MembersIsCopy(t *testing.T) {
	t.Parallel()
	c, _ := Parse("0011")
	o := OrbitOf(TwistedRotation{}, c)
	members := o.Members()
	members[0] = MustFromUint(4, 15)
	if !o.Members()[0].Equal(c) {
		t.Error("Members() exposed internal state")
	}
}
