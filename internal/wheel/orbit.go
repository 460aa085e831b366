package wheel

// Orbit is the set of configurations reachable from one another under an
// Action. Members are kept in generation order; membership and equality are
// set-based.
//
// Orbit sizes are bounded by the action period (at most 2*MaxWidth), so
// membership is a linear scan.
type Orbit struct {
	members []Config
}

// OrbitOf applies a to c Period(c.Len()) times and collects every distinct
// configuration visited, starting with c itself.
func OrbitOf(a Action, c Config) Orbit {
	period := a.Period(c.Len())
	o := Orbit{members: make([]Config, 0, period)}
	o.members = append(o.members, c)
	cur := c
	for i := 0; i < period; i++ {
		cur = a.Apply(cur)
		if !o.Contains(cur) {
			o.members = append(o.members, cur)
		}
	}
	return o
}

// Len returns the number of distinct members.
func (o Orbit) Len() int { return len(o.members) }

// Contains reports whether c is a member, using raw configuration equality.
func (o Orbit) Contains(c Config) bool {
	for _, m := range o.members {
		if m.Equal(c) {
			return true
		}
	}
	return false
}

// Members returns a copy of the members in generation order.
func (o Orbit) Members() []Config {
	out := make([]Config, len(o.members))
	copy(out, o.members)
	return out
}

// Equal reports orbit equality: both orbits have exactly the same member set,
// regardless of which member generated them or the order of generation.
func (o Orbit) Equal(other Orbit) bool {
	if len(o.members) != len(other.members) {
		return false
	}
	for _, m := range o.members {
		if !other.Contains(m) {
			return false
		}
	}
	return true
}

// Key returns the member with the smallest enumeration index. Equal orbits
// have equal keys, so Key can index orbits in a map.
func (o Orbit) Key() Config {
	if len(o.members) == 0 {
		return Config{}
	}
	minimum := o.members[0]
	for _, m := range o.members[1:] {
		if m.Uint64() < minimum.Uint64() {
			minimum = m
		}
	}
	return minimum
}
