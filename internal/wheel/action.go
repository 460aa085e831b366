package wheel

import (
	"fmt"
	"sort"
)

// Action is a symmetry generator acting on configurations of a fixed width.
// Implementations must be pure and deterministic.
type Action interface {
	// Name returns the registry name of the action.
	Name() string
	// Apply returns the image of c under one application of the action.
	Apply(c Config) Config
	// Period returns a number of applications after which every
	// configuration of the given width is guaranteed to return to itself.
	Period(width int) int
}

// TwistedRotation drops slot 0, shifts the remaining slots down by one and
// stores the complement of the dropped bit in the last slot:
//
//	(b0, b1, …, bN-1) -> (b1, …, bN-1, ¬b0)
//
// Every bit is shifted out twice per full turn, once plain and once
// complemented, so the period is 2N.
type TwistedRotation struct{}

// Name implements Action.
func (TwistedRotation) Name() string { return "twisted" }

// Apply implements Action.
func (TwistedRotation) Apply(c Config) Config {
	if c.width == 0 {
		return c
	}
	return c.shifted(^c.leading())
}

// Period implements Action.
func (TwistedRotation) Period(width int) int { return 2 * width }

// CyclicRotation is the plain necklace rotation
//
//	(b0, b1, …, bN-1) -> (b1, …, bN-1, b0)
//
// with period N.
type CyclicRotation struct{}

// Name implements Action.
func (CyclicRotation) Name() string { return "cyclic" }

// Apply implements Action.
func (CyclicRotation) Apply(c Config) Config {
	if c.width == 0 {
		return c
	}
	return c.shifted(c.leading())
}

// Period implements Action.
func (CyclicRotation) Period(width int) int { return width }

// ApplyN applies a to c k times. Negative k is treated as zero.
func ApplyN(a Action, c Config, k int) Config {
	for i := 0; i < k; i++ {
		c = a.Apply(c)
	}
	return c
}

var actions = map[string]Action{
	TwistedRotation{}.Name(): TwistedRotation{},
	CyclicRotation{}.Name():  CyclicRotation{},
}

// ActionByName resolves a registered action name.
func ActionByName(name string) (Action, error) {
	if a, ok := actions[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownAction, name, ActionNames())
}

// ActionNames returns the registered action names in sorted order.
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
