package wheel

import (
	"fmt"
	"strings"
)

// MaxWidth is the largest number of slots a Config can hold.
const MaxWidth = 63

// Config is an immutable N-bit wheel configuration.
//
// Config is comparable: two values are == exactly when they have the same
// width and the same bits, so a Config can be used directly as a map key.
type Config struct {
	bits  uint64
	width uint8
}

// FromUint builds the configuration of the given width whose bits are the
// width low bits of v, most significant first. Higher bits of v are ignored.
func FromUint(width int, v uint64) (Config, error) {
	if width < 1 || width > MaxWidth {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return Config{bits: v & mask(width), width: uint8(width)}, nil
}

// MustFromUint is like FromUint but panics on an invalid width.
// It is intended for loops whose width was validated up front.
func MustFromUint(width int, v uint64) Config {
	c, err := FromUint(width, v)
	if err != nil {
		panic(err)
	}
	return c
}

// FromBools builds a configuration from an explicit ordered bit sequence.
// It fails with ErrInvalidLength when len(bits) != width.
func FromBools(width int, bits []bool) (Config, error) {
	if width < 1 || width > MaxWidth {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if len(bits) != width {
		return Config{}, fmt.Errorf("%w: got %d bits, want %d", ErrInvalidLength, len(bits), width)
	}
	var v uint64
	for _, b := range bits {
		v <<= 1
		if b {
			v |= 1
		}
	}
	return Config{bits: v, width: uint8(width)}, nil
}

// Parse builds a configuration from a string such as "0010110".
// The width is the length of the string.
func Parse(s string) (Config, error) {
	if len(s) == 0 || len(s) > MaxWidth {
		return Config{}, fmt.Errorf("%w: %q has %d bits, want 1..%d", ErrInvalidLength, s, len(s), MaxWidth)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		v <<= 1
		switch s[i] {
		case '0':
		case '1':
			v |= 1
		default:
			return Config{}, fmt.Errorf("%w: %q at position %d", ErrInvalidBit, s[i], i)
		}
	}
	return Config{bits: v, width: uint8(len(s))}, nil
}

// Len returns the number of slots.
func (c Config) Len() int { return int(c.width) }

// Bit reports the value of slot i. It panics if i is out of range.
func (c Config) Bit(i int) bool {
	if i < 0 || i >= int(c.width) {
		panic(fmt.Sprintf("wheel: bit index %d out of range [0,%d)", i, c.width))
	}
	return c.bits>>(uint(c.width)-1-uint(i))&1 == 1
}

// Bools returns a fresh copy of the bits in slot order.
func (c Config) Bools() []bool {
	out := make([]bool, c.width)
	for i := range out {
		out[i] = c.Bit(i)
	}
	return out
}

// Uint64 returns the enumeration index of the configuration.
// FromUint(c.Len(), c.Uint64()) == c for every valid c.
func (c Config) Uint64() uint64 { return c.bits }

// Equal reports bit-for-bit equality. Configurations of different widths
// are never equal.
func (c Config) Equal(other Config) bool { return c == other }

// Spokes returns, for every slot k, the angular index out of 2N that the slot
// selects: k when the bit is clear, k+N when it is set.
func (c Config) Spokes() []int {
	n := int(c.width)
	out := make([]int, n)
	for k := 0; k < n; k++ {
		out[k] = k
		if c.Bit(k) {
			out[k] += n
		}
	}
	return out
}

// String renders the configuration as a string of '0' and '1' in slot order.
func (c Config) String() string {
	var sb strings.Builder
	sb.Grow(int(c.width))
	for i := 0; i < int(c.width); i++ {
		if c.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// leading returns the bit in slot 0 as 0 or 1.
func (c Config) leading() uint64 {
	return c.bits >> (uint(c.width) - 1) & 1
}

// shifted drops slot 0, moves every slot down by one and stores tail in the
// vacated last slot.
func (c Config) shifted(tail uint64) Config {
	return Config{
		bits:  (c.bits<<1)&mask(int(c.width)) | tail&1,
		width: c.width,
	}
}

func mask(width int) uint64 {
	return (uint64(1) << uint(width)) - 1
}
