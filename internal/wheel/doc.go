// Package wheel models the binary configurations of an N-slot wheel and the
// symmetry actions that rotate them.
//
// A configuration assigns one bit to each slot. Slot k selects one of the two
// antipodal spokes k and k+N on a wheel with 2N angular positions. Rotating the
// wheel by one spoke moves every slot down by one index; the slot that wraps
// across the seam lands on the opposite half of the wheel, so its bit is
// complemented. That operation is the TwistedRotation, whose period is 2N.
//
// Bit order: a configuration built from an integer v takes position 0 from the
// most significant of the N low bits of v. Uint64 is the inverse mapping.
package wheel
