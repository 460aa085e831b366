// Package orbit classifies every configuration of an N-slot wheel into orbits
// under a wheel.Action and returns one canonical representative per orbit.
//
// The representative of an orbit is the first configuration met while
// enumerating the integers 0 … 2^N−1 in ascending order, and representatives
// are returned in that discovery order. Three strategies produce the same
// output with different costs:
//
//   - naive: computes the orbit of every configuration and compares it by set
//     equality against every orbit recorded so far.
//   - memo: remembers the orbit of every classified configuration and skips
//     configurations that are already known.
//   - parallel: computes orbit keys concurrently and merges them back into
//     ascending enumeration order.
package orbit
