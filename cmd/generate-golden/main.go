// Command generate-golden writes internal/orbit/testdata/golden.json from an
// oracle that shares no code with the classifier: configurations are plain
// bool slices and orbits are found by brute-force closure.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// action maps a configuration to its image.
type action func([]bool) []bool

// twisted is (b0..bN-1) -> (b1..bN-1, not b0).
func twisted(b []bool) []bool {
	out := make([]bool, 0, len(b))
	out = append(out, b[1:]...)
	return append(out, !b[0])
}

// cyclic is (b0..bN-1) -> (b1..bN-1, b0).
func cyclic(b []bool) []bool {
	out := make([]bool, 0, len(b))
	out = append(out, b[1:]...)
	return append(out, b[0])
}

// entry is one golden representative.
type entry struct {
	bits      string
	orbitSize int
}

// bitsOf renders v as an n-character string, most significant bit first.
func bitsOf(n int, v uint64) []bool {
	b := make([]bool, n)
	for i := range n {
		b[i] = v&(1<<uint(n-1-i)) != 0
	}
	return b
}

func render(b []bool) string {
	var sb strings.Builder
	for _, bit := range b {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// classify enumerates 0..2^n-1 in order and returns the first unseen member
// of every orbit together with the orbit size.
func classify(n int, a action) []entry {
	seen := make(map[string]bool)
	var out []entry
	for v := uint64(0); v < 1<<uint(n); v++ {
		start := bitsOf(n, v)
		key := render(start)
		if seen[key] {
			continue
		}
		size := 0
		for c := start; ; {
			s := render(c)
			if seen[s] {
				break
			}
			seen[s] = true
			size++
			c = a(c)
		}
		out = append(out, entry{bits: key, orbitSize: size})
	}
	return out
}

// writeGolden emits the golden file, one representative per line.
func writeGolden(w io.Writer, maxN int) error {
	bw := bufio.NewWriter(w)
	actions := []struct {
		name string
		fn   action
	}{
		{"twisted", twisted},
		{"cyclic", cyclic},
	}

	fmt.Fprintln(bw, "{")
	for ai, a := range actions {
		fmt.Fprintf(bw, "  %q: {\n", a.name)
		for n := 1; n <= maxN; n++ {
			fmt.Fprintf(bw, "    \"%d\": [\n", n)
			entries := classify(n, a.fn)
			for i, e := range entries {
				sep := ","
				if i == len(entries)-1 {
					sep = ""
				}
				fmt.Fprintf(bw, "      {\"bits\": %q, \"orbit_size\": %d}%s\n", e.bits, e.orbitSize, sep)
			}
			if n == maxN {
				fmt.Fprintln(bw, "    ]")
			} else {
				fmt.Fprintln(bw, "    ],")
			}
		}
		if ai == len(actions)-1 {
			fmt.Fprintln(bw, "  }")
		} else {
			fmt.Fprintln(bw, "  },")
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func main() {
	out := flag.String("o", "internal/orbit/testdata/golden.json", "Output path ('-' for stdout).")
	maxN := flag.Int("max-n", 10, "Largest universe size to record.")
	flag.Parse()

	w := io.Writer(os.Stdout)
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if err := writeGolden(w, *maxN); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
}
