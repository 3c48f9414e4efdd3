// Command rqbench builds all three range-query trees over randomized
// data and logs construction and query timings, in the same
// log.Printf/time.Since style as bart's own cmd/main.go demo.
package main

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/gaissmai/rqtree"
)

func main() {
	log.SetFlags(log.Lmicroseconds)
	prng := rand.New(rand.NewPCG(42, 42))

	const n = 1_000_000
	values := make([]int, n)
	for i := range values {
		values[i] = prng.IntN(1000)
	}

	ts := time.Now()
	fw := rqtree.NewSumFenwickFrom(values)
	log.Printf("Fenwick build: %v, size=%d", time.Since(ts), fw.Size())

	ts = time.Now()
	var total int
	for i := 0; i < 10_000; i++ {
		a := prng.IntN(n)
		b := a + 1 + prng.IntN(n-a)
		total += fw.Range(a, b)
	}
	log.Printf("Fenwick 10k ranges: %v, checksum=%d", time.Since(ts), total)

	maxOp := func(a, b int) int {
		if a > b {
			return a
		}
		return b
	}

	ts = time.Now()
	seg := rqtree.NewSegmentFrom(values, maxOp, nil)
	log.Printf("Segment build: %v, size=%d", time.Since(ts), seg.Size())

	repeatMax := func(_ int, v int) int { return v }
	ts = time.Now()
	rs := rqtree.NewRangeSegment(n, 0, maxOp, repeatMax, nil)
	log.Printf("RangeSegment build: %v, size=%d", time.Since(ts), rs.Size())

	ts = time.Now()
	for i := 0; i < 1_000; i++ {
		a := prng.IntN(n)
		b := a + 1 + prng.IntN(n-a)
		rs.Update(a, b, prng.IntN(1000))
	}
	log.Printf("RangeSegment 1k range updates: %v", time.Since(ts))
}
