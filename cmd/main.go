// playground for profiling the interning cache with a skewed workload,
// roughly the address reuse a measurement run produces.
package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/gaissmai/addrpool"
)

var prng = rand.New(rand.NewPCG(42, 42))

func main() {
	cache := addrpool.NewCache()
	defer cache.Close()

	held := []*addrpool.Addr{}

	const lookups = 1_000_000
	for range lookups {
		a, err := cache.GetOrCreate(addrpool.IP4, skewedIP4())
		if err != nil {
			panic(err)
		}
		held = append(held, a)
	}

	fmt.Printf("lookups: %d, resident: %d, dedup ratio: %.1f\n",
		lookups, cache.Size(addrpool.IP4),
		float64(lookups)/float64(cache.Size(addrpool.IP4)))

	var private, linkLocal int
	cache.All(addrpool.IP4, func(a *addrpool.Addr) bool {
		if a.IsPrivate() {
			private++
		}
		if a.IsLinkLocal() {
			linkLocal++
		}
		return true
	})
	fmt.Printf("resident private: %d, link-local: %d\n", private, linkLocal)

	for _, a := range held {
		a.Release()
	}
	fmt.Printf("resident after release: %d\n", cache.Size(addrpool.IP4))
}

// skewedIP4 draws from a small /16 so most lookups hit the cache.
func skewedIP4() []byte {
	return []byte{10, 0, byte(prng.UintN(256)), byte(prng.UintN(256))}
}
