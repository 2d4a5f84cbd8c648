// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package addrpool_test

import (
	"context"
	"fmt"

	"github.com/gaissmai/addrpool"
)

func ExampleCache() {
	cache := addrpool.NewCache()
	defer cache.Close()

	ctx := context.Background()

	// the same text always yields the same handle
	a, _ := cache.Resolve(ctx, addrpool.IP4, "192.0.2.1")
	b, _ := cache.Resolve(ctx, addrpool.IP4, "192.0.2.1")

	fmt.Println(a == b)
	fmt.Println(a.RefCount())

	b.Release()
	a.Release()

	// Output:
	// true
	// 2
}

func ExampleAddr_CommonPrefixLen() {
	cache := addrpool.NewCache()
	defer cache.Close()

	ctx := context.Background()

	a, _ := cache.Resolve(ctx, addrpool.IP4, "10.1.2.3")
	b, _ := cache.Resolve(ctx, addrpool.IP4, "10.1.2.4")

	n, _ := a.CommonPrefixLen(b)
	fmt.Println(n)

	network, _ := a.TruncateToNetwork(n)
	c, _ := cache.GetOrCreate(addrpool.IP4, network)
	fmt.Println(c)

	c.Release()
	b.Release()
	a.Release()

	// Output:
	// 29
	// 10.1.2.0
}

func ExampleAddr_IsPrivate() {
	a, _ := addrpool.Resolve(context.Background(), addrpool.IP4, "192.168.0.1")
	defer a.Release()

	fmt.Println(a.IsPrivate(), a.IsLinkLocal())

	// Output:
	// true false
}
