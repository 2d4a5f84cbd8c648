// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package random provides seeded random address material for tests.
package random

import (
	"math/rand/v2"
	"net/netip"
)

// Bytes returns n random bytes.
func Bytes(prng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(prng.UintN(256))
	}
	return b
}

// IP4 returns 4 random raw IPv4 bytes.
func IP4(prng *rand.Rand) []byte {
	return Bytes(prng, 4)
}

// IP6 returns 16 random raw IPv6 bytes.
func IP6(prng *rand.Rand) []byte {
	return Bytes(prng, 16)
}

// MAC returns 6 random raw MAC-48 bytes.
func MAC(prng *rand.Rand) []byte {
	return Bytes(prng, 6)
}

// EUI64 returns 8 random raw EUI-64 bytes.
func EUI64(prng *rand.Rand) []byte {
	return Bytes(prng, 8)
}

// Addr4 returns a random netip IPv4 address.
func Addr4(prng *rand.Rand) netip.Addr {
	return netip.AddrFrom4([4]byte(IP4(prng)))
}

// Addr6 returns a random netip IPv6 address.
func Addr6(prng *rand.Rand) netip.Addr {
	return netip.AddrFrom16([16]byte(IP6(prng)))
}
