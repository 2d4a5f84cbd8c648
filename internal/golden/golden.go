// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden is a simple and slow reference for the bit algebra,
// built on net/netip and go4.org/netipx, used by the tests to
// cross-check the word-wise implementations.
package golden

import (
	"math/bits"
	"net/netip"

	"go4.org/netipx"
)

// rfc1918 is the private IPv4 range set.
var rfc1918 = func() *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, s := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
	} {
		b.AddPrefix(netip.MustParsePrefix(s))
	}

	s, err := b.IPSet()
	if err != nil {
		panic(err)
	}
	return s
}()

// InPrefix reports whether addr lies within prefix/pfxBits.
func InPrefix(addr, prefix netip.Addr, pfxBits int) bool {
	if pfxBits == 0 {
		return true
	}
	return netip.PrefixFrom(prefix, pfxBits).Masked().Contains(addr)
}

// CommonPrefixLen counts the shared leading bits byte by byte, a
// deliberately different formulation than the mask-table scan.
func CommonPrefixLen(a, b netip.Addr) int {
	as := a.AsSlice()
	bs := b.AsSlice()

	n := 0
	for i := range as {
		x := as[i] ^ bs[i]
		if x == 0 {
			n += 8
			continue
		}
		n += bits.LeadingZeros8(x)
		break
	}
	return n
}

// TruncateToNetwork masks addr down to its network address under pfxBits.
func TruncateToNetwork(addr netip.Addr, pfxBits int) netip.Addr {
	return netip.PrefixFrom(addr, pfxBits).Masked().Addr()
}

// LinkLocal reports whether addr is a link-local unicast address.
func LinkLocal(addr netip.Addr) bool {
	return addr.IsLinkLocalUnicast()
}

// Private reports whether addr lies in one of the RFC1918 blocks.
func Private(addr netip.Addr) bool {
	return rfc1918.Contains(addr)
}
