// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package addrpool

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
)

// ErrResolve is returned when a textual address cannot be turned into
// raw bytes of the hinted family.
var ErrResolve = errors.New("cannot resolve address")

// ErrParse is returned for a syntactically invalid link-layer address,
// no resolver is involved on that path.
var ErrParse = errors.New("cannot parse address")

// lookupNetIP is the single call into the platform resolver, a package
// variable so tests can run hermetically.
var lookupNetIP = net.DefaultResolver.LookupNetIP

// Resolve turns a textual address into an unshared [Addr] of the hinted
// IP family. Numeric addresses are parsed directly; anything else is
// handed to the platform resolver, taking the first result of the
// hinted family. This is the package's only blocking operation, the
// context covers the resolver call. Hints other than [IP4] and [IP6]
// fail, resolver failure is surfaced and not retried.
func Resolve(ctx context.Context, hint Family, text string) (*Addr, error) {
	raw, err := resolveRaw(ctx, hint, text)
	if err != nil {
		return nil, err
	}
	return New(hint, raw)
}

// resolveRaw produces raw bytes of the hinted family for text.
func resolveRaw(ctx context.Context, hint Family, text string) ([]byte, error) {
	if !hint.IsIP() {
		return nil, fmt.Errorf("resolve %q: hint %s: %w", text, hint, ErrFamily)
	}

	// numeric fast path, no resolver round trip
	if ip, err := netip.ParseAddr(text); err == nil {
		raw, ok := rawOfFamily(ip, hint)
		if !ok {
			return nil, fmt.Errorf("resolve %q: no %s address: %w", text, hint, ErrResolve)
		}
		return raw, nil
	}

	network := "ip4"
	if hint == IP6 {
		network = "ip6"
	}

	ips, err := lookupNetIP(ctx, network, text)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w: %w", text, ErrResolve, err)
	}

	// first result of the hinted family only
	for _, ip := range ips {
		if raw, ok := rawOfFamily(ip, hint); ok {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("resolve %q: no %s address: %w", text, hint, ErrResolve)
}

// rawOfFamily extracts the network-order bytes of ip if it belongs to
// the wanted family. Mapped IPv4-in-IPv6 results, as the resolver may
// return for the ip4 network, count as IPv4.
func rawOfFamily(ip netip.Addr, want Family) ([]byte, bool) {
	switch want {
	case IP4:
		if ip.Is4In6() {
			ip = ip.Unmap()
		}
		if ip.Is4() {
			b := ip.As4()
			return b[:], true
		}
	case IP6:
		if ip.Is6() && !ip.Is4In6() {
			b := ip.As16()
			return b[:], true
		}
	}
	return nil, false
}

// ParseLinkAddr parses a textual link-layer address into an unshared
// [Addr]: six-octet forms become [MAC48], eight-octet forms [EUI64].
// All textual forms accepted by net.ParseMAC work, other widths
// (20-octet InfiniBand) are rejected.
func ParseLinkAddr(text string) (*Addr, error) {
	hw, err := net.ParseMAC(text)
	if err != nil {
		return nil, fmt.Errorf("parse link address %q: %w", text, ErrParse)
	}

	switch len(hw) {
	case 6:
		return New(MAC48, hw)
	case 8:
		return New(EUI64, hw)
	}
	return nil, fmt.Errorf("parse link address %q: width %d: %w", text, len(hw), ErrWidth)
}
