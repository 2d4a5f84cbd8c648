// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package addrpool

import (
	"bytes"
	"cmp"
)

// Addr is a canonical, reference-counted address value: a family tag
// plus an owned raw buffer of exactly the family's width, holding the
// address in network byte order.
//
// An Addr is a shared-ownership handle. Every holder that wants to keep
// it calls [Addr.Use]; every holder drops it with exactly one
// [Addr.Release]. When the last holder releases, the value is dead and
// must not be touched again. Values obtained from a [Cache] additionally
// carry a non-owning back-reference to that cache, so the cache's pool
// entry disappears together with the value.
type Addr struct {
	raw    []byte
	owner  *Cache // non-owning, nil for unshared values and after cache teardown
	refcnt int
	family Family
}

// New allocates an unshared address value with a refcount of one. The
// raw bytes are copied, the caller's buffer is not retained. New fails
// on an invalid family or a buffer that does not match the family's
// width.
func New(family Family, raw []byte) (*Addr, error) {
	if !family.IsValid() {
		return nil, ErrFamily
	}
	if len(raw) != family.Width() {
		return nil, ErrWidth
	}

	return &Addr{
		family: family,
		raw:    bytes.Clone(raw),
		refcnt: 1,
	}, nil
}

// Family returns the address family tag.
func (a *Addr) Family() Family { return a.family }

// Bytes returns a copy of the raw address bytes in network byte order.
func (a *Addr) Bytes() []byte { return bytes.Clone(a.raw) }

// RefCount returns the current number of holders. Useful for tests and
// leak diagnostics, not for control flow.
func (a *Addr) RefCount() int { return a.refcnt }

// Use records another holder of a and returns a for chaining. No
// allocation takes place, duplication of a handle is O(1).
func (a *Addr) Use() *Addr {
	if a != nil {
		a.refcnt++
	}
	return a
}

// Release drops one holder of a. When the last holder releases, the
// value is removed from its owning cache's pool (if still owned) and
// becomes dead. Releasing an already dead value is an invariant
// violation and panics.
func (a *Addr) Release() {
	if a == nil {
		return
	}
	if a.refcnt <= 0 {
		panic("logic error, Release of a dead Addr")
	}

	if a.refcnt--; a.refcnt > 0 {
		return
	}

	if a.owner != nil {
		a.owner.remove(a)
		a.owner = nil
	}

	// poison the handle so a stale use fails loudly
	a.raw = nil
}

// String returns the canonical textual form: dotted-decimal for IPv4,
// colon-hex per RFC 5952 for IPv6, colon-separated hex octets for
// MAC-48 and EUI-64.
func (a *Addr) String() string {
	return a.family.ops().text(a.raw)
}

// Compare orders a and b totally across families: by family ordinal
// first, by the family's raw byte order if the families match.
// Identical handles compare equal without inspecting bytes.
func (a *Addr) Compare(b *Addr) int {
	if a == b {
		return 0
	}
	if a.family != b.family {
		return cmp.Compare(a.family, b.family)
	}
	return a.family.ops().rawCmp(a.raw, b.raw)
}

// HumanCompare is Compare with the family's display ordering, matching
// the address's natural numeric magnitude.
func (a *Addr) HumanCompare(b *Addr) int {
	if a == b {
		return 0
	}
	if a.family != b.family {
		return cmp.Compare(a.family, b.family)
	}
	return a.family.ops().humanCmp(a.raw, b.raw)
}

// RawCompare compares a's bytes against an external raw buffer of the
// same family's width, without constructing a handle for it.
func (a *Addr) RawCompare(raw []byte) (int, error) {
	if len(raw) != a.family.Width() {
		return 0, ErrWidth
	}
	return a.family.ops().rawCmp(a.raw, raw), nil
}

// InPrefix reports whether a lies within prefix/bits. prefix is a raw
// buffer of a's width. A bits of zero matches every address; bits
// beyond the family's bit width is an error. Families without prefix
// semantics return [ErrUnsupported].
func (a *Addr) InPrefix(prefix []byte, bits int) (bool, error) {
	if len(prefix) != len(a.raw) {
		return false, ErrWidth
	}
	return a.family.ops().inPrefix(a.raw, prefix, bits)
}

// CommonPrefixLen returns the number of leading bits a and b share.
// Both values must be of the same IP family.
func (a *Addr) CommonPrefixLen(b *Addr) (int, error) {
	if a.family != b.family {
		return 0, ErrFamily
	}
	return a.family.ops().commonPrefixLen(a.raw, b.raw)
}

// CommonPrefixLenHostAware is CommonPrefixLen with the host-degenerate
// contraction used by alias resolution: a candidate length whose host
// portion on either side is the subnet's network or broadcast address
// is stepped down until neither side is degenerate. IPv4 only.
func (a *Addr) CommonPrefixLenHostAware(b *Addr) (int, error) {
	if a.family != b.family {
		return 0, ErrFamily
	}
	return a.family.ops().commonPrefixLenHostAware(a.raw, b.raw)
}

// TruncateToNetwork returns a's bytes with all but the high bits
// cleared. bits must be in 1 up to the family's bit width.
func (a *Addr) TruncateToNetwork(bits int) ([]byte, error) {
	return a.family.ops().truncateToNetwork(a.raw, bits)
}

// IsLinkLocal reports whether a is a link-local address (169.254.0.0/16
// for IPv4, fe80::/10 for IPv6). Always false for the link-layer
// families.
func (a *Addr) IsLinkLocal() bool {
	return a.family.ops().linkLocal(a.raw)
}

// IsPrivate reports whether a lies in one of the RFC1918 blocks.
// Always false for families other than IPv4.
func (a *Addr) IsPrivate() bool {
	return a.family.ops().isPrivate(a.raw)
}
