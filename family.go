// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package addrpool

import (
	"bytes"
	"encoding/binary"
	"errors"
	"net"
	"net/netip"

	"github.com/gaissmai/addrpool/internal/bitalg"
)

// Family identifies one of the four supported address families. The
// zero value is invalid. Family ordinals define the cross-family
// ordering used by [Addr.Compare].
type Family uint8

const (
	IP4   Family = iota + 1 // IPv4, 4 bytes
	IP6                     // IPv6, 16 bytes
	MAC48                   // Ethernet MAC-48, 6 bytes
	EUI64                   // FireWire link-layer EUI-64, 8 bytes
)

const numFamilies = 4

var (
	// ErrFamily is returned for an invalid family or a family mismatch
	// between operands of a prefix operation.
	ErrFamily = errors.New("invalid or mismatched address family")

	// ErrWidth is returned for a raw buffer whose length does not match
	// its family's fixed width.
	ErrWidth = bitalg.ErrWidth

	// ErrBits is returned for a prefix length outside the family's bit width.
	ErrBits = bitalg.ErrBits

	// ErrUnsupported is returned for prefix and classification operations
	// on families without prefix semantics.
	ErrUnsupported = errors.New("operation not supported for address family")
)

// IsValid reports whether f is one of the defined families.
func (f Family) IsValid() bool {
	return f >= IP4 && f <= EUI64
}

// IsIP reports whether f is one of the IP families.
func (f Family) IsIP() bool {
	return f == IP4 || f == IP6
}

// Width returns the fixed byte width of the family, or 0 for an
// invalid family.
func (f Family) Width() int {
	if !f.IsValid() {
		return 0
	}
	return familyTable[f-1].width()
}

// String implements fmt.Stringer.
func (f Family) String() string {
	switch f {
	case IP4:
		return "ip4"
	case IP6:
		return "ip6"
	case MAC48:
		return "mac48"
	case EUI64:
		return "eui64"
	}
	return "invalid"
}

// familyOps binds one family's fixed width and algorithms. Exactly one
// implementation exists per family; ops a family lacks return
// ErrUnsupported instead of being nil entries.
type familyOps interface {
	width() int

	// rawCmp orders exact bytes, it backs cache indexing and need not
	// be numerically meaningful. humanCmp orders by natural numeric
	// magnitude for display.
	rawCmp(a, b []byte) int
	humanCmp(a, b []byte) int

	text(raw []byte) string

	inPrefix(raw, prefix []byte, bits int) (bool, error)
	commonPrefixLen(a, b []byte) (int, error)
	commonPrefixLenHostAware(a, b []byte) (int, error)
	truncateToNetwork(raw []byte, bits int) ([]byte, error)

	linkLocal(raw []byte) bool
	isPrivate(raw []byte) bool
}

// familyTable is the closed registry, indexed by Family ordinal - 1.
var familyTable = [numFamilies]familyOps{
	v4Ops{},
	v6Ops{},
	macOps{linkOps: linkOps{size: 6}},
	eui64Ops{linkOps: linkOps{size: 8}},
}

// ops returns the registry entry for f, it panics on an invalid family
// tag since that only ever means a corrupted Addr.
func (f Family) ops() familyOps {
	if !f.IsValid() {
		panic("logic error, invalid address family tag")
	}
	return familyTable[f-1]
}

// noPrefixOps provides the explicit unsupported case for families
// without prefix semantics.
type noPrefixOps struct{}

func (noPrefixOps) inPrefix([]byte, []byte, int) (bool, error) {
	return false, ErrUnsupported
}

func (noPrefixOps) commonPrefixLen([]byte, []byte) (int, error) {
	return 0, ErrUnsupported
}

func (noPrefixOps) commonPrefixLenHostAware([]byte, []byte) (int, error) {
	return 0, ErrUnsupported
}

func (noPrefixOps) truncateToNetwork([]byte, int) ([]byte, error) {
	return nil, ErrUnsupported
}

func (noPrefixOps) linkLocal([]byte) bool { return false }
func (noPrefixOps) isPrivate([]byte) bool { return false }

// ### IPv4 ###

type v4Ops struct{}

func (v4Ops) width() int { return 4 }

func (v4Ops) rawCmp(a, b []byte) int { return bytes.Compare(a, b) }

// humanCmp compares the addresses as 32-bit values. The raw buffer is
// big-endian, so this coincides with rawCmp for IPv4; both exist so the
// two orderings stay independently specified.
func (v4Ops) humanCmp(a, b []byte) int {
	ua := binary.BigEndian.Uint32(a)
	ub := binary.BigEndian.Uint32(b)
	switch {
	case ua < ub:
		return -1
	case ua > ub:
		return 1
	}
	return 0
}

func (v4Ops) text(raw []byte) string {
	return netip.AddrFrom4([4]byte(raw)).String()
}

func (v4Ops) inPrefix(raw, prefix []byte, bits int) (bool, error) {
	return bitalg.InPrefix(raw, prefix, bits)
}

func (v4Ops) commonPrefixLen(a, b []byte) (int, error) {
	return bitalg.CommonPrefixLen(a, b)
}

func (v4Ops) commonPrefixLenHostAware(a, b []byte) (int, error) {
	return bitalg.CommonPrefixLenHostAware(a, b)
}

func (v4Ops) truncateToNetwork(raw []byte, bits int) ([]byte, error) {
	return bitalg.TruncateToNetwork(raw, bits)
}

func (v4Ops) linkLocal(raw []byte) bool { return bitalg.LinkLocal4(raw) }
func (v4Ops) isPrivate(raw []byte) bool { return bitalg.Private4(raw) }

// ### IPv6 ###

type v6Ops struct{}

func (v6Ops) width() int { return 16 }

func (v6Ops) rawCmp(a, b []byte) int { return bytes.Compare(a, b) }

// humanCmp compares four 32-bit groups in sequence, most significant
// group first.
func (v6Ops) humanCmp(a, b []byte) int {
	for g := 0; g < 16; g += 4 {
		ua := binary.BigEndian.Uint32(a[g:])
		ub := binary.BigEndian.Uint32(b[g:])
		switch {
		case ua < ub:
			return -1
		case ua > ub:
			return 1
		}
	}
	return 0
}

func (v6Ops) text(raw []byte) string {
	return netip.AddrFrom16([16]byte(raw)).String()
}

func (v6Ops) inPrefix(raw, prefix []byte, bits int) (bool, error) {
	return bitalg.InPrefix(raw, prefix, bits)
}

func (v6Ops) commonPrefixLen(a, b []byte) (int, error) {
	return bitalg.CommonPrefixLen(a, b)
}

// commonPrefixLenHostAware has no IPv6 variant, the host-degenerate
// contraction is an IPv4 alias-resolution heuristic.
func (v6Ops) commonPrefixLenHostAware(a, b []byte) (int, error) {
	return 0, ErrUnsupported
}

func (v6Ops) truncateToNetwork(raw []byte, bits int) ([]byte, error) {
	return bitalg.TruncateToNetwork(raw, bits)
}

func (v6Ops) linkLocal(raw []byte) bool { return bitalg.LinkLocal6(raw) }
func (v6Ops) isPrivate(raw []byte) bool { return false }

// ### MAC-48 and EUI-64 ###

// linkOps is the shared implementation for the link-layer families:
// exact byte-wise comparison, colon-separated hex octets, no prefix
// semantics.
type linkOps struct {
	size int
}

func (l linkOps) width() int { return l.size }

func (linkOps) rawCmp(a, b []byte) int { return bytes.Compare(a, b) }

// humanCmp for link-layer addresses is the raw byte order, there is no
// other natural magnitude.
func (linkOps) humanCmp(a, b []byte) int { return bytes.Compare(a, b) }

func (linkOps) text(raw []byte) string {
	return net.HardwareAddr(raw).String()
}

type macOps struct {
	linkOps
	noPrefixOps
}

type eui64Ops struct {
	linkOps
	noPrefixOps
}
