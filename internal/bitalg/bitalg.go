// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitalg implements the bit-level address algebra: netmask and
// hostmask tables, prefix containment, longest-common-prefix and network
// truncation over raw big-endian address bytes.
//
// All functions operate on byte buffers whose length is a multiple of
// four, processed as 32-bit groups with the remaining bit budget carried
// across group boundaries. IPv4 is one group, IPv6 is four; no other
// widths are needed and no platform word-size variants exist.
package bitalg

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrBits is returned for a prefix length outside the buffer's bit width.
	ErrBits = errors.New("prefix length out of range")

	// ErrWidth is returned for buffers of unequal or unsupported width.
	ErrWidth = errors.New("mismatched byte width")
)

// NetMask[i] has the high i+1 bits set, for i in 0..31.
var NetMask = [32]uint32{
	0x8000_0000, 0xc000_0000, 0xe000_0000, 0xf000_0000,
	0xf800_0000, 0xfc00_0000, 0xfe00_0000, 0xff00_0000,
	0xff80_0000, 0xffc0_0000, 0xffe0_0000, 0xfff0_0000,
	0xfff8_0000, 0xfffc_0000, 0xfffe_0000, 0xffff_0000,
	0xffff_8000, 0xffff_c000, 0xffff_e000, 0xffff_f000,
	0xffff_f800, 0xffff_fc00, 0xffff_fe00, 0xffff_ff00,
	0xffff_ff80, 0xffff_ffc0, 0xffff_ffe0, 0xffff_fff0,
	0xffff_fff8, 0xffff_fffc, 0xffff_fffe, 0xffff_ffff,
}

// HostMask[i] is the complement of NetMask[i-1]: the low 32-i bits set.
// HostMask[0] is all ones.
var HostMask = [32]uint32{
	0xffff_ffff, 0x7fff_ffff, 0x3fff_ffff, 0x1fff_ffff,
	0x0fff_ffff, 0x07ff_ffff, 0x03ff_ffff, 0x01ff_ffff,
	0x00ff_ffff, 0x007f_ffff, 0x003f_ffff, 0x001f_ffff,
	0x000f_ffff, 0x0007_ffff, 0x0003_ffff, 0x0001_ffff,
	0x0000_ffff, 0x0000_7fff, 0x0000_3fff, 0x0000_1fff,
	0x0000_0fff, 0x0000_07ff, 0x0000_03ff, 0x0000_01ff,
	0x0000_00ff, 0x0000_007f, 0x0000_003f, 0x0000_001f,
	0x0000_000f, 0x0000_0007, 0x0000_0003, 0x0000_0001,
}

// netMaskBits and hostMaskBits are the pure derivations of the tables
// above, kept as the source of truth for the table tests.
func netMaskBits(bits int) uint32 {
	return ^uint32(0) << (32 - bits)
}

func hostMaskBits(bits int) uint32 {
	return ^uint32(0) >> bits
}

// checkWidth validates a buffer for group-wise processing.
func checkWidth(b []byte) error {
	if len(b) == 0 || len(b)%4 != 0 {
		return ErrWidth
	}
	return nil
}

// InPrefix reports whether addr lies within prefix/bits. A zero bits
// matches every address; bits outside 0..8*len(addr) is an error, as are
// buffers of unequal width.
func InPrefix(addr, prefix []byte, bits int) (bool, error) {
	if err := checkWidth(addr); err != nil {
		return false, err
	}
	if len(addr) != len(prefix) {
		return false, ErrWidth
	}
	if bits == 0 {
		return true, nil
	}
	if bits < 0 || bits > len(addr)*8 {
		return false, ErrBits
	}

	for g := 0; g < len(addr); g += 4 {
		// only 32 bits can be checked at a time, carry the rest
		mask := NetMask[31]
		if bits <= 32 {
			mask = NetMask[bits-1]
		}

		a := binary.BigEndian.Uint32(addr[g:])
		p := binary.BigEndian.Uint32(prefix[g:])
		if (a^p)&mask != 0 {
			return false, nil
		}
		if bits <= 32 {
			return true, nil
		}
		bits -= 32
	}

	panic("logic error, bit budget exceeds buffer width")
}

// CommonPrefixLen returns the number of leading bits a and b share,
// in 0..8*len(a).
func CommonPrefixLen(a, b []byte) (int, error) {
	if err := checkWidth(a); err != nil {
		return 0, err
	}
	if len(a) != len(b) {
		return 0, ErrWidth
	}

	n := 0
	for g := 0; g < len(a); g += 4 {
		ua := binary.BigEndian.Uint32(a[g:])
		ub := binary.BigEndian.Uint32(b[g:])

		if ua == ub {
			n += 32
			continue
		}

		for j := range 32 {
			if (ua^ub)&NetMask[j] != 0 {
				return n, nil
			}
			n++
		}
	}

	return n, nil
}

// CommonPrefixLenHostAware is CommonPrefixLen with the host-degenerate
// contraction used by alias resolution: while either address's host
// portion under the candidate length is all-zero or all-one (the
// network or broadcast address of that subnet), the candidate length is
// stepped down by one and both sides are re-checked. A raw result of 31
// or 32 is returned unchanged, a /31 or /32 has no host bits worth
// inspecting. IPv4 only.
func CommonPrefixLenHostAware(a, b []byte) (int, error) {
	if len(a) != 4 || len(b) != 4 {
		return 0, ErrWidth
	}

	n, err := CommonPrefixLen(a, b)
	if err != nil {
		return 0, err
	}
	if n >= 31 {
		return n, nil
	}

	ua := binary.BigEndian.Uint32(a)
	ub := binary.BigEndian.Uint32(b)

	for n > 0 {
		if h := ua & HostMask[n]; h == 0 || h == HostMask[n] {
			n--
			continue
		}
		if h := ub & HostMask[n]; h == 0 || h == HostMask[n] {
			n--
			continue
		}
		break
	}

	return n, nil
}

// TruncateToNetwork returns addr with all but the high bits cleared.
// bits must be in 1..8*len(addr).
func TruncateToNetwork(addr []byte, bits int) ([]byte, error) {
	if err := checkWidth(addr); err != nil {
		return nil, err
	}
	if bits <= 0 || bits > len(addr)*8 {
		return nil, ErrBits
	}

	out := make([]byte, len(addr))
	for g := 0; g < len(addr); g += 4 {
		ua := binary.BigEndian.Uint32(addr[g:])
		if bits >= 32 {
			binary.BigEndian.PutUint32(out[g:], ua)
		} else {
			binary.BigEndian.PutUint32(out[g:], ua&NetMask[bits-1])
		}

		if bits <= 32 {
			break
		}
		bits -= 32
	}

	return out, nil
}

// LinkLocal4 reports whether the IPv4 address lies in 169.254.0.0/16.
func LinkLocal4(addr []byte) bool {
	return binary.BigEndian.Uint32(addr)&0xffff_0000 == 0xa9fe_0000
}

// LinkLocal6 reports whether the IPv6 address lies in fe80::/10.
func LinkLocal6(addr []byte) bool {
	return addr[0] == 0xfe && addr[1]&0xc0 == 0x80
}

// Private4 reports whether the IPv4 address lies in one of the RFC1918
// blocks 10.0.0.0/8, 172.16.0.0/12 or 192.168.0.0/16.
func Private4(addr []byte) bool {
	x := binary.BigEndian.Uint32(addr)
	return x&0xff00_0000 == 0x0a00_0000 ||
		x&0xfff0_0000 == 0xac10_0000 ||
		x&0xffff_0000 == 0xc0a8_0000
}
