// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package addrpool

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaissmai/addrpool/internal/tests/random"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a, err := New(IP4, raw4("1.2.3.4"))
	require.NoError(t, err)
	assert.Equal(t, IP4, a.Family())
	assert.Equal(t, raw4("1.2.3.4"), a.Bytes())
	assert.Equal(t, 1, a.RefCount())

	_, err = New(Family(0), nil)
	require.ErrorIs(t, err, ErrFamily)

	_, err = New(Family(9), raw4("1.2.3.4"))
	require.ErrorIs(t, err, ErrFamily)

	_, err = New(IP4, raw6("::1"))
	require.ErrorIs(t, err, ErrWidth)

	_, err = New(MAC48, []byte{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrWidth)
}

// New copies the caller's buffer, later mutation must not show through
func TestNewCopiesBytes(t *testing.T) {
	t.Parallel()

	raw := raw4("1.2.3.4")
	a := mustAddr(t, IP4, raw)

	raw[0] = 99
	assert.Equal(t, raw4("1.2.3.4"), a.Bytes())
}

func TestUseRelease(t *testing.T) {
	t.Parallel()

	a := mustAddr(t, IP4, raw4("1.2.3.4"))
	require.Equal(t, 1, a.RefCount())

	require.Same(t, a, a.Use())
	require.Equal(t, 2, a.RefCount())

	a.Release()
	require.Equal(t, 1, a.RefCount())

	a.Release()
	require.Equal(t, 0, a.RefCount())

	// releasing a dead value is an invariant violation
	require.Panics(t, func() { a.Release() })
}

func TestReleaseNil(t *testing.T) {
	t.Parallel()

	var a *Addr
	require.NotPanics(t, func() { a.Release() })
	require.Nil(t, a.Use())
}

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		family Family
		raw    []byte
		want   string
	}{
		{IP4, raw4("192.0.2.1"), "192.0.2.1"},
		{IP4, []byte{10, 0, 0, 255}, "10.0.0.255"},
		{IP6, raw6("2001:db8::1"), "2001:db8::1"},
		{IP6, raw6("::"), "::"},
		{MAC48, []byte{0x00, 0x1b, 0x21, 0x3c, 0x9d, 0xf2}, "00:1b:21:3c:9d:f2"},
		{EUI64, []byte{0x00, 0x1b, 0x21, 0xff, 0xfe, 0x3c, 0x9d, 0xf2}, "00:1b:21:ff:fe:3c:9d:f2"},
	}

	for _, tc := range tests {
		a := mustAddr(t, tc.family, tc.raw)
		assert.Equal(t, tc.want, a.String())
	}
}

func TestCompareIdentityFastPath(t *testing.T) {
	t.Parallel()

	a := mustAddr(t, IP4, raw4("1.2.3.4"))
	assert.Zero(t, a.Compare(a))
	assert.Zero(t, a.HumanCompare(a))
}

func TestCompareCrossFamily(t *testing.T) {
	t.Parallel()

	// family ordinal decides, value bytes are irrelevant
	v4 := mustAddr(t, IP4, raw4("255.255.255.255"))
	v6 := mustAddr(t, IP6, raw6("::"))
	mac := mustAddr(t, MAC48, []byte{0, 0, 0, 0, 0, 0})
	fw := mustAddr(t, EUI64, []byte{0, 0, 0, 0, 0, 0, 0, 0})

	ordered := []*Addr{v4, v6, mac, fw}
	for i := range ordered {
		for j := range ordered {
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			assert.Equal(t, want, ordered[i].Compare(ordered[j]))
			assert.Equal(t, want, ordered[i].HumanCompare(ordered[j]))
		}
	}
}

func TestHumanCompareOrder(t *testing.T) {
	t.Parallel()

	// 1.2.3.4 < 1.2.3.5 < 2.0.0.0
	a := mustAddr(t, IP4, raw4("1.2.3.4"))
	b := mustAddr(t, IP4, raw4("1.2.3.5"))
	c := mustAddr(t, IP4, raw4("2.0.0.0"))

	assert.Equal(t, -1, a.HumanCompare(b))
	assert.Equal(t, -1, b.HumanCompare(c))
	assert.Equal(t, -1, a.HumanCompare(c))
	assert.Equal(t, 1, c.HumanCompare(a))

	d := mustAddr(t, IP6, raw6("2001:db8::1"))
	e := mustAddr(t, IP6, raw6("2001:db8::2"))
	f := mustAddr(t, IP6, raw6("2001:db9::"))

	assert.Equal(t, -1, d.HumanCompare(e))
	assert.Equal(t, -1, e.HumanCompare(f))
}

// raw and human order must each be a total order: reflexive,
// antisymmetric, transitive on a random sample within one family
func TestCompareTotalOrder(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(7, 7))

	gens := map[Family]func(*rand.Rand) []byte{
		IP4:   random.IP4,
		IP6:   random.IP6,
		MAC48: random.MAC,
		EUI64: random.EUI64,
	}

	for family, gen := range gens {
		sample := make([]*Addr, 50)
		for i := range sample {
			sample[i] = mustAddr(t, family, gen(prng))
		}

		for _, cmpFn := range []func(*Addr, *Addr) int{
			(*Addr).Compare,
			(*Addr).HumanCompare,
		} {
			for _, x := range sample {
				y := mustAddr(t, family, x.Bytes())
				require.Zero(t, cmpFn(x, y), "%s: reflexivity", family)

				for _, z := range sample {
					require.Equal(t, cmpFn(x, z), -cmpFn(z, x),
						"%s: antisymmetry", family)
				}
			}

			// transitivity via sort consistency
			sorted := slices.Clone(sample)
			slices.SortFunc(sorted, cmpFn)
			require.True(t, slices.IsSortedFunc(sorted, cmpFn), "%s: transitivity", family)
		}
	}
}

func TestRawCompare(t *testing.T) {
	t.Parallel()

	a := mustAddr(t, IP4, raw4("10.0.0.5"))

	got, err := a.RawCompare(raw4("10.0.0.5"))
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = a.RawCompare(raw4("10.0.0.6"))
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = a.RawCompare(raw4("10.0.0.4"))
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = a.RawCompare(raw6("::1"))
	require.ErrorIs(t, err, ErrWidth)
}

func TestAddrPrefixOps(t *testing.T) {
	t.Parallel()

	a := mustAddr(t, IP4, raw4("10.1.2.3"))
	b := mustAddr(t, IP4, raw4("10.1.2.4"))
	v6 := mustAddr(t, IP6, raw6("2001:db8::1"))

	// in-prefix edge cases
	ok, err := a.InPrefix(a.Bytes(), 0)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = a.InPrefix(a.Bytes(), 33)
	require.ErrorIs(t, err, ErrBits)

	ok, err = a.InPrefix(raw4("10.1.0.0"), 16)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = a.InPrefix(raw6("::"), 16)
	require.ErrorIs(t, err, ErrWidth)

	// common prefix
	n, err := a.CommonPrefixLen(b)
	require.NoError(t, err)
	assert.Equal(t, 29, n)

	_, err = a.CommonPrefixLen(v6)
	require.ErrorIs(t, err, ErrFamily)

	_, err = a.CommonPrefixLenHostAware(v6)
	require.ErrorIs(t, err, ErrFamily)

	n, err = a.CommonPrefixLenHostAware(a)
	require.NoError(t, err)
	assert.Equal(t, 32, n)

	// truncation
	net, err := a.TruncateToNetwork(16)
	require.NoError(t, err)
	assert.Equal(t, raw4("10.1.0.0"), net)

	_, err = a.TruncateToNetwork(0)
	require.ErrorIs(t, err, ErrBits)
}

func TestAddrClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, mustAddr(t, IP4, raw4("169.254.1.1")).IsLinkLocal())
	assert.False(t, mustAddr(t, IP4, raw4("169.253.255.255")).IsLinkLocal())
	assert.True(t, mustAddr(t, IP6, raw6("fe80::1")).IsLinkLocal())
	assert.False(t, mustAddr(t, IP6, raw6("fec0::1")).IsLinkLocal())

	assert.True(t, mustAddr(t, IP4, raw4("10.1.2.3")).IsPrivate())
	assert.True(t, mustAddr(t, IP4, raw4("172.16.5.5")).IsPrivate())
	assert.True(t, mustAddr(t, IP4, raw4("192.168.0.1")).IsPrivate())
	assert.False(t, mustAddr(t, IP4, raw4("172.32.0.1")).IsPrivate())
	assert.False(t, mustAddr(t, IP4, raw4("8.8.8.8")).IsPrivate())
	assert.False(t, mustAddr(t, IP6, raw6("fd00::1")).IsPrivate())
}
