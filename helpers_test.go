// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package addrpool

import (
	"context"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustAddr(t *testing.T, family Family, raw []byte) *Addr {
	t.Helper()
	a, err := New(family, raw)
	require.NoError(t, err)
	return a
}

func mustResolve(t *testing.T, hint Family, text string) *Addr {
	t.Helper()
	a, err := Resolve(context.Background(), hint, text)
	require.NoError(t, err)
	return a
}

func raw4(s string) []byte {
	a := netip.MustParseAddr(s).As4()
	return a[:]
}

func raw6(s string) []byte {
	a := netip.MustParseAddr(s).As16()
	return a[:]
}
