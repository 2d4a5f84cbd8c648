// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package addrpool provides canonical, reference-counted network address
// values for IPv4, IPv6, MAC-48 and FireWire EUI-64 endpoints, plus an
// interning cache that guarantees a single shared instance per distinct
// address value.
//
// The package is built for tools that hold millions of address handles
// (measurement collectors, topology mappers, alias resolvers) where
// deduplication and cheap identity comparison matter more than raw
// allocation speed:
//
//   - [Addr] is a shared-ownership handle: [Addr.Use] duplicates it for
//     O(1), [Addr.Release] drops it, and the value is reclaimed when the
//     last holder releases.
//   - [Cache] interns values per family in an ordered pool, so two
//     lookups of the same raw bytes return the same *Addr and pool
//     iteration order is fully determined by the raw byte order.
//   - Bit-level prefix algorithms (containment, longest common prefix,
//     netmask truncation) and range classification (link-local, RFC1918)
//     are available for the IP families.
//
// Address comparison is total across families: values order by family
// first, by value only within a family. Families without prefix
// semantics (MAC-48, EUI-64) report [ErrUnsupported] from the prefix
// operations instead of guessing.
//
// # Concurrency
//
// The package has no internal locking and reference counts are plain
// integers. A Cache and every Addr it indexes must be confined to one
// goroutine, or the caller must serialize access externally. The only
// blocking operation is the resolver path ([Resolve], [Cache.Resolve]),
// which takes a [context.Context].
package addrpool
