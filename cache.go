// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package addrpool

import (
	"context"

	"github.com/google/btree"
)

// btreeDegree is the branching factor of the per-family pools. 32 keeps
// the trees shallow for the address counts a measurement run produces.
const btreeDegree = 32

// Cache interns address values: one ordered pool per family, mapping
// raw bytes to the single live [Addr] with those bytes. Pools are
// ordered by the family's raw comparator, so iteration order is fully
// determined by the byte values, independent of insertion history.
//
// The pool entries are non-owning: indexing a value does not contribute
// to its refcount, and an entry is removed exactly when the value's
// last holder releases it.
type Cache struct {
	pools [numFamilies]*btree.BTreeG[*Addr]
}

// NewCache returns an empty interning cache with one pool per family.
func NewCache() *Cache {
	c := new(Cache)
	for i := range c.pools {
		c.pools[i] = btree.NewG(btreeDegree, func(a, b *Addr) bool {
			// pools are per family, the family tags are always equal here
			return a.family.ops().rawCmp(a.raw, b.raw) < 0
		})
	}
	return c
}

// GetOrCreate returns the single live value for the given raw bytes.
// On a hit the resident value is [Addr.Use]d and returned; on a miss a
// new value with a refcount of one is allocated, indexed, and bound to
// this cache. The raw bytes are never retained.
func (c *Cache) GetOrCreate(family Family, raw []byte) (*Addr, error) {
	if !family.IsValid() {
		return nil, ErrFamily
	}
	if len(raw) != family.Width() {
		return nil, ErrWidth
	}

	pool := c.pool(family)

	// probe on the stack, never inserted
	probe := Addr{family: family, raw: raw}
	if hit, ok := pool.Get(&probe); ok {
		return hit.Use(), nil
	}

	a, err := New(family, raw)
	if err != nil {
		return nil, err
	}
	pool.ReplaceOrInsert(a)
	a.owner = c
	return a, nil
}

// Resolve is [Resolve] through the cache: the text is resolved to raw
// bytes of the hinted IP family and the result is interned via
// GetOrCreate.
func (c *Cache) Resolve(ctx context.Context, hint Family, text string) (*Addr, error) {
	raw, err := resolveRaw(ctx, hint, text)
	if err != nil {
		return nil, err
	}
	return c.GetOrCreate(hint, raw)
}

// Size returns the number of resident values in the family's pool.
func (c *Cache) Size(family Family) int {
	if !family.IsValid() {
		return 0
	}
	return c.pool(family).Len()
}

// All visits the family's resident values in raw byte order and stops
// early when yield returns false. The pool must not be mutated during
// the visit.
func (c *Cache) All(family Family, yield func(*Addr) bool) {
	if !family.IsValid() {
		return
	}
	c.pool(family).Ascend(func(a *Addr) bool {
		return yield(a)
	})
}

// Close tears the cache down: every resident value is detached (its
// owner reference cleared, its refcount untouched) and the pools are
// discarded. Handles obtained before Close stay valid and releasable,
// their release just no longer touches any pool. The cache must not be
// used after Close.
func (c *Cache) Close() {
	for i := range c.pools {
		if c.pools[i] == nil {
			continue
		}
		c.pools[i].Ascend(func(a *Addr) bool {
			a.owner = nil
			return true
		})
		c.pools[i] = nil
	}
}

// pool returns the family's pool, it panics on a closed cache since
// using a cache after Close only ever means a caller bug.
func (c *Cache) pool(family Family) *btree.BTreeG[*Addr] {
	pool := c.pools[family-1]
	if pool == nil {
		panic("logic error, Cache used after Close")
	}
	return pool
}

// remove drops a's pool entry on final release. The pool must contain
// exactly this value for a's bytes.
func (c *Cache) remove(a *Addr) {
	got, ok := c.pool(a.family).Delete(a)
	if !ok || got != a {
		panic("logic error, cache pool out of sync with released Addr")
	}
}
