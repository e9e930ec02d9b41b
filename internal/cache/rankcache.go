// Package cache implements the rank cache: a dominance-keyed collection
// of (parent-rank, successor-rank-list) entries, consulted instead of
// re-running tight-successor enumeration when a previously cached parent
// rank dominates the current query.
package cache

import (
	"fmt"

	"nbacomplement/internal/rankfn"
)

// Key identifies a cache bucket: the macrostate (by its interned set
// key), the symbol read, and the parent's max rank.
type Key struct {
	SetKey  string
	Symbol  int
	MaxRank int
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%d|%d", k.SetKey, k.Symbol, k.MaxRank)
}

type entry struct {
	parent     *rankfn.Rank
	successors []*rankfn.Rank
}

// Cache is owned exclusively by one driver.Complement call
// and discarded at the end of it; it has no eviction policy.
type Cache struct {
	entries  map[string][]entry
	maxState int
	maxRank  int
	hits     int
	misses   int
}

// New builds a cache gated by the CacheMaxState/CacheMaxRank options:
// Eligible reports false outside those bounds so callers skip the cache
// entirely for large macrostates or high parent ranks.
func New(maxState, maxRank int) *Cache {
	return &Cache{entries: make(map[string][]entry), maxState: maxState, maxRank: maxRank}
}

// Eligible reports whether a macrostate of size sSize and parent max
// rank parentMaxRank should consult the cache at all.
func (c *Cache) Eligible(sSize, parentMaxRank int) bool {
	return sSize <= c.maxState && parentMaxRank <= c.maxRank
}

// Lookup searches entries under key for one whose parent rank dominates
// query (query <= parent pointwise), returning that entry's successor
// ranks filtered by ceilings. The first dominating
// entry found is used; entries are appended in insertion order so this
// also prefers earlier (typically coarser, more reusable) parent ranks.
func (c *Cache) Lookup(key Key, query *rankfn.Rank, ceilings map[int]int) ([]*rankfn.Rank, bool) {
	bucket := c.entries[key.String()]
	for _, e := range bucket {
		if query.IsAllLeq(e.parent) {
			c.hits++
			return filterByCeilings(e.successors, ceilings), true
		}
	}
	c.misses++
	return nil, false
}

// Store appends a freshly computed (parent, successors) pair under key.
func (c *Cache) Store(key Key, parent *rankfn.Rank, successors []*rankfn.Rank) {
	k := key.String()
	c.entries[k] = append(c.entries[k], entry{parent: parent, successors: successors})
}

// Stats reports cumulative hit/miss counts, useful for the CLI's
// diagnostic summary.
func (c *Cache) Stats() (hits, misses int) { return c.hits, c.misses }

func filterByCeilings(successors []*rankfn.Rank, ceilings map[int]int) []*rankfn.Rank {
	if ceilings == nil {
		return successors
	}
	out := make([]*rankfn.Rank, 0, len(successors))
	for _, s := range successors {
		if s.IsMaxRankValid(ceilings) {
			out = append(out, s)
		}
	}
	return out
}
