// Package matchcache implements the MatchInfoCache of spec.md §3/§4.6: a
// per-query-string cache of (matched line indices, scanned prefix range)
// that lets the Searcher resume scanning where a prior request for the
// same query left off.
//
// Grounded on peco's filter.Set (filter/set.go) for the "owned by one
// actor, no internal locking" shape; peco itself has no equivalent
// resumable-range cache (its filters re-scan fully on every keystroke),
// so the merge law here is new code built directly from spec.md §3.
package matchcache

import "fmt"

// Range is a half-open interval [Start, End) of LineStore indices that
// have been scanned.
type Range struct {
	Start, End int
}

// Info is a MatchInfo: the ascending, duplicate-free indices that matched
// within Range.
type Info struct {
	Indices []int
	Range   Range
}

// Cache maps query strings to their MatchInfo. It is owned exclusively by
// the State actor (spec.md §4.6) and carries no internal locking, mirroring
// the single-owner design of query.Editor.
type Cache struct {
	entries map[string]Info
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]Info)}
}

// Get returns the cached MatchInfo for query, if any.
func (c *Cache) Get(query string) (Info, bool) {
	info, ok := c.entries[query]
	return info, ok
}

// Merge inserts incoming as the cache entry for query, merging it with
// any existing entry. If there is no existing entry, incoming is stored
// as-is. Otherwise incoming.Range.Start must be <= the existing entry's
// Range.End (State only ever requests continuations starting at the
// cached End, per spec.md §9); violating that precondition is a
// programming error and panics rather than silently corrupting the
// cache, per spec.md §7's fail-fast policy for this case.
func (c *Cache) Merge(query string, incoming Info) Info {
	existing, ok := c.entries[query]
	if !ok {
		c.entries[query] = incoming
		return incoming
	}

	if incoming.Range.Start > existing.Range.End {
		panic(fmt.Sprintf("matchcache: merge precondition violated for query %q: incoming start %d > existing end %d", query, incoming.Range.Start, existing.Range.End))
	}

	merged := Info{
		Indices: append([]int(nil), existing.Indices...),
		Range:   existing.Range,
	}
	for _, idx := range incoming.Indices {
		if idx >= existing.Range.End {
			merged.Indices = append(merged.Indices, idx)
		}
	}
	if incoming.Range.End > merged.Range.End {
		merged.Range.End = incoming.Range.End
	}

	c.entries[query] = merged
	return merged
}
