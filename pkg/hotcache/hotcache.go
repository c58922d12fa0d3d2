/*
Package hotcache provides an LRU-bounded front-cache of recent/frequent
fuzzy search results, sitting in front of the canonical pkg/trie structure.

A tchap/go-patricia radix trie shortcuts repeated prefix lookups against
the same candidate words. go-patricia's compressed, path-collapsed
structure can't stand in for the canonical dictionary trie (it can't
expose the exact ordered branch table and reserved n-gram edge that
lookup needs), so it is repurposed here strictly as an accelerator, not
the source of truth. Keys are NFC-normalized query strings (case is
kept); values are the already-ranked candidate list a session
computed for that query, letting a repeated keystroke sequence skip the DFS
entirely.
*/
package hotcache

import (
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/fldic/internal/logger"
	"github.com/bastiangx/fldic/pkg/unitext"
)

var log = logger.New("hotcache")

// Entry is one cached result: a candidate word's text, edit distance,
// confidence, and whether it came from the mutable user dictionary,
// stored independent of pkg/fuzzy so this package has no dependency on
// the search engine.
type Entry struct {
	Word                     string
	EditDistance             int
	Confidence               float64
	IsEligibleForUserRemoval bool
}

// Cache is an LRU-bounded cache of query -> ranked candidate list, keyed on
// a patricia trie for efficient prefix eviction scans.
type Cache struct {
	mu          sync.RWMutex
	trie        *patricia.Trie
	results     map[string][]Entry
	accessTime  map[string]int64
	accessCount int64
	maxEntries  int
}

// New returns an empty cache bounded to maxEntries queries.
func New(maxEntries int) *Cache {
	return &Cache{
		trie:       patricia.NewTrie(),
		results:    make(map[string][]Entry, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// key normalizes a query to NFC without changing its case, matching the
// session's merge-key normalization so a cache hit never returns
// stale-cased results.
func key(query string) string {
	return unitext.Canonicalize(query)
}

// Get returns the cached candidate list for query, if present, marking it
// recently used.
func (c *Cache) Get(query string) ([]Entry, bool) {
	k := key(query)
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, ok := c.results[k]
	if ok {
		c.markAccessed(k)
	}
	return entries, ok
}

// Put stores query's candidate list, evicting the least-recently-used entry
// if the cache is at capacity.
func (c *Cache) Put(query string, entries []Entry) {
	k := key(query)
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.results[k]; !exists && len(c.results) >= c.maxEntries {
		c.evictLRU()
	}
	c.results[k] = entries
	c.trie.Insert(patricia.Prefix(k), len(entries))
	c.markAccessed(k)
}

// Invalidate drops every cached result whose query is a prefix of or
// prefixed by word, called after a mutable user dictionary learns a new
// word so stale (missing-candidate) results aren't served. A cached
// query that is a prefix of word (e.g. "hel" when word is "hello") is
// just as stale as one prefixed by it, since the newly learned word
// could now appear among its suggestions too.
func (c *Cache) Invalidate(word string) {
	k := key(word)
	c.mu.Lock()
	defer c.mu.Unlock()

	var toDrop []string
	c.trie.VisitSubtree(patricia.Prefix(k), func(p patricia.Prefix, _ patricia.Item) error {
		toDrop = append(toDrop, string(p))
		return nil
	})
	c.trie.VisitPrefixes(patricia.Prefix(k), func(p patricia.Prefix, _ patricia.Item) error {
		toDrop = append(toDrop, string(p))
		return nil
	})
	for _, dropKey := range toDrop {
		delete(c.results, dropKey)
		delete(c.accessTime, dropKey)
		c.trie.Delete(patricia.Prefix(dropKey))
	}
	log.Debugf("invalidated %d hot cache entries around prefix %q", len(toDrop), k)
}

// Stats reports basic cache occupancy.
func (c *Cache) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]int{
		"entries":    len(c.results),
		"maxEntries": c.maxEntries,
		"hits":       int(c.accessCount),
	}
}

func (c *Cache) markAccessed(k string) {
	c.accessCount++
	c.accessTime[k] = c.accessCount
}

func (c *Cache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = int64(^uint64(0) >> 1)
	for k, t := range c.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = k
		}
	}
	if oldestKey != "" {
		delete(c.results, oldestKey)
		delete(c.accessTime, oldestKey)
		c.trie.Delete(patricia.Prefix(oldestKey))
		log.Debugf("evicted hot cache entry %q", oldestKey)
	}
}
