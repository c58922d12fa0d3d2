/*
Package keymap loads the per-key adjacency map used by the fuzzy
engine to discount substitution cost between keys that sit next to each
other on the assumed keyboard layout.
*/
package keymap

import (
	"encoding/json"
	"os"

	"github.com/bastiangx/fldic/internal/logger"
)

var log = logger.New("keymap")

// Map holds, for each assumed code point, the set of code points considered
// neighboring on the keyboard layout the map was generated from. It is
// immutable once loaded.
type Map struct {
	neighbors map[rune]map[rune]struct{}
}

// Empty returns a Map with no adjacency data; IsNeighbor always reports
// false, which degrades the fuzzy engine to the far-substitution cost for
// every mismatch — a safe default when no layout asset is available.
func Empty() *Map {
	return &Map{neighbors: make(map[rune]map[rune]struct{})}
}

// Load reads a JSON object of the form {"a": ["s","q","w","z"], ...} from
// path. Each key and each value string is decoded to a single code point;
// keys or values with more than one code point are ignored with a warning.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("failed to read key proximity file %s: %v", path, err)
		return nil, err
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Errorf("failed to parse key proximity JSON %s: %v", path, err)
		return nil, err
	}

	m := Empty()
	for key, values := range raw {
		assumed, ok := singleRune(key)
		if !ok {
			log.Warnf("key proximity entry %q is not a single code point, ignoring", key)
			continue
		}
		set := make(map[rune]struct{}, len(values))
		for _, v := range values {
			actual, ok := singleRune(v)
			if !ok {
				log.Warnf("key proximity value %q for key %q is not a single code point, ignoring", v, key)
				continue
			}
			set[actual] = struct{}{}
		}
		m.neighbors[assumed] = set
	}
	return m, nil
}

// singleRune decodes s to exactly one rune, reporting false otherwise.
func singleRune(s string) (rune, bool) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

// IsNeighbor reports whether actual is a neighbor of assumed on the
// keyboard layout, in O(1) expected time.
func (m *Map) IsNeighbor(assumed, actual rune) bool {
	if m == nil {
		return false
	}
	set, ok := m.neighbors[assumed]
	if !ok {
		return false
	}
	_, ok = set[actual]
	return ok
}
