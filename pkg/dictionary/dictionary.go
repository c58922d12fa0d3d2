/*
Package dictionary implements the trie-backed word dictionary: a header,
a code-point trie of WordEntry payloads, and load/persist to the textual
fldic format (with an optional binary form).

A Dictionary is either read-only (populated once via Load and never
mutated afterward) or mutable (additionally supports Insert/Remove/Persist,
used for the on-device, ever-learning user dictionary). The distinction is
enforced at the API boundary, not by two separate Go types: a single
record with a mutable flag.
*/
package dictionary

import (
	"github.com/bastiangx/fldic/internal/logger"
	"github.com/bastiangx/fldic/pkg/trie"
	"github.com/bastiangx/fldic/pkg/unitext"
)

var log = logger.New("dictionary")

// CanonicalSchemaURL is the schema string written by Persist and expected
// (though not strictly required) on Load.
const CanonicalSchemaURL = "https://florisboard.org/schemas/fldic/v0~draft1/dictionary.txt"

// ScoreMax is the largest representable Score: 2^24 - 1, leaving
// the high byte free so scores stay within a signed 32-bit range.
const ScoreMax uint32 = 1<<24 - 1

// Header carries the textual format's header fields.
type Header struct {
	Schema      string
	Name        string
	Locales     []string
	GeneratedBy string
}

// Dictionary owns a trie, its header, and cached maxima used for frequency
// normalization.
type Dictionary struct {
	header          Header
	trie            *trie.Trie
	mutable         bool
	maxUnigramScore uint32
	shortcuts       map[string]string
	boundPath       string
}

// New returns an empty dictionary. mutable selects whether Insert/Remove/
// Persist are permitted; a dictionary populated only via Load is typically
// constructed with mutable=false.
func New(header Header, mutable bool) *Dictionary {
	return &Dictionary{
		header:    header,
		trie:      trie.New(),
		mutable:   mutable,
		shortcuts: make(map[string]string),
	}
}

// IsMutable reports whether Insert/Remove/Persist are permitted.
func (d *Dictionary) IsMutable() bool {
	return d.mutable
}

// Header returns a copy of the dictionary's header.
func (d *Dictionary) Header() Header {
	return d.header
}

// MaxUnigramScore returns the cached maximum absolute score across all
// entries, used to normalize frequency.
func (d *Dictionary) MaxUnigramScore() uint32 {
	return d.maxUnigramScore
}

// BoundPath returns the filesystem path this dictionary persists to, set by
// Load or BindPath.
func (d *Dictionary) BoundPath() string {
	return d.boundPath
}

// BindPath sets the path a later Persist call writes to, without touching
// the dictionary's contents. Used when creating a fresh, empty user
// dictionary bound to a path that doesn't exist yet.
func (d *Dictionary) BindPath(path string) {
	d.boundPath = path
}

// Find returns the payload for word if it exists and is a terminal entry.
func (d *Dictionary) Find(word unitext.UniString) (*trie.WordEntry, bool) {
	return d.trie.Find(word)
}

// Insert increments word's absolute score by deltaScore (default 1 per
// caller convention), saturating at ScoreMax, and triggers AdjustScores if
// the dictionary's maximum score would cross the saturation margin. Only
// valid on a mutable dictionary.
func (d *Dictionary) Insert(word unitext.UniString, deltaScore uint32) (*trie.WordEntry, error) {
	if !d.mutable {
		log.Errorf("Insert on read-only dictionary %q", d.header.Name)
		return nil, &ImmutableDictionaryError{Op: "Insert"}
	}
	if len(word) == 0 {
		return nil, &InvalidArgumentError{Msg: "empty key"}
	}
	if word.ContainsReserved() {
		return nil, &InvalidArgumentError{Msg: "key contains reserved code point"}
	}

	entry, err := d.trie.Insert(word)
	if err != nil {
		return nil, &InvalidArgumentError{Msg: err.Error()}
	}
	entry.AbsoluteScore = saturatingAdd(entry.AbsoluteScore, deltaScore)
	if entry.AbsoluteScore > d.maxUnigramScore {
		d.maxUnigramScore = entry.AbsoluteScore
	}
	if uint64(d.maxUnigramScore) > uint64(ScoreMax)-128 {
		d.AdjustScores()
	}
	return entry, nil
}

// setEntry is the population path used by the text/binary loaders: it
// writes a fully-formed WordEntry directly, bypassing the mutability check,
// since loading is how any dictionary (read-only or mutable) is populated.
func (d *Dictionary) setEntry(word unitext.UniString, score uint32, offensive, hidden bool) error {
	entry, err := d.trie.Insert(word)
	if err != nil {
		return err
	}
	entry.AbsoluteScore = score
	entry.IsPossiblyOffensive = offensive
	entry.IsHiddenByUser = hidden
	if score > d.maxUnigramScore {
		d.maxUnigramScore = score
	}
	return nil
}

// Remove clears word's payload and flags. Only valid on a mutable
// dictionary.
func (d *Dictionary) Remove(word unitext.UniString) error {
	if !d.mutable {
		return &ImmutableDictionaryError{Op: "Remove"}
	}
	d.trie.Remove(word)
	return nil
}

// ForEach streams every (word, entry) pair, in code-point ascending order.
func (d *Dictionary) ForEach(visit trie.Visitor) {
	d.trie.ForEach(visit)
}

// GetListOfWords returns every word in the dictionary, in code-point
// ascending order.
func (d *Dictionary) GetListOfWords() []string {
	var words []string
	d.trie.ForEach(func(word unitext.UniString, entry *trie.WordEntry) {
		words = append(words, word.String())
	})
	return words
}

// GetFrequencyForWord returns word's normalized frequency in [0, 1], or 0
// if the word isn't present or the dictionary has no scored entries yet
//.
func (d *Dictionary) GetFrequencyForWord(word string) float64 {
	entry, ok := d.trie.Find(unitext.FromUTF8(word))
	if !ok || d.maxUnigramScore == 0 {
		return 0
	}
	return float64(entry.AbsoluteScore) / float64(d.maxUnigramScore)
}

// ExpandShortcut returns the expansion text bound to trigger, if any
// (SPEC_FULL supplement 1).
func (d *Dictionary) ExpandShortcut(trigger unitext.UniString) (string, bool) {
	expansion, ok := d.shortcuts[trigger.String()]
	return expansion, ok
}

// SetShortcut binds trigger to expansion. Only valid on a mutable
// dictionary.
func (d *Dictionary) SetShortcut(trigger, expansion string) error {
	if !d.mutable {
		return &ImmutableDictionaryError{Op: "SetShortcut"}
	}
	d.shortcuts[trigger] = expansion
	return nil
}

// Shortcuts returns a copy of the shortcut table, in no particular order.
func (d *Dictionary) Shortcuts() map[string]string {
	out := make(map[string]string, len(d.shortcuts))
	for k, v := range d.shortcuts {
		out[k] = v
	}
	return out
}

// Import folds other's entries additively into d: scores add, and the
// offensive/hidden flags are the union of both dictionaries' flags for a
// given word (SPEC_FULL supplement 2). Only valid on a mutable dictionary.
func (d *Dictionary) Import(other *Dictionary) error {
	if !d.mutable {
		return &ImmutableDictionaryError{Op: "Import"}
	}
	var firstErr error
	other.trie.ForEach(func(word unitext.UniString, entry *trie.WordEntry) {
		cp := make(unitext.UniString, len(word))
		copy(cp, word)
		own, err := d.trie.Insert(cp)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		own.AbsoluteScore = saturatingAdd(own.AbsoluteScore, entry.AbsoluteScore)
		own.IsPossiblyOffensive = own.IsPossiblyOffensive || entry.IsPossiblyOffensive
		own.IsHiddenByUser = own.IsHiddenByUser || entry.IsHiddenByUser
		if own.AbsoluteScore > d.maxUnigramScore {
			d.maxUnigramScore = own.AbsoluteScore
		}
	})
	for trigger, expansion := range other.shortcuts {
		d.shortcuts[trigger] = expansion
	}
	if uint64(d.maxUnigramScore) > uint64(ScoreMax)-128 {
		d.AdjustScores()
	}
	return firstErr
}

// Stats reports basic counts about the dictionary (SPEC_FULL supplement 5).
func (d *Dictionary) Stats() map[string]int {
	total, offensive, hidden := 0, 0, 0
	d.trie.ForEach(func(word unitext.UniString, entry *trie.WordEntry) {
		total++
		if entry.IsPossiblyOffensive {
			offensive++
		}
		if entry.IsHiddenByUser {
			hidden++
		}
	})
	return map[string]int{
		"totalWords":      total,
		"offensiveWords":  offensive,
		"hiddenWords":     hidden,
		"maxUnigramScore": int(d.maxUnigramScore),
	}
}

// saturatingAdd adds b to a, clamping at ScoreMax.
func saturatingAdd(a, b uint32) uint32 {
	sum := uint64(a) + uint64(b)
	if sum > uint64(ScoreMax) {
		return ScoreMax
	}
	return uint32(sum)
}
