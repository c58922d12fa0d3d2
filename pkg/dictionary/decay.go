package dictionary

import (
	"github.com/bastiangx/fldic/pkg/trie"
	"github.com/bastiangx/fldic/pkg/unitext"
)

// AdjustScores halves every entry's absolute score (integer division,
// rounding down), recomputing maxUnigramScore afterward. It is triggered
// automatically by Insert/Import when the maximum score exceeds
// ScoreMax-128, keeping relative ranking stable while making room to keep
// learning. The 128 margin is fixed in code; config.Dict.ScoreSaturationMargin
// is not consulted. Only valid on a mutable dictionary.
func (d *Dictionary) AdjustScores() error {
	if !d.mutable {
		return &ImmutableDictionaryError{Op: "AdjustScores"}
	}
	var newMax uint32
	d.trie.ForEach(func(word unitext.UniString, entry *trie.WordEntry) {
		entry.AbsoluteScore /= 2
		if entry.AbsoluteScore > newMax {
			newMax = entry.AbsoluteScore
		}
	})
	d.maxUnigramScore = newMax
	log.Debugf("adjusted scores for dictionary %q, new max %d", d.header.Name, newMax)
	return nil
}

// Prune removes every entry whose absolute score is strictly below
// threshold. This is a separate, explicitly-invoked operation from the
// automatic decay AdjustScores performs, typically driven by an
// out-of-scope training tool rather than live suggestion traffic. Only
// valid on a mutable dictionary.
func (d *Dictionary) Prune(threshold uint32) (removed int, err error) {
	if !d.mutable {
		return 0, &ImmutableDictionaryError{Op: "Prune"}
	}
	var toRemove []unitext.UniString
	d.trie.ForEach(func(word unitext.UniString, entry *trie.WordEntry) {
		if entry.AbsoluteScore < threshold {
			cp := make(unitext.UniString, len(word))
			copy(cp, word)
			toRemove = append(toRemove, cp)
		}
	})
	for _, word := range toRemove {
		d.trie.Remove(word)
	}
	var newMax uint32
	d.trie.ForEach(func(word unitext.UniString, entry *trie.WordEntry) {
		if entry.AbsoluteScore > newMax {
			newMax = entry.AbsoluteScore
		}
	})
	d.maxUnigramScore = newMax
	log.Debugf("pruned %d entries below threshold %d from dictionary %q", len(toRemove), threshold, d.header.Name)
	return len(toRemove), nil
}
