package dictionary

import (
	"github.com/bastiangx/fldic/pkg/config"
	"github.com/bastiangx/fldic/pkg/fuzzy"
	"github.com/bastiangx/fldic/pkg/keymap"
	"github.com/bastiangx/fldic/pkg/unitext"
)

// Search runs the fuzzy engine over d's trie, normalizing confidence
// against d's own cached maximum score.
func (d *Dictionary) Search(query unitext.UniString, proximity *keymap.Map, cfg config.FuzzyConfig, params fuzzy.Params) []fuzzy.Candidate {
	return fuzzy.Search(d.trie, d.maxUnigramScore, query, proximity, cfg, params)
}
