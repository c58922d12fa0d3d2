/*
Package fuzzy implements the weighted Damerau-Levenshtein DFS search engine
at the core of suggestion ranking: given a target word and a trie, it
enumerates candidate words within a bounded edit-distance budget, penalizing
insertions/deletions/substitutions/transpositions, discounting substitutions
between keyboard-adjacent characters, and scoring each hit's confidence from
its dictionary-normalized frequency and edit distance.

The search is a rolling-row DFS: each trie node carries a row of minimum
edit costs to reach every prefix of the query, computed incrementally from
its parent's row, so a single pass over the trie evaluates every candidate
word without re-scanning the query per candidate.
*/
package fuzzy

import (
	"sort"

	"github.com/bastiangx/fldic/pkg/config"
	"github.com/bastiangx/fldic/pkg/keymap"
	"github.com/bastiangx/fldic/pkg/trie"
	"github.com/bastiangx/fldic/pkg/unitext"
)

// ShiftState mirrors the keyboard's shift/caps-lock state at the moment a
// word was typed.
type ShiftState int

const (
	Unshifted ShiftState = iota
	ShiftedManual
	ShiftedAutomatic
	CapsLock
)

// Params carries the per-request knobs the DFS and its acceptance gate
// consult.
type Params struct {
	MaxCandidates        int
	AllowOffensive       bool
	OverrideHidden       bool
	InputShiftStateStart ShiftState
	CurrentShiftState    ShiftState
}

// Candidate is one admitted hit: a word within the cost budget of the
// query, with its edit distance and confidence already computed.
type Candidate struct {
	Word         string
	EditDistance int
	Confidence   float64
}

// Search runs the DFS over tr, returning candidates ordered by confidence
// descending, then edit distance ascending, then word ascending, and
// truncated to params.MaxCandidates.
func Search(tr *trie.Trie, maxUnigramScore uint32, query unitext.UniString, proximity *keymap.Map, cfg config.FuzzyConfig, params Params) []Candidate {
	if len(query) == 0 {
		return nil
	}
	if maxUnigramScore == 0 {
		maxUnigramScore = 1
	}
	cMax := costCeiling(cfg, len(query))

	capacity := params.MaxCandidates * 4
	if capacity < 20 {
		capacity = 20
	}

	best := make(map[string]rawHit, capacity)
	for _, variant := range queryVariants(query, params) {
		s := &searcher{
			query:           variant,
			proximity:       proximity,
			cfg:             cfg,
			cMax:            cMax,
			maxUnigramScore: maxUnigramScore,
			params:          params,
			collector:       newBoundedHeap[rawHit, int](capacity, func(h rawHit) int { return h.cost }),
		}
		initialRow := make([]int, len(variant)+1)
		for i := range initialRow {
			initialRow[i] = i * cfg.InsertCost
		}
		s.dfs(tr.Root(), initialRow, nil, 0, false, make([]rune, 0, 24))

		for _, hit := range s.collector.Items() {
			existing, ok := best[hit.word]
			if !ok || hit.cost < existing.cost {
				best[hit.word] = hit
			}
		}
	}

	candidates := make([]Candidate, 0, len(best))
	for word, hit := range best {
		candidates = append(candidates, Candidate{
			Word:         word,
			EditDistance: hit.cost,
			Confidence:   confidenceFor(hit.score, maxUnigramScore, hit.cost, cMax),
		})
	}
	sortCandidates(candidates)
	if len(candidates) > params.MaxCandidates {
		candidates = candidates[:params.MaxCandidates]
	}
	return candidates
}

// costCeiling computes C_max = max(2, len(q)) clamped to the configured
// ceiling.
func costCeiling(cfg config.FuzzyConfig, queryLen int) int {
	c := queryLen
	if c < cfg.MinCostFloor {
		c = cfg.MinCostFloor
	}
	if c > cfg.MaxCostCeiling {
		c = cfg.MaxCostCeiling
	}
	return c
}

// queryVariants returns the set of query strings the DFS must try: a
// title-cased variant when the word started lower-case but the input
// began shifted, and an upper-cased
// variant under CAPS_LOCK. Each variant is searched independently and
// merged by minimum cost, which is equivalent to matching it "at cost 0"
// relative to the original query.
func queryVariants(query unitext.UniString, params Params) []unitext.UniString {
	variants := []unitext.UniString{query}
	if unitext.IsLower(query) && params.InputShiftStateStart != Unshifted {
		variants = append(variants, unitext.ToTitleFirst(query))
	}
	if params.CurrentShiftState == CapsLock {
		variants = append(variants, unitext.ToUpper(query))
	}
	return variants
}

func confidenceFor(score uint32, maxScore uint32, cost, cMax int) float64 {
	normalized := float64(score) / float64(maxScore)
	confidence := normalized * (1 - float64(cost)/float64(cMax+1))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 0.9 {
		confidence = 0.9
	}
	return confidence
}

func sortCandidates(c []Candidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Confidence != c[j].Confidence {
			return c[i].Confidence > c[j].Confidence
		}
		if c[i].EditDistance != c[j].EditDistance {
			return c[i].EditDistance < c[j].EditDistance
		}
		return c[i].Word < c[j].Word
	})
}

// rawHit is an admitted candidate before its final confidence is computed
// relative to the merged best-of-variants cost.
type rawHit struct {
	word  string
	cost  int
	score uint32
}

// searcher holds the immutable context for one DFS pass against a single
// query variant.
type searcher struct {
	query           unitext.UniString
	proximity       *keymap.Map
	cfg             config.FuzzyConfig
	cMax            int
	maxUnigramScore uint32
	params          Params
	collector       *boundedHeap[rawHit, int]
}

// dfs descends cur, carrying row (the cost frontier at cur), prevRow (the
// frontier one trie-level up, needed for transposition), and prevTrieChar
// (the code point consumed to reach cur from its parent).
func (s *searcher) dfs(cur trie.Cursor, row, prevRow []int, prevTrieChar rune, hasPrevRow bool, prefix []rune) {
	if cur.IsTerminal() {
		if payload := cur.Payload(); payload != nil {
			s.tryAdmit(prefix, row, payload)
		}
	}
	cur.ForEachChild(func(cp rune, next trie.Cursor) bool {
		newRow := s.transition(row, prevRow, prevTrieChar, hasPrevRow, cp)
		if minRow(newRow) > s.cMax {
			return true
		}
		s.dfs(next, newRow, row, cp, true, append(prefix, cp))
		return true
	})
}

// transition computes the new cost row entering a child labeled c, applying
// the weighted Damerau-Levenshtein recurrence one trie edge at a time.
func (s *searcher) transition(row, prevRow []int, prevTrieChar rune, hasPrevRow bool, c rune) []int {
	n := len(s.query)
	newRow := make([]int, n+1)
	newRow[0] = row[0] + s.cfg.DeleteCost
	for i := 1; i <= n; i++ {
		qc := s.query[i-1]
		best := row[i-1] + s.matchCost(qc, c)
		if v := newRow[i-1] + s.cfg.InsertCost; v < best {
			best = v
		}
		if v := row[i] + s.cfg.DeleteCost; v < best {
			best = v
		}
		if hasPrevRow && i >= 2 && s.query[i-2] == c && prevTrieChar == qc {
			if v := prevRow[i-2] + s.cfg.TransposeCost; v < best {
				best = v
			}
		}
		newRow[i] = best
	}
	return newRow
}

func (s *searcher) matchCost(qc, c rune) int {
	if qc == c {
		return 0
	}
	if s.proximity.IsNeighbor(qc, c) {
		return s.cfg.SubstituteNear
	}
	return s.cfg.SubstituteFar
}

// tryAdmit applies the acceptance gate at a terminal node and,
// if it passes, pushes a rawHit into the bounded collector.
func (s *searcher) tryAdmit(prefix []rune, row []int, payload *trie.WordEntry) {
	cost := row[len(s.query)]
	if cost > s.cMax {
		return
	}
	if payload.IsHiddenByUser && !s.params.OverrideHidden {
		return
	}
	if payload.IsPossiblyOffensive && !s.params.AllowOffensive {
		return
	}
	word := make([]rune, len(prefix))
	copy(word, prefix)
	s.collector.Push(rawHit{word: string(word), cost: cost, score: payload.AbsoluteScore})
}

func minRow(row []int) int {
	m := row[0]
	for _, v := range row[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
