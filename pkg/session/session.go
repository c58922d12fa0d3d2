package session

import (
	"sort"

	"github.com/bastiangx/fldic/internal/logger"
	"github.com/bastiangx/fldic/pkg/config"
	"github.com/bastiangx/fldic/pkg/dictionary"
	"github.com/bastiangx/fldic/pkg/fuzzy"
	"github.com/bastiangx/fldic/pkg/hotcache"
	"github.com/bastiangx/fldic/pkg/keymap"
	"github.com/bastiangx/fldic/pkg/unitext"
)

var log = logger.New("session")

// maxQueryLen bounds the number of code points considered from an input
// word: anything longer than the implementation ceiling is truncated
// internally before search.
const maxQueryLen = 64

// Session owns a set of read-only base dictionaries and at most one
// mutable user dictionary, and is the sole entry point the public API
// (pkg/ipc) and the debug CLI drive.
type Session struct {
	cfg       *config.Config
	proximity *keymap.Map
	base      []*dictionary.Dictionary
	user      *dictionary.Dictionary
	cache     *hotcache.Cache
}

// New returns an empty session. proximity may be keymap.Empty() if no
// layout asset was loaded.
func New(cfg *config.Config, proximity *keymap.Map) *Session {
	s := &Session{cfg: cfg, proximity: proximity}
	if cfg.HotCache.Enabled {
		s.cache = hotcache.New(cfg.HotCache.MaxWords)
	}
	return s
}

// LoadBaseDictionary adds a read-only dictionary loaded from path to the
// base set. locale is informational only in this revision; the engine
// does not filter candidates by it.
func (s *Session) LoadBaseDictionary(path string, locale string) error {
	d := dictionary.New(dictionary.Header{}, false)
	if err := d.Load(path); err != nil {
		log.Errorf("failed to load base dictionary %s: %v", path, err)
		return err
	}
	s.base = append(s.base, d)
	log.Infof("loaded base dictionary %q (%s) with %d words", d.Header().Name, path, len(d.GetListOfWords()))
	return nil
}

// LoadUserDictionary sets the mutable user dictionary. If path does not
// exist, an empty dictionary bound to it is created instead of failing.
func (s *Session) LoadUserDictionary(path string) error {
	d := dictionary.New(dictionary.Header{Schema: dictionary.CanonicalSchemaURL, Name: "user"}, true)
	if err := d.Load(path); err != nil {
		if ioErr, ok := err.(*dictionary.IoError); ok {
			log.Warnf("user dictionary %s not found, starting empty: %v", path, ioErr)
			d.BindPath(path)
		} else {
			return err
		}
	}
	s.user = d
	return nil
}

// allDictionaries returns every loaded dictionary, base first, user last
// (so a merge collision is decided by confidence, and on equal confidence
// the base hit, seen first, is kept).
func (s *Session) allDictionaries() []dictTagged {
	out := make([]dictTagged, 0, len(s.base)+1)
	for _, d := range s.base {
		out = append(out, dictTagged{d: d, isUser: false})
	}
	if s.user != nil {
		out = append(out, dictTagged{d: s.user, isUser: true})
	}
	return out
}

type dictTagged struct {
	d      *dictionary.Dictionary
	isUser bool
}

// Suggest runs the fuzzy engine across every loaded dictionary and returns
// a merged, ranked, truncated candidate list.
func (s *Session) Suggest(word string, prevWords []string, flags RequestFlags) []Candidate {
	maxCount := flags.MaxSuggestionCount()
	if word == "" || maxCount == 0 {
		return []Candidate{}
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(word); ok {
			return fromCacheEntries(cached, maxCount, s.cfg.Session)
		}
	}

	query := unitext.FromUTF8(word)
	if query.Len() > maxQueryLen {
		query = query[:maxQueryLen]
	}

	params := fuzzy.Params{
		MaxCandidates:        maxCount,
		AllowOffensive:       flags.AllowPossiblyOffensive(),
		OverrideHidden:       flags.OverrideHiddenFlag(),
		InputShiftStateStart: flags.InputShiftStateStart(),
		CurrentShiftState:    flags.InputShiftStateCurrent(),
	}

	type mergedHit struct {
		candidate fuzzy.Candidate
		fromUser  bool
	}
	merged := make(map[string]mergedHit)

	for _, dt := range s.allDictionaries() {
		for _, c := range dt.d.Search(query, s.proximity, s.cfg.Fuzzy, params) {
			mergeKey := unitext.Canonicalize(c.Word)
			existing, ok := merged[mergeKey]
			if !ok || c.Confidence > existing.candidate.Confidence {
				merged[mergeKey] = mergedHit{candidate: c, fromUser: dt.isUser}
			}
		}
	}

	candidates := make([]Candidate, 0, len(merged))
	for _, h := range merged {
		candidates = append(candidates, Candidate{
			Text:                     h.candidate.Word,
			EditDistance:             h.candidate.EditDistance,
			Confidence:               h.candidate.Confidence,
			IsEligibleForUserRemoval: h.fromUser,
		})
	}
	sortCandidates(candidates)
	if len(candidates) > maxCount {
		candidates = candidates[:maxCount]
	}
	if len(candidates) > 0 {
		first := &candidates[0]
		minConfidence := float64(s.cfg.Session.AutoCommitMinConfidence) / 100.0
		first.IsEligibleForAutoCommit = first.Confidence >= minConfidence && first.EditDistance <= s.cfg.Session.AutoCommitMaxEditDistance
	}

	if s.cache != nil {
		s.cache.Put(word, toCacheEntries(candidates))
	}
	return candidates
}

// Spell implements the spell() policy: exact match dominates, else a
// typo suggestion list, else an empty-suggestion typo verdict.
func (s *Session) Spell(word string, prevWords, nextWords []string, flags RequestFlags) Verdict {
	if word == "" {
		return Verdict{}
	}
	query := unitext.FromUTF8(word)

	for _, dt := range s.allDictionaries() {
		entry, ok := dt.d.Find(query)
		if !ok {
			continue
		}
		if entry.IsHiddenByUser && !flags.OverrideHiddenFlag() {
			continue
		}
		if entry.IsPossiblyOffensive && !flags.AllowPossiblyOffensive() {
			continue
		}
		return Verdict{Flags: VerdictInDictionary}
	}

	spellFlags := NewRequestFlags(
		s.cfg.Session.SpellMaxSuggestionCount,
		flags.AllowPossiblyOffensive(),
		flags.IsPrivateSession(),
		flags.OverrideHiddenFlag(),
		flags.InputShiftStateStart(),
		flags.InputShiftStateCurrent(),
	)
	candidates := s.Suggest(word, prevWords, spellFlags)
	if len(candidates) == 0 {
		return Verdict{Flags: VerdictLooksLikeTypo}
	}

	verdictFlags := VerdictLooksLikeTypo
	minConfidence := float64(s.cfg.Session.RecommendedMinConfidence) / 100.0
	if candidates[0].Confidence >= minConfidence {
		verdictFlags |= VerdictHasRecommendedSuggestions
	}
	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.Text
	}
	return Verdict{Flags: verdictFlags, Suggestions: suggestions}
}

// GetListOfWords returns every word across every loaded dictionary,
// deduplicated.
func (s *Session) GetListOfWords() []string {
	seen := make(map[string]struct{})
	var words []string
	for _, dt := range s.allDictionaries() {
		for _, w := range dt.d.GetListOfWords() {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return words
}

// GetFrequencyForWord returns the highest normalized frequency for word
// across every loaded dictionary, or 0 if it appears in none.
func (s *Session) GetFrequencyForWord(word string) float64 {
	var best float64
	for _, dt := range s.allDictionaries() {
		if freq := dt.d.GetFrequencyForWord(word); freq > best {
			best = freq
		}
	}
	return best
}

// Learn records that word was committed, incrementing its score in the
// mutable user dictionary by deltaScore. It is a no-op if
// flags.is_private_session is set or no user dictionary is loaded, and
// it invalidates any cached suggestion results under word's prefix.
func (s *Session) Learn(word string, deltaScore uint32, flags RequestFlags) error {
	if s.user == nil || flags.IsPrivateSession() {
		return nil
	}
	if _, err := s.user.Insert(unitext.FromUTF8(word), deltaScore); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(word)
	}
	return nil
}

func sortCandidates(c []Candidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Confidence != c[j].Confidence {
			return c[i].Confidence > c[j].Confidence
		}
		if c[i].EditDistance != c[j].EditDistance {
			return c[i].EditDistance < c[j].EditDistance
		}
		return c[i].Text < c[j].Text
	})
}

func toCacheEntries(c []Candidate) []hotcache.Entry {
	out := make([]hotcache.Entry, len(c))
	for i, cand := range c {
		out[i] = hotcache.Entry{
			Word:                     cand.Text,
			EditDistance:             cand.EditDistance,
			Confidence:               cand.Confidence,
			IsEligibleForUserRemoval: cand.IsEligibleForUserRemoval,
		}
	}
	return out
}

func fromCacheEntries(entries []hotcache.Entry, maxCount int, cfg config.SessionConfig) []Candidate {
	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		out = append(out, Candidate{
			Text:                     e.Word,
			EditDistance:             e.EditDistance,
			Confidence:               e.Confidence,
			IsEligibleForUserRemoval: e.IsEligibleForUserRemoval,
		})
	}
	if len(out) > maxCount {
		out = out[:maxCount]
	}
	if len(out) > 0 {
		minConfidence := float64(cfg.AutoCommitMinConfidence) / 100.0
		out[0].IsEligibleForAutoCommit = out[0].Confidence >= minConfidence && out[0].EditDistance <= cfg.AutoCommitMaxEditDistance
	}
	return out
}
