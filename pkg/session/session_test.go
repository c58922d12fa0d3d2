package session

import (
	"path/filepath"
	"testing"

	"github.com/bastiangx/fldic/pkg/config"
	"github.com/bastiangx/fldic/pkg/dictionary"
	"github.com/bastiangx/fldic/pkg/fuzzy"
	"github.com/bastiangx/fldic/pkg/keymap"
	"github.com/bastiangx/fldic/pkg/unitext"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.HotCache.Enabled = false
	return cfg
}

func writeBaseDictionary(t *testing.T, words map[string]uint32) string {
	t.Helper()
	d := dictionary.New(dictionary.Header{Schema: dictionary.CanonicalSchemaURL, Name: "base"}, true)
	for w, score := range words {
		if _, err := d.Insert(unitext.FromUTF8(w), score); err != nil {
			t.Fatalf("Insert(%q): %v", w, err)
		}
	}
	path := filepath.Join(t.TempDir(), "base.fldic")
	if err := d.Persist(path); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	return path
}

func defaultFlags(maxCount int) RequestFlags {
	return NewRequestFlags(maxCount, false, false, false, fuzzy.Unshifted, fuzzy.Unshifted)
}

func TestSuggestExactMatchIsTopCandidate(t *testing.T) {
	path := writeBaseDictionary(t, map[string]uint32{"hello": 1000, "help": 800})
	s := New(testConfig(), keymap.Empty())
	if err := s.LoadBaseDictionary(path, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}

	candidates := s.Suggest("hello", nil, defaultFlags(10))
	if len(candidates) == 0 || candidates[0].Text != "hello" || candidates[0].EditDistance != 0 {
		t.Fatalf("expected hello as top exact match, got %+v", candidates)
	}
	if !candidates[0].IsEligibleForAutoCommit {
		t.Fatal("expected exact match to be auto-commit eligible")
	}
}

func TestSuggestEmptyWordReturnsEmpty(t *testing.T) {
	s := New(testConfig(), keymap.Empty())
	if got := s.Suggest("", nil, defaultFlags(10)); len(got) != 0 {
		t.Fatalf("expected no candidates for empty word, got %+v", got)
	}
}

func TestSuggestZeroMaxCountReturnsEmpty(t *testing.T) {
	path := writeBaseDictionary(t, map[string]uint32{"hello": 1000})
	s := New(testConfig(), keymap.Empty())
	if err := s.LoadBaseDictionary(path, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}
	if got := s.Suggest("hello", nil, defaultFlags(0)); len(got) != 0 {
		t.Fatalf("expected no candidates when max_suggestion_count is 0, got %+v", got)
	}
}

func TestSuggestMergesAcrossDictionariesKeepingHigherConfidence(t *testing.T) {
	basePath := writeBaseDictionary(t, map[string]uint32{"color": 400, "otherword": 1000})
	s := New(testConfig(), keymap.Empty())
	if err := s.LoadBaseDictionary(basePath, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}

	userPath := filepath.Join(t.TempDir(), "user.fldic")
	if err := s.LoadUserDictionary(userPath); err != nil {
		t.Fatalf("LoadUserDictionary: %v", err)
	}
	if err := s.Learn("color", 900, defaultFlags(10)); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	candidates := s.Suggest("color", nil, defaultFlags(10))
	found := false
	for _, c := range candidates {
		if c.Text != "color" {
			continue
		}
		found = true
		if !c.IsEligibleForUserRemoval {
			t.Fatal("expected color to be attributed to the user dictionary after merge")
		}
	}
	if !found {
		t.Fatalf("expected color among candidates, got %+v", candidates)
	}
}

func TestSuggestPreservesUserRemovalEligibilityAcrossCacheHit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HotCache.MaxWords = 8
	s := New(cfg, keymap.Empty())

	userPath := filepath.Join(t.TempDir(), "user.fldic")
	if err := s.LoadUserDictionary(userPath); err != nil {
		t.Fatalf("LoadUserDictionary: %v", err)
	}
	if err := s.Learn("color", 900, defaultFlags(10)); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	first := s.Suggest("color", nil, defaultFlags(10))
	if len(first) == 0 || first[0].Text != "color" || !first[0].IsEligibleForUserRemoval {
		t.Fatalf("expected color to be user-removable on the uncached call, got %+v", first)
	}

	second := s.Suggest("color", nil, defaultFlags(10))
	if len(second) == 0 || second[0].Text != "color" || !second[0].IsEligibleForUserRemoval {
		t.Fatalf("expected user-removal eligibility to survive a hot cache hit, got %+v", second)
	}
}

func TestLearnIsNoopUnderPrivateSession(t *testing.T) {
	s := New(testConfig(), keymap.Empty())
	userPath := filepath.Join(t.TempDir(), "user.fldic")
	if err := s.LoadUserDictionary(userPath); err != nil {
		t.Fatalf("LoadUserDictionary: %v", err)
	}

	privateFlags := NewRequestFlags(10, false, true, false, fuzzy.Unshifted, fuzzy.Unshifted)
	if err := s.Learn("secretword", 1000, privateFlags); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if freq := s.GetFrequencyForWord("secretword"); freq != 0 {
		t.Fatalf("expected private-session Learn to be a no-op, got frequency %v", freq)
	}
}

func TestSpellExactMatchReportsInDictionary(t *testing.T) {
	path := writeBaseDictionary(t, map[string]uint32{"hello": 1000})
	s := New(testConfig(), keymap.Empty())
	if err := s.LoadBaseDictionary(path, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}

	verdict := s.Spell("hello", nil, nil, defaultFlags(10))
	if !verdict.Flags.Has(VerdictInDictionary) {
		t.Fatalf("expected IN_DICTIONARY flag, got %v", verdict.Flags)
	}
	if len(verdict.Suggestions) != 0 {
		t.Fatalf("expected no suggestions for an in-dictionary word, got %v", verdict.Suggestions)
	}
}

func TestSpellTypoReturnsSuggestions(t *testing.T) {
	path := writeBaseDictionary(t, map[string]uint32{"hello": 1000})
	s := New(testConfig(), keymap.Empty())
	if err := s.LoadBaseDictionary(path, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}

	verdict := s.Spell("hallo", nil, nil, defaultFlags(10))
	if !verdict.Flags.Has(VerdictLooksLikeTypo) {
		t.Fatalf("expected LOOKS_LIKE_TYPO flag, got %v", verdict.Flags)
	}
	if verdict.Flags.Has(VerdictInDictionary) {
		t.Fatal("did not expect IN_DICTIONARY for a misspelling")
	}
	if len(verdict.Suggestions) == 0 || verdict.Suggestions[0] != "hello" {
		t.Fatalf("expected hello as the top suggestion, got %v", verdict.Suggestions)
	}
}

func TestSpellUnknownWordWithNoNearbyCandidates(t *testing.T) {
	path := writeBaseDictionary(t, map[string]uint32{"hello": 1000})
	s := New(testConfig(), keymap.Empty())
	if err := s.LoadBaseDictionary(path, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}

	verdict := s.Spell("zzzzzzzzzz", nil, nil, defaultFlags(10))
	if !verdict.Flags.Has(VerdictLooksLikeTypo) {
		t.Fatalf("expected LOOKS_LIKE_TYPO flag even with no suggestions, got %v", verdict.Flags)
	}
	if len(verdict.Suggestions) != 0 {
		t.Fatalf("expected no suggestions for a wildly unrelated word, got %v", verdict.Suggestions)
	}
}

func TestGetListOfWordsDedupesAcrossDictionaries(t *testing.T) {
	basePath := writeBaseDictionary(t, map[string]uint32{"alpha": 100, "beta": 200})
	s := New(testConfig(), keymap.Empty())
	if err := s.LoadBaseDictionary(basePath, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}
	userPath := filepath.Join(t.TempDir(), "user.fldic")
	if err := s.LoadUserDictionary(userPath); err != nil {
		t.Fatalf("LoadUserDictionary: %v", err)
	}
	if err := s.Learn("beta", 50, defaultFlags(10)); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if err := s.Learn("gamma", 50, defaultFlags(10)); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	words := s.GetListOfWords()
	seen := map[string]int{}
	for _, w := range words {
		seen[w]++
	}
	if seen["beta"] != 1 {
		t.Fatalf("expected beta exactly once across dictionaries, counts: %v", seen)
	}
	if seen["alpha"] != 1 || seen["gamma"] != 1 {
		t.Fatalf("expected alpha and gamma present, got %v", seen)
	}
}

func TestGetFrequencyForWordReturnsHighestAcrossDictionaries(t *testing.T) {
	basePath := writeBaseDictionary(t, map[string]uint32{"beta": 100})
	s := New(testConfig(), keymap.Empty())
	if err := s.LoadBaseDictionary(basePath, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}
	userPath := filepath.Join(t.TempDir(), "user.fldic")
	if err := s.LoadUserDictionary(userPath); err != nil {
		t.Fatalf("LoadUserDictionary: %v", err)
	}
	if err := s.Learn("beta", 1000, defaultFlags(10)); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	if freq := s.GetFrequencyForWord("beta"); freq != 1.0 {
		t.Fatalf("expected beta's own-dictionary normalized frequency of 1.0, got %v", freq)
	}
}
