/*
Package session implements the multi-dictionary aggregation layer: a
Session owns one or more read-only base dictionaries and at most one
mutable user dictionary, runs a fuzzy search across all of them per
keystroke, merges and ranks the results, and applies the request-level
policy flags (max count, offensive/hidden gating, shift-state heuristics).
*/
package session

import "github.com/bastiangx/fldic/pkg/fuzzy"

// RequestFlags is the packed 32-bit request word: lower 8 bits =
// max_suggestion_count, bit 8 = allow_possibly_offensive,
// bit 9 = is_private_session, bit 10 = override_hidden_flag, bits 12-13 =
// input_shift_state_start, bits 14-15 = input_shift_state_current.
type RequestFlags uint32

const (
	maxCountMask        RequestFlags = 0xFF
	bitAllowOffensive   RequestFlags = 1 << 8
	bitPrivateSession   RequestFlags = 1 << 9
	bitOverrideHidden   RequestFlags = 1 << 10
	shiftStartShift                  = 12
	shiftCurrentShift                = 14
	shiftStateMask      RequestFlags = 0x3
)

// MaxSuggestionCount returns the packed max_suggestion_count field (1..255).
func (f RequestFlags) MaxSuggestionCount() int {
	return int(f & maxCountMask)
}

// AllowPossiblyOffensive reports whether bit 8 is set.
func (f RequestFlags) AllowPossiblyOffensive() bool {
	return f&bitAllowOffensive != 0
}

// IsPrivateSession reports whether bit 9 is set: suggestions are served but
// the mutable user dictionary must not learn from this request.
func (f RequestFlags) IsPrivateSession() bool {
	return f&bitPrivateSession != 0
}

// OverrideHiddenFlag reports whether bit 10 is set.
func (f RequestFlags) OverrideHiddenFlag() bool {
	return f&bitOverrideHidden != 0
}

// InputShiftStateStart returns the shift state at the bits-12-13 field.
func (f RequestFlags) InputShiftStateStart() fuzzy.ShiftState {
	return fuzzy.ShiftState((f >> shiftStartShift) & shiftStateMask)
}

// InputShiftStateCurrent returns the shift state at the bits-14-15 field.
func (f RequestFlags) InputShiftStateCurrent() fuzzy.ShiftState {
	return fuzzy.ShiftState((f >> shiftCurrentShift) & shiftStateMask)
}

// NewRequestFlags packs the given fields into a RequestFlags word.
func NewRequestFlags(maxSuggestionCount int, allowOffensive, privateSession, overrideHidden bool, shiftStart, shiftCurrent fuzzy.ShiftState) RequestFlags {
	f := RequestFlags(maxSuggestionCount) & maxCountMask
	if allowOffensive {
		f |= bitAllowOffensive
	}
	if privateSession {
		f |= bitPrivateSession
	}
	if overrideHidden {
		f |= bitOverrideHidden
	}
	f |= (RequestFlags(shiftStart) & shiftStateMask) << shiftStartShift
	f |= (RequestFlags(shiftCurrent) & shiftStateMask) << shiftCurrentShift
	return f
}

// Candidate is one ranked suggestion returned by Suggest. SecondaryText
// is reserved for a future non-dictionary
// candidate kind (e.g. an emoji or clipboard suggestion); the core never
// populates it.
type Candidate struct {
	Text                     string
	SecondaryText            string
	EditDistance             int
	Confidence               float64
	IsEligibleForAutoCommit  bool
	IsEligibleForUserRemoval bool
}

// Verdict is a bitflag set plus a suggestion list, returned by Spell.
type Verdict struct {
	Flags       VerdictFlags
	Suggestions []string
}

// VerdictFlags is the bitflag set spell() returns over {IN_DICTIONARY,
// LOOKS_LIKE_TYPO, HAS_RECOMMENDED_SUGGESTIONS, LOOKS_LIKE_GRAMMAR_ERROR,
// DONT_SHOW_UI}. Only IN_DICTIONARY, LOOKS_LIKE_TYPO and
// HAS_RECOMMENDED_SUGGESTIONS are set by this revision's spell(); the
// other two bits are reserved for a grammar-checking extension that is
// out of scope here.
type VerdictFlags uint8

const (
	VerdictInDictionary VerdictFlags = 1 << iota
	VerdictLooksLikeTypo
	VerdictHasRecommendedSuggestions
	VerdictLooksLikeGrammarError
	VerdictDontShowUI
)

// Has reports whether flag is set.
func (v VerdictFlags) Has(flag VerdictFlags) bool {
	return v&flag != 0
}
