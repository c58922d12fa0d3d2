package unitext

import "github.com/rivo/uniseg"

// SplitWords segments s into its constituent words using Unicode word
// boundary rules (UAX #29), standing in for an external word-segmentation
// service kept out of the core engine. It turns a context string into
// individual UniStrings. The session, the IPC server and the debug CLI do
// not call it: their prev_words/next_words arrive as lists and are passed
// on unsegmented. The core's trie and fuzzy engine never call it either.
//
// Whitespace-only and punctuation-only segments are dropped.
func SplitWords(s string) []UniString {
	var words []UniString
	state := -1
	remaining := s
	for len(remaining) > 0 {
		word, rest, newState := uniseg.FirstWordInString(remaining, state)
		if isWordLike(word) {
			words = append(words, FromUTF8(word))
		}
		remaining = rest
		state = newState
	}
	return words
}

// isWordLike reports whether a segment produced by FirstWordInString
// contains at least one letter or digit, filtering out bare whitespace and
// punctuation runs.
func isWordLike(segment string) bool {
	for _, r := range segment {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return true
		}
		if r >= 0x80 {
			// Non-ASCII: treat any non-whitespace, non-punctuation rune as
			// word-like without pulling in a full unicode.IsLetter scan per
			// rune here, since uniseg already grouped boundaries for us.
			if !isSeparator(r) {
				return true
			}
		}
		if '0' <= r && r <= '9' {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '.', ',', '!', '?', ';', ':', '-', '_', '/', '"', '\'':
		return true
	default:
		return false
	}
}
