/*
Package unitext implements the Unicode string helpers the rest of fldic
builds on: conversion between UTF-8 byte strings and the ordered code-point
sequence (UniString) that the trie and fuzzy engine key on, trimming,
splitting, and case folding.

The trie and fuzzy engine never touch a raw UTF-8 string directly; they
operate on UniString so that multi-byte code points count as a single edit
unit instead of several bytes, treating the code point as the canonical
key alphabet.
*/
package unitext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NgramSeparator is the reserved code point that links the
// terminal node of one word to the root of a following word's sub-trie.
// It can never appear in a dictionary key.
const NgramSeparator rune = 0x1F

// MaxCodePoint is the highest valid Unicode code point.
const MaxCodePoint rune = 0x10FFFF

// UniString is the canonical internal word representation: an ordered,
// finite sequence of code points.
type UniString []rune

// FromUTF8 decodes a UTF-8 byte string into a UniString.
func FromUTF8(s string) UniString {
	return UniString([]rune(s))
}

// String encodes a UniString back to its UTF-8 form.
func (u UniString) String() string {
	return string([]rune(u))
}

// Len returns the number of code points, not bytes.
func (u UniString) Len() int {
	return len(u)
}

// ContainsReserved reports whether u contains the reserved n-gram separator
// code point, which the dictionary API boundary must reject.
func (u UniString) ContainsReserved() bool {
	for _, r := range u {
		if r == NgramSeparator {
			return true
		}
	}
	return false
}

// IsValidCodePoint reports whether r falls in the closed range [0x0, 0x10FFFF].
func IsValidCodePoint(r rune) bool {
	return r >= 0 && r <= MaxCodePoint
}

// TrimSpace trims leading/trailing Unicode whitespace from a UTF-8 string.
func TrimSpace(s string) string {
	return strings.TrimSpace(s)
}

// SplitFields splits s on runs of Unicode whitespace, discarding empties.
func SplitFields(s string) []string {
	return strings.Fields(s)
}

// EqualFold performs case-insensitive rune equality, preferring a fast ASCII
// path and falling back to full Unicode case folding for non-ASCII runes.
func EqualFold(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}
	return strings.EqualFold(string(a), string(b))
}

// ToLower lowercases a UniString code point by code point.
func ToLower(u UniString) UniString {
	out := make(UniString, len(u))
	for i, r := range u {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// ToTitleFirst returns a copy of u with its first code point title-cased,
// used by the fuzzy engine's shift-state handling.
func ToTitleFirst(u UniString) UniString {
	if len(u) == 0 {
		return u
	}
	out := make(UniString, len(u))
	copy(out, u)
	out[0] = unicode.ToTitle(out[0])
	return out
}

// ToUpper uppercases a UniString code point by code point, used for
// CAPS_LOCK matching in the fuzzy engine.
func ToUpper(u UniString) UniString {
	out := make(UniString, len(u))
	for i, r := range u {
		out[i] = unicode.ToUpper(r)
	}
	return out
}

// IsLower reports whether the first code point of u is lower case.
func IsLower(u UniString) bool {
	if len(u) == 0 {
		return false
	}
	return unicode.IsLower(u[0])
}

// IsUpper reports whether every letter code point of u is upper case.
func IsUpper(u UniString) bool {
	seenLetter := false
	for _, r := range u {
		if !unicode.IsLetter(r) {
			continue
		}
		seenLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return seenLetter
}

// Canonicalize applies NFC normalization, used by the session merge step
// so that two dictionaries encoding the same word with different
// combining-mark orderings collide on the same merge key.
func Canonicalize(s string) string {
	return norm.NFC.String(s)
}
