/*
Package ipc implements MessagePack IPC over stdin/stdout for the
engine's public session API.

A client writes one MessagePack-encoded request object, the server
replies with one MessagePack-encoded response object, and every message
carries an "id" field so a client can match replies to requests when
piping several requests ahead of their responses. Field names on the
frequent suggest, spell and info messages are kept short (single or
two-letter keys) since msgpack's size win over JSON is largest on small,
frequent messages; the dictionary-load and error messages use full-word
keys ("kind", "path", "locale", "status", "error").

# Message Types

SuggestRequest/SuggestResponse carry suggest(word, prev_words, flags).
SpellRequest/SpellResponse carry spell(word, prev_words, next_words, flags).
LoadDictRequest/LoadDictResponse carry load_base_dictionary and
load_user_dictionary, distinguished by the "kind" field ("base" or "user").
InfoRequest/InfoResponse carry get_list_of_words and
get_frequency_for_word, distinguished by the "op" field.
*/
package ipc

// SuggestRequest requests ranked completions for a partially typed word.
type SuggestRequest struct {
	ID        string   `msgpack:"id"`
	Word      string   `msgpack:"w"`
	PrevWords []string `msgpack:"pw,omitempty"`
	Flags     uint32   `msgpack:"f"`
}

// CandidateWire is one ranked suggestion, wire-shaped.
type CandidateWire struct {
	Text            string  `msgpack:"t"`
	SecondaryText   string  `msgpack:"st,omitempty"`
	EditDistance    int     `msgpack:"ed"`
	Confidence      float64 `msgpack:"c"`
	AutoCommit      bool    `msgpack:"ac,omitempty"`
	RemovableByUser bool    `msgpack:"ru,omitempty"`
}

// SuggestResponse answers a SuggestRequest.
type SuggestResponse struct {
	ID         string          `msgpack:"id"`
	Candidates []CandidateWire `msgpack:"cs"`
	TimeTaken  int64           `msgpack:"t"`
}

// SpellRequest requests a spelling verdict for a word in context.
type SpellRequest struct {
	ID        string   `msgpack:"id"`
	Word      string   `msgpack:"w"`
	PrevWords []string `msgpack:"pw,omitempty"`
	NextWords []string `msgpack:"nw,omitempty"`
	Flags     uint32   `msgpack:"f"`
}

// SpellResponse answers a SpellRequest.
type SpellResponse struct {
	ID          string   `msgpack:"id"`
	Flags       uint8    `msgpack:"vf"`
	Suggestions []string `msgpack:"s,omitempty"`
}

// LoadDictRequest requests a base or user dictionary be (re)loaded.
type LoadDictRequest struct {
	ID     string `msgpack:"id"`
	Kind   string `msgpack:"kind"` // "base" or "user"
	Path   string `msgpack:"path"`
	Locale string `msgpack:"locale,omitempty"`
}

// LoadDictResponse answers a LoadDictRequest.
type LoadDictResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
}

// InfoRequest carries the two read-only session accessors
// (get_list_of_words and get_frequency_for_word), selected by Op.
type InfoRequest struct {
	ID   string `msgpack:"id"`
	Op   string `msgpack:"op"` // "words" or "frequency"
	Word string `msgpack:"w,omitempty"`
}

// InfoResponse answers an InfoRequest.
type InfoResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"ws,omitempty"`
	Frequency float64  `msgpack:"fr,omitempty"`
}

// ErrorResponse is sent when a request can't be classified or decoded.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"error"`
}
