package ipc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/fldic/internal/logger"
	"github.com/bastiangx/fldic/pkg/session"
)

var log = logger.New("ipc")

// Server drives a Session from MessagePack requests read off an input
// stream, writing one MessagePack response per request to an output
// stream. It owns no session-mutating state of its own beyond the session
// itself, and carries over the Session's own single-threaded contract
// unchanged: Start must not be called from more than one goroutine.
type Server struct {
	sess       *session.Session
	decoder    *msgpack.Decoder
	out        io.Writer
	writeMutex sync.Mutex
}

// NewServer returns a Server reading requests from stdin and writing
// responses to stdout, driving sess.
func NewServer(sess *session.Session) *Server {
	return NewServerIO(sess, os.Stdin, os.Stdout)
}

// NewServerIO returns a Server reading requests from in and writing
// responses to out, driving sess. Exposed so the dispatch logic can be
// exercised against in-memory buffers in tests, without going through
// stdin/stdout.
func NewServerIO(sess *session.Session, in io.Reader, out io.Writer) *Server {
	return &Server{
		sess:    sess,
		decoder: msgpack.NewDecoder(in),
		out:     out,
	}
}

// Start reads requests until EOF, dispatching each to the matching
// handler. It returns nil on a clean client disconnect (io.EOF) and the
// read error otherwise.
func (s *Server) Start() error {
	log.Debug("starting msgpack IPC server")
	for {
		if err := s.handleOne(); err != nil {
			if err == io.EOF {
				log.Debug("client disconnected")
				return nil
			}
			log.Errorf("request error: %v", err)
			return err
		}
	}
}

// handleOne decodes one request object and dispatches it by shape: the
// presence of "kind" selects a dictionary load, "op" selects an info
// query, and anything with a "pw"/"nw"-shaped word field falls through to
// suggest or spell based on whether "nw" is present.
func (s *Server) handleOne() error {
	var raw map[string]any
	if err := s.decoder.Decode(&raw); err != nil {
		return err
	}

	id, _ := raw["id"].(string)

	if kind, ok := raw["kind"].(string); ok {
		return s.handleLoadDict(id, kind, raw)
	}
	if op, ok := raw["op"].(string); ok {
		return s.handleInfo(id, op, raw)
	}
	if _, hasNextWords := raw["nw"]; hasNextWords {
		return s.handleSpell(id, raw)
	}
	if _, hasWord := raw["w"]; hasWord {
		return s.handleSuggest(id, raw)
	}
	return s.send(&ErrorResponse{ID: id, Error: "unrecognized request shape"})
}

func (s *Server) handleSuggest(id string, raw map[string]any) error {
	word, _ := raw["w"].(string)
	prevWords := stringSlice(raw["pw"])
	flags := session.RequestFlags(toUint32(raw["f"]))

	start := time.Now()
	candidates := s.sess.Suggest(word, prevWords, flags)
	elapsed := time.Since(start)

	wire := make([]CandidateWire, len(candidates))
	for i, c := range candidates {
		wire[i] = CandidateWire{
			Text:            c.Text,
			SecondaryText:   c.SecondaryText,
			EditDistance:    c.EditDistance,
			Confidence:      c.Confidence,
			AutoCommit:      c.IsEligibleForAutoCommit,
			RemovableByUser: c.IsEligibleForUserRemoval,
		}
	}
	return s.send(&SuggestResponse{ID: id, Candidates: wire, TimeTaken: elapsed.Microseconds()})
}

func (s *Server) handleSpell(id string, raw map[string]any) error {
	word, _ := raw["w"].(string)
	prevWords := stringSlice(raw["pw"])
	nextWords := stringSlice(raw["nw"])
	flags := session.RequestFlags(toUint32(raw["f"]))

	verdict := s.sess.Spell(word, prevWords, nextWords, flags)
	return s.send(&SpellResponse{ID: id, Flags: uint8(verdict.Flags), Suggestions: verdict.Suggestions})
}

func (s *Server) handleLoadDict(id, kind string, raw map[string]any) error {
	path, _ := raw["path"].(string)
	if path == "" {
		return s.send(&LoadDictResponse{ID: id, Status: "error", Error: "path required"})
	}

	var err error
	switch kind {
	case "base":
		locale, _ := raw["locale"].(string)
		err = s.sess.LoadBaseDictionary(path, locale)
	case "user":
		err = s.sess.LoadUserDictionary(path)
	default:
		return s.send(&LoadDictResponse{ID: id, Status: "error", Error: fmt.Sprintf("unknown kind %q", kind)})
	}
	if err != nil {
		return s.send(&LoadDictResponse{ID: id, Status: "error", Error: err.Error()})
	}
	return s.send(&LoadDictResponse{ID: id, Status: "ok"})
}

func (s *Server) handleInfo(id, op string, raw map[string]any) error {
	switch op {
	case "words":
		return s.send(&InfoResponse{ID: id, Words: s.sess.GetListOfWords()})
	case "frequency":
		word, _ := raw["w"].(string)
		return s.send(&InfoResponse{ID: id, Frequency: s.sess.GetFrequencyForWord(word)})
	default:
		return s.send(&ErrorResponse{ID: id, Error: fmt.Sprintf("unknown op %q", op)})
	}
}

// send encodes response to a buffer and writes it out atomically, a
// write-then-flush-whole-buffer pattern so a response is never
// interleaved with another goroutine's write.
func (s *Server) send(response any) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(response); err != nil {
		return fmt.Errorf("ipc: failed to encode response: %w", err)
	}
	if _, err := s.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("ipc: failed to write response: %w", err)
	}
	return nil
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func toUint32(v any) uint32 {
	switch n := v.(type) {
	case uint32:
		return n
	case int:
		return uint32(n)
	case int64:
		return uint32(n)
	case uint64:
		return uint32(n)
	case float64:
		return uint32(n)
	default:
		return 0
	}
}
