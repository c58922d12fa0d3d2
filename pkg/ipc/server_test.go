package ipc

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/fldic/pkg/config"
	"github.com/bastiangx/fldic/pkg/dictionary"
	"github.com/bastiangx/fldic/pkg/keymap"
	"github.com/bastiangx/fldic/pkg/session"
	"github.com/bastiangx/fldic/pkg/unitext"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.HotCache.Enabled = false
	sess := session.New(cfg, keymap.Empty())

	d := dictionary.New(dictionary.Header{Schema: dictionary.CanonicalSchemaURL, Name: "base"}, true)
	if _, err := d.Insert(unitext.FromUTF8("hello"), 1000); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	path := filepath.Join(t.TempDir(), "base.fldic")
	if err := d.Persist(path); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := sess.LoadBaseDictionary(path, "en-US"); err != nil {
		t.Fatalf("LoadBaseDictionary: %v", err)
	}
	return sess
}

func decodeResponse(t *testing.T, buf *bytes.Buffer, out any) {
	t.Helper()
	if err := msgpack.NewDecoder(buf).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestServerDispatchesSuggestRequest(t *testing.T) {
	sess := newTestSession(t)

	var in bytes.Buffer
	if err := msgpack.NewEncoder(&in).Encode(map[string]any{"id": "1", "w": "hallo", "f": uint32(10)}); err != nil {
		t.Fatalf("encode request: %v", err)
	}

	var out bytes.Buffer
	srv := NewServerIO(sess, &in, &out)
	if err := srv.handleOne(); err != nil {
		t.Fatalf("handleOne: %v", err)
	}

	var resp SuggestResponse
	decodeResponse(t, &out, &resp)
	if resp.ID != "1" {
		t.Fatalf("expected id to round-trip, got %q", resp.ID)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Text != "hello" {
		t.Fatalf("expected hello as the top suggestion, got %+v", resp.Candidates)
	}
}

func TestServerDispatchesSpellRequest(t *testing.T) {
	sess := newTestSession(t)

	var in bytes.Buffer
	if err := msgpack.NewEncoder(&in).Encode(map[string]any{"id": "2", "w": "hello", "nw": []string{}, "f": uint32(10)}); err != nil {
		t.Fatalf("encode request: %v", err)
	}

	var out bytes.Buffer
	srv := NewServerIO(sess, &in, &out)
	if err := srv.handleOne(); err != nil {
		t.Fatalf("handleOne: %v", err)
	}

	var resp SpellResponse
	decodeResponse(t, &out, &resp)
	if resp.ID != "2" {
		t.Fatalf("expected id to round-trip, got %q", resp.ID)
	}
	if resp.Flags&uint8(session.VerdictInDictionary) == 0 {
		t.Fatalf("expected IN_DICTIONARY flag, got %v", resp.Flags)
	}
}

func TestServerDispatchesInfoRequest(t *testing.T) {
	sess := newTestSession(t)

	var in bytes.Buffer
	if err := msgpack.NewEncoder(&in).Encode(map[string]any{"id": "3", "op": "words"}); err != nil {
		t.Fatalf("encode request: %v", err)
	}

	var out bytes.Buffer
	srv := NewServerIO(sess, &in, &out)
	if err := srv.handleOne(); err != nil {
		t.Fatalf("handleOne: %v", err)
	}

	var resp InfoResponse
	decodeResponse(t, &out, &resp)
	if len(resp.Words) != 1 || resp.Words[0] != "hello" {
		t.Fatalf("expected [hello], got %v", resp.Words)
	}
}

func TestServerLoadDictRejectsMissingPath(t *testing.T) {
	sess := newTestSession(t)

	var in bytes.Buffer
	if err := msgpack.NewEncoder(&in).Encode(map[string]any{"id": "4", "kind": "base"}); err != nil {
		t.Fatalf("encode request: %v", err)
	}

	var out bytes.Buffer
	srv := NewServerIO(sess, &in, &out)
	if err := srv.handleOne(); err != nil {
		t.Fatalf("handleOne: %v", err)
	}

	var resp LoadDictResponse
	decodeResponse(t, &out, &resp)
	if resp.Status != "error" {
		t.Fatalf("expected an error status for a missing path, got %+v", resp)
	}
}

func TestServerStartReturnsNilOnCleanEOF(t *testing.T) {
	sess := newTestSession(t)
	srv := NewServerIO(sess, &bytes.Buffer{}, &bytes.Buffer{})
	if err := srv.Start(); err != nil {
		t.Fatalf("expected Start to return nil on immediate EOF, got %v", err)
	}
}
