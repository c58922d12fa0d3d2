package dictionary

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/bastiangx/fldic/pkg/trie"
	"github.com/bastiangx/fldic/pkg/unitext"
)

// binaryMagic tags a file as a fldic packed binary dictionary, a small
// versioned-magic fixed layout distinct from any unversioned chunk format.
const binaryMagic uint32 = 0x464c4401 // "FLD" + version 1

// LoadBinary populates d from a packed binary dictionary, an optional
// on-disk layout alongside the textual form. Like Load, this is a
// population method usable on any dictionary, and like Load it parses
// into a scratch dictionary and only swaps it into d once the whole
// file has decoded cleanly, so a truncated or malformed file never leaves
// d holding a partial result.
func (d *Dictionary) LoadBinary(path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("failed to open binary dictionary %s: %v", path, err)
		return &IoError{Path: path, Err: err}
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return &IoError{Path: path, Err: err}
	}
	if magic != binaryMagic {
		return &SchemaError{Path: path, Line: 0, Msg: "bad magic, not a fldic binary dictionary"}
	}

	scratch := &Dictionary{trie: trie.New(), mutable: d.mutable, shortcuts: make(map[string]string)}

	scratch.header.Schema, err = readString(r)
	if err != nil {
		return &IoError{Path: path, Err: err}
	}
	if scratch.header.Name, err = readString(r); err != nil {
		return &IoError{Path: path, Err: err}
	}
	if scratch.header.GeneratedBy, err = readString(r); err != nil {
		return &IoError{Path: path, Err: err}
	}
	var localeCount uint32
	if err := binary.Read(r, binary.LittleEndian, &localeCount); err != nil {
		return &IoError{Path: path, Err: err}
	}
	scratch.header.Locales = make([]string, localeCount)
	for i := range scratch.header.Locales {
		if scratch.header.Locales[i], err = readString(r); err != nil {
			return &IoError{Path: path, Err: err}
		}
	}

	var wordCount uint32
	if err := binary.Read(r, binary.LittleEndian, &wordCount); err != nil {
		return &IoError{Path: path, Err: err}
	}
	for i := uint32(0); i < wordCount; i++ {
		word, err := readString(r)
		if err != nil {
			return &IoError{Path: path, Err: err}
		}
		var score uint32
		var flagByte uint8
		if err := binary.Read(r, binary.LittleEndian, &score); err != nil {
			return &IoError{Path: path, Err: err}
		}
		if err := binary.Read(r, binary.LittleEndian, &flagByte); err != nil {
			return &IoError{Path: path, Err: err}
		}
		key := unitext.FromUTF8(word)
		if key.ContainsReserved() {
			return &SchemaError{Path: path, Line: int(i), Msg: "word contains reserved code point"}
		}
		if err := scratch.setEntry(key, score, flagByte&1 != 0, flagByte&2 != 0); err != nil {
			return &SchemaError{Path: path, Line: int(i), Msg: err.Error()}
		}
	}

	var shortcutCount uint32
	if err := binary.Read(r, binary.LittleEndian, &shortcutCount); err != nil {
		return &IoError{Path: path, Err: err}
	}
	for i := uint32(0); i < shortcutCount; i++ {
		trigger, err := readString(r)
		if err != nil {
			return &IoError{Path: path, Err: err}
		}
		expansion, err := readString(r)
		if err != nil {
			return &IoError{Path: path, Err: err}
		}
		scratch.shortcuts[trigger] = expansion
	}

	scratch.boundPath = path
	*d = *scratch
	return nil
}

// PersistBinary writes d in the packed binary layout. It must round-trip
// bit-exact with the text form at the WordEntry level: LoadBinary(path)
// after PersistBinary(path) reproduces identical (word, score, flags)
// triples, in the same code-point-ascending order Persist uses.
func (d *Dictionary) PersistBinary(path string) error {
	if !d.mutable {
		return &ImmutableDictionaryError{Op: "PersistBinary"}
	}

	f, err := os.Create(path)
	if err != nil {
		log.Errorf("failed to create binary dictionary %s: %v", path, err)
		return &IoError{Path: path, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	binary.Write(w, binary.LittleEndian, binaryMagic)
	writeString(w, d.header.Schema)
	writeString(w, d.header.Name)
	writeString(w, d.header.GeneratedBy)
	binary.Write(w, binary.LittleEndian, uint32(len(d.header.Locales)))
	for _, loc := range d.header.Locales {
		writeString(w, loc)
	}

	words := d.GetListOfWords()
	binary.Write(w, binary.LittleEndian, uint32(len(words)))
	for _, word := range words {
		entry, ok := d.trie.Find(unitext.FromUTF8(word))
		if !ok {
			continue
		}
		writeString(w, word)
		binary.Write(w, binary.LittleEndian, entry.AbsoluteScore)
		var flagByte uint8
		if entry.IsPossiblyOffensive {
			flagByte |= 1
		}
		if entry.IsHiddenByUser {
			flagByte |= 2
		}
		binary.Write(w, binary.LittleEndian, flagByte)
	}

	binary.Write(w, binary.LittleEndian, uint32(len(d.shortcuts)))
	for trigger, expansion := range d.shortcuts {
		writeString(w, trigger)
		writeString(w, expansion)
	}

	if err := w.Flush(); err != nil {
		log.Errorf("failed to flush binary dictionary %s: %v", path, err)
		return &IoError{Path: path, Err: err}
	}
	d.boundPath = path
	return nil
}

func readString(r *bufio.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeString(w *bufio.Writer, s string) {
	binary.Write(w, binary.LittleEndian, uint32(len(s)))
	w.WriteString(s)
}
