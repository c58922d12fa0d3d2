package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/fldic/pkg/trie"
	"github.com/bastiangx/fldic/pkg/unitext"
)

const (
	sectionWords     = "[words]"
	sectionShortcuts = "[shortcuts]"
)

// Load populates d from the fldic text file at path. Load is a
// population method, not a mutation: it may be called on a dictionary
// constructed with mutable=false, since that's how base dictionaries are
// built in the first place.
//
// Parsing happens into a scratch dictionary first and is only swapped into
// d once the whole file has parsed cleanly, so a SchemaError partway
// through a file leaves d exactly as it was before the call: the load is
// fatal for the operation and never retains a partial dictionary.
func (d *Dictionary) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("failed to open dictionary %s: %v", path, err)
		return &IoError{Path: path, Err: err}
	}
	defer f.Close()

	scratch := &Dictionary{trie: trie.New(), mutable: d.mutable, shortcuts: make(map[string]string)}
	section := ""
	lineNo := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			switch trimmed {
			case sectionWords, sectionShortcuts:
				section = trimmed
			default:
				log.Warnf("%s:%d: unknown section %q, ignoring", path, lineNo, trimmed)
				section = trimmed
			}
			continue
		}

		switch section {
		case "":
			if err := scratch.parseHeaderLine(trimmed, path, lineNo); err != nil {
				return err
			}
		case sectionWords:
			if err := scratch.parseWordLine(trimmed, path, lineNo); err != nil {
				return err
			}
		case sectionShortcuts:
			if err := scratch.parseShortcutLine(trimmed, path, lineNo); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Errorf("failed to read dictionary %s: %v", path, err)
		return &IoError{Path: path, Err: err}
	}

	scratch.boundPath = path
	*d = *scratch
	return nil
}

func (d *Dictionary) parseHeaderLine(line, path string, lineNo int) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return &SchemaError{Path: path, Line: lineNo, Msg: "header line missing '='"}
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	switch key {
	case "schema":
		d.header.Schema = value
	case "name":
		d.header.Name = value
	case "locales":
		if value == "" {
			d.header.Locales = nil
		} else {
			d.header.Locales = strings.Split(value, ",")
			for i, loc := range d.header.Locales {
				d.header.Locales[i] = strings.TrimSpace(loc)
			}
		}
	case "generated_by":
		d.header.GeneratedBy = value
	default:
		log.Warnf("%s:%d: unknown header key %q, ignoring", path, lineNo, key)
	}
	return nil
}

func (d *Dictionary) parseWordLine(line, path string, lineNo int) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 || len(fields) > 3 {
		return &SchemaError{Path: path, Line: lineNo, Msg: "malformed word row: expected 2 or 3 tab-separated fields"}
	}
	word := fields[0]
	if word == "" {
		return &SchemaError{Path: path, Line: lineNo, Msg: "empty word"}
	}
	score, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil || score > uint64(ScoreMax) {
		return &SchemaError{Path: path, Line: lineNo, Msg: fmt.Sprintf("malformed score %q", fields[1])}
	}

	var offensive, hidden bool
	if len(fields) == 3 {
		for _, r := range fields[2] {
			switch r {
			case 'o':
				offensive = true
			case 'h':
				hidden = true
			default:
				return &SchemaError{Path: path, Line: lineNo, Msg: fmt.Sprintf("unknown flag character %q", r)}
			}
		}
	}

	key := unitext.FromUTF8(word)
	if key.ContainsReserved() {
		return &SchemaError{Path: path, Line: lineNo, Msg: "word contains reserved code point"}
	}
	if err := d.setEntry(key, uint32(score), offensive, hidden); err != nil {
		return &SchemaError{Path: path, Line: lineNo, Msg: err.Error()}
	}
	return nil
}

func (d *Dictionary) parseShortcutLine(line, path string, lineNo int) error {
	fields := strings.SplitN(line, "\t", 2)
	if len(fields) != 2 || fields[0] == "" {
		return &SchemaError{Path: path, Line: lineNo, Msg: "malformed shortcut row: expected trigger\\texpansion"}
	}
	d.shortcuts[fields[0]] = fields[1]
	return nil
}

// Persist writes d to path in the fldic text format: header
// keys in fixed order, then [words] in code-point-ascending key order
// (deterministic output), then [shortcuts] if non-empty. Only valid on a
// mutable dictionary; writes to a temp file and renames atomically so a
// failed or interrupted write never corrupts the existing file.
func (d *Dictionary) Persist(path string) error {
	if !d.mutable {
		return &ImmutableDictionaryError{Op: "Persist"}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".fldic-tmp-*")
	if err != nil {
		log.Errorf("failed to create temp file for %s: %v", path, err)
		return &IoError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := bufio.NewWriter(tmp)
	fmt.Fprintf(w, "schema=%s\n", d.header.Schema)
	fmt.Fprintf(w, "name=%s\n", d.header.Name)
	fmt.Fprintf(w, "locales=%s\n", strings.Join(d.header.Locales, ","))
	fmt.Fprintf(w, "generated_by=%s\n", d.header.GeneratedBy)
	fmt.Fprintln(w, sectionWords)

	var writeErr error
	d.trie.ForEach(func(word unitext.UniString, entry *trie.WordEntry) {
		if writeErr != nil {
			return
		}
		flags := flagString(entry)
		if flags == "" {
			_, writeErr = fmt.Fprintf(w, "%s\t%d\n", word.String(), entry.AbsoluteScore)
		} else {
			_, writeErr = fmt.Fprintf(w, "%s\t%d\t%s\n", word.String(), entry.AbsoluteScore, flags)
		}
	})
	if writeErr != nil {
		log.Errorf("failed to write words to %s: %v", tmpPath, writeErr)
		return &IoError{Path: path, Err: writeErr}
	}

	if len(d.shortcuts) > 0 {
		fmt.Fprintln(w, sectionShortcuts)
		keys := make([]string, 0, len(d.shortcuts))
		for k := range d.shortcuts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%s\n", k, d.shortcuts[k])
		}
	}

	if err := w.Flush(); err != nil {
		log.Errorf("failed to flush %s: %v", tmpPath, err)
		return &IoError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IoError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		log.Errorf("failed to rename %s to %s: %v", tmpPath, path, err)
		return &IoError{Path: path, Err: err}
	}
	d.boundPath = path
	return nil
}

func flagString(entry *trie.WordEntry) string {
	var b strings.Builder
	if entry.IsPossiblyOffensive {
		b.WriteByte('o')
	}
	if entry.IsHiddenByUser {
		b.WriteByte('h')
	}
	return b.String()
}


