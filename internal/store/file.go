// file.go implements the JSON file backend.
//
// The document is written to a temporary file in the same directory,
// fsynced, closed, then renamed over the canonical file, and finally the
// directory itself is fsynced so the rename survives power loss. A reader
// therefore sees either the old document or the new one in full. A crash
// mid-save can leave a stray ".genie-*.tmp" file behind; Load ignores it.
//
// Format (version 1):
//
//	{
//	  "version": 1,
//	  "entries": [
//	    {"path": "/home/zach/a.jpg", "tags": ["beach", "photo"]}
//	  ]
//	}
//
// Entries are sorted by path and tags are sorted within an entry, so the
// same index always produces byte-identical output.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
)

// FormatVersion is the current JSON document version.
const FormatVersion = 1

type fileDoc struct {
	Version int         `json:"version"`
	Entries []fileEntry `json:"entries"`
}

type fileEntry struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
}

// FileStore persists pairs as a JSON document.
type FileStore struct {
	path   string
	closed atomic.Bool

	// rename replaces the canonical file; tests substitute a failing one.
	rename func(oldpath, newpath string) error
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store for the JSON document at path. The file is
// not touched until the first Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, rename: os.Rename}
}

// Path returns the JSON document location.
func (s *FileStore) Path() string { return s.path }

// Load reads and decodes the document. A missing file is an empty store.
func (s *FileStore) Load(ctx context.Context) ([]Pair, error) {
	if s.closed.Load() {
		return nil, storageErr("load", s.path, ErrClosed)
	}
	if err := ctx.Err(); err != nil {
		return nil, storageErr("load", s.path, err)
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Pair{}, nil
	}
	if err != nil {
		return nil, storageErr("load", s.path, err)
	}

	pairs, err := decodeDoc(data)
	if err != nil {
		return nil, storageErr("load", s.path, err)
	}
	return pairs, nil
}

// Decode parses a JSON tag document, the format FileStore persists and
// "genie export" writes.
func Decode(data []byte) ([]Pair, error) { return decodeDoc(data) }

// Encode renders pairs as a JSON tag document grouped by path, with paths
// and tags sorted and duplicates removed.
func Encode(pairs []Pair) ([]byte, error) { return encodeDoc(pairs) }

func decodeDoc(data []byte) ([]Pair, error) {
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, doc.Version)
	}

	var pairs []Pair
	for i, e := range doc.Entries {
		if e.Path == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty path", ErrCorrupt, i)
		}
		for _, t := range e.Tags {
			if t == "" {
				return nil, fmt.Errorf("%w: entry %d (%s) has an empty tag", ErrCorrupt, i, e.Path)
			}
			pairs = append(pairs, Pair{Path: e.Path, Tag: t})
		}
	}
	if pairs == nil {
		pairs = []Pair{}
	}
	return pairs, nil
}

func encodeDoc(pairs []Pair) ([]byte, error) {
	byPath := make(map[string][]string)
	for _, p := range pairs {
		byPath[p.Path] = append(byPath[p.Path], p.Tag)
	}

	doc := fileDoc{Version: FormatVersion, Entries: make([]fileEntry, 0, len(byPath))}
	for path, tags := range byPath {
		sort.Strings(tags)
		tags = dedupe(tags)
		doc.Entries = append(doc.Entries, fileEntry{Path: path, Tags: tags})
	}
	sort.Slice(doc.Entries, func(i, j int) bool {
		return doc.Entries[i].Path < doc.Entries[j].Path
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(s []string) []string {
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// Save atomically replaces the document with pairs.
func (s *FileStore) Save(ctx context.Context, pairs []Pair) error {
	if s.closed.Load() {
		return storageErr("save", s.path, ErrClosed)
	}
	if err := ctx.Err(); err != nil {
		return storageErr("save", s.path, err)
	}

	data, err := encodeDoc(pairs)
	if err != nil {
		return storageErr("save", s.path, err)
	}
	return storageErr("save", s.path, s.writeAtomic(data))
}

func (s *FileStore) writeAtomic(data []byte) (err error) {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".genie-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = s.rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return syncDir(dir)
}

// syncDir flushes directory metadata so a completed rename is durable.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open directory: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("sync directory: %w", err)
	}
	return nil
}

// Stamp identifies the current document by file identity, modification
// time and size. A missing file has the stamp "absent".
func (s *FileStore) Stamp(ctx context.Context) (string, error) {
	if s.closed.Load() {
		return "", storageErr("stamp", s.path, ErrClosed)
	}
	fi, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "absent", nil
	}
	if err != nil {
		return "", storageErr("stamp", s.path, err)
	}
	return fmt.Sprintf("%s:%d:%d", fileID(fi), fi.ModTime().UnixNano(), fi.Size()), nil
}

// Close marks the store closed. The file backend holds no open handles.
func (s *FileStore) Close() error {
	if s.closed.Swap(true) {
		return storageErr("close", s.path, ErrClosed)
	}
	return nil
}
