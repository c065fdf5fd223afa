package object

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Backend is the narrow store contract the model layer consumes:
// existence check, raw read, and write-with-id-assignment. Store is the
// loose filesystem implementation; anything else satisfying the
// contract can stand in.
type Backend interface {
	Exists(id Oid) bool
	Read(id Oid) (Type, []byte, error)
	Write(t Type, data []byte) (Oid, error)
}

// Store is a content-addressed loose object store with a 2-character
// fan-out layout: objects/ab/cdef0123... Each object is the envelope
// "<type> <len>\0<content>", zlib-compressed on disk. Not safe for
// concurrent use; one writer per store directory is the caller's
// responsibility.
type Store struct {
	root string
}

func (s *Store) objectsDir() string {
	return filepath.Join(s.root, "objects")
}

func (s *Store) objectPath(id Oid) string {
	hex := id.String()
	return filepath.Join(s.objectsDir(), hex[:2], hex[2:])
}

// InitStore creates a new store rooted at dir, failing if one already
// exists there.
func InitStore(dir string) (*Store, error) {
	objects := filepath.Join(dir, "objects")
	if _, err := os.Stat(objects); err == nil {
		return nil, fmt.Errorf("init store: already exists at %s", objects)
	}
	if err := os.MkdirAll(objects, 0o755); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return &Store{root: dir}, nil
}

// OpenStore opens an existing store rooted at dir. The only input is
// the path; there are no configuration knobs. Fails if dir does not
// contain an objects/ directory.
func OpenStore(dir string) (*Store, error) {
	info, err := os.Stat(filepath.Join(dir, "objects"))
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("open store: %s is not an object store root", dir)
	}
	return &Store{root: dir}, nil
}

// Exists reports whether the store holds an object with the given id.
func (s *Store) Exists(id Oid) bool {
	_, err := os.Stat(s.objectPath(id))
	return err == nil
}

// Write stores an object and returns its content address. Writes are
// atomic (temp file + rename) and idempotent: an object that already
// exists is left untouched.
func (s *Store) Write(t Type, data []byte) (Oid, error) {
	if !t.Valid() {
		return Oid{}, fmt.Errorf("store write: %w: %s", ErrInvalidType, t)
	}

	id := HashObject(t, data)
	if s.Exists(id) {
		return id, nil
	}

	dest := s.objectPath(id)
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Oid{}, fmt.Errorf("store write %s: %w", id, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return Oid{}, fmt.Errorf("store write %s: %w", id, err)
	}
	tmpName := tmp.Name()

	zw := zlib.NewWriter(tmp)
	fmt.Fprintf(zw, "%s %d\x00", t, len(data))
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		tmp.Close()
		os.Remove(tmpName)
		return Oid{}, fmt.Errorf("store write %s: %w", id, err)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return Oid{}, fmt.Errorf("store write %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return Oid{}, fmt.Errorf("store write %s: %w", id, err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return Oid{}, fmt.Errorf("store write %s: %w", id, err)
	}
	return id, nil
}

// Read retrieves an object by id, returning its type and raw content.
// Any failure to get the file's bytes reports *NotFoundError: the loose
// layout gives no way to tell a missing object from an I/O failure, and
// the contract keeps that ambiguity rather than guessing. Bytes that
// are present but undecodable report *CorruptedError.
func (s *Store) Read(id Oid) (Type, []byte, error) {
	key := id.String()

	raw, err := os.ReadFile(s.objectPath(id))
	if err != nil {
		return TypeBad, nil, &NotFoundError{Key: key}
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return TypeBad, nil, &CorruptedError{Key: key, Reason: "bad zlib stream"}
	}
	envelope, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return TypeBad, nil, &CorruptedError{Key: key, Reason: "truncated zlib stream"}
	}

	nul := bytes.IndexByte(envelope, 0)
	if nul < 0 {
		return TypeBad, nil, &CorruptedError{Key: key, Reason: "missing envelope terminator"}
	}
	header := string(envelope[:nul])
	content := envelope[nul+1:]

	token, lenText, ok := strings.Cut(header, " ")
	if !ok {
		return TypeBad, nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("malformed envelope header %q", header)}
	}
	t, err := ParseType(token)
	if err != nil {
		return TypeBad, nil, &CorruptedError{Key: key, Reason: err.Error()}
	}
	length, err := strconv.Atoi(lenText)
	if err != nil || length != len(content) {
		return TypeBad, nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("envelope length %q does not match content size %d", lenText, len(content))}
	}

	return t, content, nil
}
