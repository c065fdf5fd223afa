// Package repo implements the object-model layer over a content-addressed
// store: a Repository facade resolving identifiers to typed Commit, Tree,
// Blob and Tag values, plus factories for building new objects and writing
// them back.
//
// Nothing here is safe for concurrent use. A Repository and the objects
// built through it expect one goroutine at a time, the same way a
// single-writer embedded database handle does. Sharing is about lifetime
// (many objects referencing one Repository), not mutual exclusion.
package repo

import (
	"fmt"

	"github.com/odvcencio/gitobj/pkg/object"
)

// Repository is an open handle to an object store. It is shared by every
// Object constructed through it and stays usable as long as anything
// references it; the loose backend holds no OS handle, so there is no
// Close.
type Repository struct {
	store object.Backend
}

// Init creates a new object store at path and returns a Repository over
// it. Fails if a store already exists there.
func Init(path string) (*Repository, error) {
	st, err := object.InitStore(path)
	if err != nil {
		return nil, err
	}
	return &Repository{store: st}, nil
}

// Open opens the object store rooted at path. The path is the only
// input; configuration knobs are deliberately not accepted. Fails if
// path is not a store root.
func Open(path string) (*Repository, error) {
	st, err := object.OpenStore(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return &Repository{store: st}, nil
}

// NewRepository wraps an arbitrary store backend. Useful when the
// backend is something other than the loose filesystem store.
func NewRepository(b object.Backend) *Repository {
	return &Repository{store: b}
}

// Contains reports whether the store holds an object named by the given
// hex id. Malformed hex fails with *object.InvalidOidError before the
// store is consulted.
func (r *Repository) Contains(hex string) (bool, error) {
	id, err := object.ParseOid(hex)
	if err != nil {
		return false, err
	}
	return r.store.Exists(id), nil
}

// Lookup resolves a hex id to a typed Object. With a filter other than
// TypeAny, an object of a different kind fails with ErrInvalidType. A
// missing object fails with *object.NotFoundError carrying the caller's
// text; the store cannot distinguish absence from an I/O failure, so
// both arrive as not-found. Returned objects are Borrowed: their data
// lives in the store and the wrapper is a view plus in-memory state.
func (r *Repository) Lookup(hex string, filter object.Type) (Object, error) {
	id, err := object.ParseOid(hex)
	if err != nil {
		return nil, err
	}

	obj, err := r.lookup(id, filter)
	if err != nil {
		// Re-key not-found on the caller's original text.
		if nf, ok := err.(*object.NotFoundError); ok && nf.Key == id.String() {
			return nil, &object.NotFoundError{Key: hex}
		}
		return nil, err
	}
	return obj, nil
}

// ReadRaw returns the stored type code and raw payload bytes for a hex
// id, bypassing the typed wrappers.
func (r *Repository) ReadRaw(hex string) (object.Type, []byte, error) {
	id, err := object.ParseOid(hex)
	if err != nil {
		return object.TypeBad, nil, err
	}
	return r.store.Read(id)
}

// lookup resolves an already-parsed id.
func (r *Repository) lookup(id object.Oid, filter object.Type) (Object, error) {
	t, data, err := r.store.Read(id)
	if err != nil {
		return nil, err
	}
	if filter != object.TypeAny && filter != t {
		return nil, fmt.Errorf("lookup %s: %w: have %s, want %s", id, object.ErrInvalidType, t, filter)
	}
	return r.wrap(t, id, data)
}

// wrap builds the Borrowed variant for stored payload bytes.
func (r *Repository) wrap(t object.Type, id object.Oid, data []byte) (Object, error) {
	switch t {
	case object.TypeCommit:
		obj, err := object.UnmarshalCommit(id.String(), data)
		if err != nil {
			return nil, err
		}
		return &Commit{core: borrowed(r, id), obj: *obj}, nil
	case object.TypeTree:
		obj, err := object.UnmarshalTree(id.String(), data)
		if err != nil {
			return nil, err
		}
		return &Tree{core: borrowed(r, id), entries: obj.Entries}, nil
	case object.TypeBlob:
		return &Blob{core: borrowed(r, id)}, nil
	case object.TypeTag:
		return r.wrapTag(id, data)
	}
	return nil, fmt.Errorf("lookup %s: %w: store returned %s", id, object.ErrInvalidType, t)
}
