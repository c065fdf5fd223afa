package repo

import (
	"github.com/odvcencio/gitobj/pkg/object"
)

// Tree is the tree variant: an ordered sequence of (name, mode, id)
// entries. Entry order is insertion order; nothing re-sorts behind the
// caller's back.
//
// Mutating a tree (AddEntry, Delete, DeleteByIndex) invalidates every
// TreeEntry obtained from it before the mutation. Stale entries do not
// silently read the wrong slot: their accessors fail with
// object.ErrStaleEntry.
type Tree struct {
	core
	entries []object.TreeEntry
	gen     uint64
}

func (t *Tree) Type() object.Type {
	return object.TypeTree
}

func (t *Tree) ReadRaw() ([]byte, error) {
	return t.readRaw()
}

// Write serializes the current entries. An empty tree is legal and
// writes the empty payload.
func (t *Tree) Write() (object.Oid, error) {
	return t.writeRaw(object.TypeTree, object.MarshalTree(&object.TreeObj{Entries: t.entries}))
}

// Len returns the current entry count.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Contains reports whether an entry with exactly that name exists.
func (t *Tree) Contains(name string) bool {
	return t.indexOf(name) >= 0
}

func (t *Tree) indexOf(name string) int {
	for i := range t.entries {
		if t.entries[i].Name == name {
			return i
		}
	}
	return -1
}

// fixIndex validates i against [-len, len-1] and normalizes negative
// values to len+i.
func (t *Tree) fixIndex(i int) (int, error) {
	n := len(t.entries)
	if i >= n || i < -n {
		return 0, &object.IndexOutOfRangeError{Index: i}
	}
	if i < 0 {
		i += n
	}
	return i, nil
}

// Entry returns the entry with the given name, or *object.NotFoundError
// keyed by the name.
func (t *Tree) Entry(name string) (*TreeEntry, error) {
	i := t.indexOf(name)
	if i < 0 {
		return nil, &object.NotFoundError{Key: name}
	}
	return t.view(i), nil
}

// EntryByIndex returns the entry at position i. Negative indices count
// from the end: valid positions are [-Len, Len-1], anything outside
// fails with *object.IndexOutOfRangeError.
func (t *Tree) EntryByIndex(i int) (*TreeEntry, error) {
	idx, err := t.fixIndex(i)
	if err != nil {
		return nil, err
	}
	return t.view(idx), nil
}

// Delete removes the entry with the given name, failing with
// *object.NotFoundError when no entry matches.
func (t *Tree) Delete(name string) error {
	i := t.indexOf(name)
	if i < 0 {
		return &object.NotFoundError{Key: name}
	}
	t.removeAt(i)
	return nil
}

// DeleteByIndex removes the entry at position i, with the same index
// semantics as EntryByIndex.
func (t *Tree) DeleteByIndex(i int) error {
	idx, err := t.fixIndex(i)
	if err != nil {
		return err
	}
	t.removeAt(idx)
	return nil
}

func (t *Tree) removeAt(i int) {
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	t.gen++
}

// SetEntry always fails with object.ErrEntryAssignment. Entries are
// positionally owned by the tree's storage and cannot be replaced
// wholesale; grow the tree with AddEntry or mutate fields through a
// TreeEntry's setters.
func (t *Tree) SetEntry(name string, e *TreeEntry) error {
	return object.ErrEntryAssignment
}

// AddEntry appends an entry for the object named by hex. Malformed hex
// fails with *object.InvalidOidError before the tree changes; either
// the entry is fully added or the tree is untouched.
func (t *Tree) AddEntry(hex string, name string, mode uint32) error {
	id, err := object.ParseOid(hex)
	if err != nil {
		return err
	}
	t.entries = append(t.entries, object.TreeEntry{Mode: mode, ID: id, Name: name})
	t.gen++
	return nil
}

func (t *Tree) view(i int) *TreeEntry {
	return &TreeEntry{tree: t, idx: i, gen: t.gen}
}

// TreeEntry is a transient view of one slot in a Tree. It holds a
// non-owning back-reference to its tree and is valid only until the
// tree's next mutation; after that every accessor fails with
// object.ErrStaleEntry. It is never persisted on its own.
type TreeEntry struct {
	tree *Tree
	idx  int
	gen  uint64
}

// slot returns the underlying record, or ErrStaleEntry if the tree has
// been mutated since this view was created.
func (e *TreeEntry) slot() (*object.TreeEntry, error) {
	if e.gen != e.tree.gen {
		return nil, object.ErrStaleEntry
	}
	return &e.tree.entries[e.idx], nil
}

// Name returns the entry's name.
func (e *TreeEntry) Name() (string, error) {
	s, err := e.slot()
	if err != nil {
		return "", err
	}
	return s.Name, nil
}

// SetName renames the entry in place.
func (e *TreeEntry) SetName(name string) error {
	s, err := e.slot()
	if err != nil {
		return err
	}
	s.Name = name
	return nil
}

// Attributes returns the entry's file-mode bits.
func (e *TreeEntry) Attributes() (uint32, error) {
	s, err := e.slot()
	if err != nil {
		return 0, err
	}
	return s.Mode, nil
}

// SetAttributes replaces the entry's file-mode bits.
func (e *TreeEntry) SetAttributes(mode uint32) error {
	s, err := e.slot()
	if err != nil {
		return err
	}
	s.Mode = mode
	return nil
}

// ID returns the entry's target id.
func (e *TreeEntry) ID() (object.Oid, error) {
	s, err := e.slot()
	if err != nil {
		return object.Oid{}, err
	}
	return s.ID, nil
}

// SetID repoints the entry at the object named by hex, parsing first.
func (e *TreeEntry) SetID(hex string) error {
	id, err := object.ParseOid(hex)
	if err != nil {
		return err
	}
	s, err := e.slot()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// ToObject resolves the entry's target through the owning tree's
// Repository. A dangling reference fails with *object.NotFoundError
// keyed by the target's hex id. The result is a fresh Borrowed object
// whose lifetime is independent of this entry.
func (e *TreeEntry) ToObject() (Object, error) {
	s, err := e.slot()
	if err != nil {
		return nil, err
	}
	return e.tree.repo.lookup(s.ID, object.TypeAny)
}
