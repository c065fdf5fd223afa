package repo

import (
	"fmt"

	"github.com/odvcencio/gitobj/pkg/object"
)

// Origin tags where an Object's data lives. Borrowed objects were
// resolved out of the store and their persisted form is the store's;
// Owned objects were built in memory and have no identifier until the
// first successful Write.
type Origin int

const (
	Borrowed Origin = iota
	Owned
)

func (o Origin) String() string {
	if o == Owned {
		return "owned"
	}
	return "borrowed"
}

// Object is the contract shared by Commit, Tree, Blob and Tag.
type Object interface {
	// Type returns the variant's kind. Total.
	Type() object.Type
	// ID returns the object's identifier. ok is false exactly when the
	// object is Owned and has never been written.
	ID() (id object.Oid, ok bool)
	// Origin returns the ownership tag.
	Origin() Origin
	// ReadRaw returns the stored payload bytes for this object's id.
	// A never-written Owned object has nothing to read and returns
	// (nil, nil).
	ReadRaw() ([]byte, error)
	// Write serializes the current in-memory state to the store and
	// assigns (or updates) the identifier. A second write re-serializes
	// and may yield a new id if the content changed.
	Write() (object.Oid, error)
	// Repo returns the Repository this object is bound to.
	Repo() *Repository
}

// core carries the fields every variant shares. Variants embed it and
// add their own state and accessors.
type core struct {
	repo   *Repository
	origin Origin
	id     object.Oid
	hasID  bool
}

func borrowed(r *Repository, id object.Oid) core {
	return core{repo: r, origin: Borrowed, id: id, hasID: true}
}

func owned(r *Repository) core {
	return core{repo: r, origin: Owned}
}

func (c *core) ID() (object.Oid, bool) {
	return c.id, c.hasID
}

func (c *core) Origin() Origin {
	return c.origin
}

func (c *core) Repo() *Repository {
	return c.repo
}

// readRaw fetches this object's stored bytes, or (nil, nil) when the
// object has never been written.
func (c *core) readRaw() ([]byte, error) {
	if !c.hasID {
		return nil, nil
	}
	_, data, err := c.repo.store.Read(c.id)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// writeRaw persists payload bytes and records the assigned id. The
// error carries the object's current id, or its absence, so a caller
// can tell which object failed.
func (c *core) writeRaw(t object.Type, payload []byte) (object.Oid, error) {
	id, err := c.repo.store.Write(t, payload)
	if err != nil {
		if c.hasID {
			return object.Oid{}, fmt.Errorf("write %s %s: %w", t, c.id, err)
		}
		return object.Oid{}, fmt.Errorf("write new %s: %w", t, err)
	}
	c.id = id
	c.hasID = true
	return id, nil
}

// New constructs an empty Owned object of the given kind bound to r.
// Only the four concrete kinds are accepted; TypeAny and anything
// unknown fail with ErrInvalidType.
func New(r *Repository, t object.Type) (Object, error) {
	if r == nil {
		return nil, fmt.Errorf("new %s: nil repository", t)
	}
	switch t {
	case object.TypeCommit:
		return &Commit{core: owned(r)}, nil
	case object.TypeTree:
		return &Tree{core: owned(r)}, nil
	case object.TypeBlob:
		return &Blob{core: owned(r)}, nil
	case object.TypeTag:
		return &Tag{core: owned(r)}, nil
	}
	return nil, fmt.Errorf("new object: %w: %s", object.ErrInvalidType, t)
}
