package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitobj/pkg/object"
)

// Commit is the commit variant: a tree reference, parent ids, author
// and committer identities, and a message.
type Commit struct {
	core
	obj object.CommitObj
}

func (c *Commit) Type() object.Type {
	return object.TypeCommit
}

func (c *Commit) ReadRaw() ([]byte, error) {
	return c.readRaw()
}

// Write serializes the commit. A commit with no tree set fails before
// the store is touched; the store would happily persist it, but a
// treeless commit is never resolvable into anything useful.
func (c *Commit) Write() (object.Oid, error) {
	if c.obj.Tree.IsZero() {
		if c.hasID {
			return object.Oid{}, fmt.Errorf("write commit %s: tree not set", c.id)
		}
		return object.Oid{}, fmt.Errorf("write new commit: tree not set")
	}
	return c.writeRaw(object.TypeCommit, object.MarshalCommit(&c.obj))
}

// Message returns the full commit message.
func (c *Commit) Message() string {
	return c.obj.Message
}

// MessageShort returns the first line of the message, truncated to 80
// characters if the line runs longer.
func (c *Commit) MessageShort() string {
	short := c.obj.Message
	if idx := strings.IndexByte(short, '\n'); idx >= 0 {
		short = short[:idx]
	}
	if len(short) > 80 {
		short = short[:80]
	}
	return short
}

// SetMessage replaces the commit message.
func (c *Commit) SetMessage(message string) {
	c.obj.Message = message
}

// CommitTime returns the committer's timestamp in seconds since the
// epoch. Read-only; it changes through SetCommitter.
func (c *Commit) CommitTime() int64 {
	return c.obj.Committer.When
}

func (c *Commit) Committer() object.Identity {
	return c.obj.Committer
}

func (c *Commit) SetCommitter(id object.Identity) {
	c.obj.Committer = id
}

func (c *Commit) Author() object.Identity {
	return c.obj.Author
}

func (c *Commit) SetAuthor(id object.Identity) {
	c.obj.Author = id
}

// TreeID returns the id of the commit's tree; ok is false when no tree
// has been set.
func (c *Commit) TreeID() (object.Oid, bool) {
	return c.obj.Tree, !c.obj.Tree.IsZero()
}

// SetTree points the commit at a tree id.
func (c *Commit) SetTree(id object.Oid) {
	c.obj.Tree = id
}

// Tree resolves the commit's tree through the Repository.
func (c *Commit) Tree() (*Tree, error) {
	if c.obj.Tree.IsZero() {
		return nil, fmt.Errorf("commit has no tree")
	}
	obj, err := c.repo.lookup(c.obj.Tree, object.TypeTree)
	if err != nil {
		return nil, err
	}
	return obj.(*Tree), nil
}

// ParentIDs returns the parent commit ids in order.
func (c *Commit) ParentIDs() []object.Oid {
	out := make([]object.Oid, len(c.obj.Parents))
	copy(out, c.obj.Parents)
	return out
}

// AddParent appends a parent commit id.
func (c *Commit) AddParent(id object.Oid) {
	c.obj.Parents = append(c.obj.Parents, id)
}

// Signature returns the opaque signature token, empty if unsigned.
func (c *Commit) Signature() string {
	return c.obj.Signature
}

// SetSignature attaches an opaque signature token to the commit.
func (c *Commit) SetSignature(sig string) {
	c.obj.Signature = sig
}
