package repo

import (
	"fmt"

	"github.com/odvcencio/gitobj/pkg/object"
)

// Tag is the annotated-tag variant: a name, message, optional tagger,
// and a polymorphic target object.
//
// The target reference is shared: SetTarget retains the new target and
// drops the tag's reference to the previous one, but a caller still
// holding the old target keeps a valid object.
type Tag struct {
	core
	obj    object.TagObj
	target Object
}

func (t *Tag) Type() object.Type {
	return object.TypeTag
}

func (t *Tag) ReadRaw() ([]byte, error) {
	return t.readRaw()
}

// Write serializes the tag. The target must have been set and written
// (it needs an id to be referenced); otherwise Write fails before the
// store is touched.
func (t *Tag) Write() (object.Oid, error) {
	if t.target == nil {
		return object.Oid{}, fmt.Errorf("write tag %q: target not set", t.obj.Name)
	}
	id, ok := t.target.ID()
	if !ok {
		return object.Oid{}, fmt.Errorf("write tag %q: target has not been written", t.obj.Name)
	}
	t.obj.Target = id
	t.obj.TargetType = t.target.Type()
	return t.writeRaw(object.TypeTag, object.MarshalTag(&t.obj))
}

// Target returns the tag's resolved target object, or nil if no target
// has been set. Only a freshly constructed, never-targeted tag has a
// nil target: a stored tag that fails to resolve is never exposed,
// because Lookup fails first.
func (t *Tag) Target() Object {
	return t.target
}

// SetTarget replaces the tag's target. The previous reference is
// released (a caller's own reference to it stays valid) and the stored
// target id and type are updated from the new object.
func (t *Tag) SetTarget(target Object) error {
	if target == nil {
		return fmt.Errorf("set tag target: target must be a non-nil Object")
	}
	t.target = target
	t.obj.TargetType = target.Type()
	if id, ok := target.ID(); ok {
		t.obj.Target = id
	} else {
		t.obj.Target = object.Oid{}
	}
	return nil
}

// TargetType returns the stored kind of the target; ok is false while
// no target is set.
func (t *Tag) TargetType() (object.Type, bool) {
	if t.target == nil {
		return object.TypeBad, false
	}
	return t.obj.TargetType, true
}

// Name returns the tag's name.
func (t *Tag) Name() string {
	return t.obj.Name
}

// SetName replaces the tag's name.
func (t *Tag) SetName(name string) {
	t.obj.Name = name
}

// Message returns the tag's message.
func (t *Tag) Message() string {
	return t.obj.Message
}

// SetMessage replaces the tag's message.
func (t *Tag) SetMessage(message string) {
	t.obj.Message = message
}

// Tagger returns the tagger identity; ok is false when the tag carries
// none.
func (t *Tag) Tagger() (object.Identity, bool) {
	return t.obj.Tagger, !t.obj.Tagger.IsZero()
}

// SetTagger replaces the tagger identity.
func (t *Tag) SetTagger(id object.Identity) {
	t.obj.Tagger = id
}

// wrapTag decodes a stored tag and eagerly resolves its target. A tag
// whose target is dangling fails the lookup itself, so a resolvable Tag
// always exposes a live target.
func (r *Repository) wrapTag(id object.Oid, data []byte) (*Tag, error) {
	obj, err := object.UnmarshalTag(id.String(), data)
	if err != nil {
		return nil, err
	}
	target, err := r.lookup(obj.Target, object.TypeAny)
	if err != nil {
		return nil, fmt.Errorf("lookup tag %s: resolve target: %w", id, err)
	}
	return &Tag{core: borrowed(r, id), obj: *obj, target: target}, nil
}
