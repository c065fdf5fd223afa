package repo

import "github.com/odvcencio/gitobj/pkg/object"

// Blob is the blob variant. Blob content is read-only in this layer:
// there is deliberately no setter, and the gap is a documented
// limitation rather than an oversight. A freshly constructed Owned blob
// writes as the empty blob.
type Blob struct {
	core
}

func (b *Blob) Type() object.Type {
	return object.TypeBlob
}

func (b *Blob) ReadRaw() ([]byte, error) {
	return b.readRaw()
}

// Data returns the blob's content, delegating to the raw read. Nil for
// a never-written blob.
func (b *Blob) Data() ([]byte, error) {
	return b.readRaw()
}

// Write re-serializes the blob's current content. For a Borrowed blob
// the content is whatever the store holds, so the id is stable; for a
// never-written Owned blob this writes the empty blob.
func (b *Blob) Write() (object.Oid, error) {
	data, err := b.readRaw()
	if err != nil {
		return object.Oid{}, err
	}
	return b.writeRaw(object.TypeBlob, data)
}
