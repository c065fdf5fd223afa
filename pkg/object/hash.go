package object

import (
	"crypto/sha1"
	"fmt"
)

// HashObject computes the content address of an object: SHA-1 over the
// envelope "<type> <len>\x00<content>", mirroring Git's loose object
// hashing. The same type and content always produce the same id.
func HashObject(t Type, data []byte) Oid {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", t, len(data))
	h.Write(data)
	var id Oid
	copy(id[:], h.Sum(nil))
	return id
}
