package object

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for the failure kinds the layer can report. Context
// (the offending key, index, or reason) travels in the wrapper types
// below; errors.Is against a sentinel matches the whole kind.
var (
	// ErrNotFound covers both a missing object and an I/O failure
	// during lookup. The loose store cannot tell the two apart, so
	// neither can we; the ambiguity is part of the contract.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidOid marks identifier text that is not 40 hex characters.
	ErrInvalidOid = errors.New("invalid object id")

	// ErrIndexOutOfRange marks a tree index outside [-len, len-1].
	ErrIndexOutOfRange = errors.New("tree index out of range")

	// ErrInvalidType marks a lookup whose result did not match the
	// requested type filter, or a factory call with a non-storable type.
	ErrInvalidType = errors.New("invalid object type")

	// ErrCorrupted marks stored bytes that cannot be decoded.
	ErrCorrupted = errors.New("corrupted object")

	// ErrEntryAssignment is returned on any attempt to replace a tree
	// entry wholesale. Entries are positionally owned by their tree;
	// use AddEntry or the entry's own setters.
	ErrEntryAssignment = errors.New("cannot set tree entry directly; use AddEntry")

	// ErrStaleEntry is returned by a TreeEntry whose tree has been
	// mutated since the entry was obtained.
	ErrStaleEntry = errors.New("stale tree entry: tree was modified")
)

// NotFoundError records the lookup key that produced no match. The key
// is the caller's original text, not a normalized form.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidOidError records identifier text that failed to parse.
type InvalidOidError struct {
	Value string
}

func (e *InvalidOidError) Error() string {
	return fmt.Sprintf("invalid hex object id %q", e.Value)
}

func (e *InvalidOidError) Is(target error) bool {
	return target == ErrInvalidOid
}

// IndexOutOfRangeError records a tree index outside the valid range.
type IndexOutOfRangeError struct {
	Index int
}

func (e *IndexOutOfRangeError) Error() string {
	return "tree index out of range: " + strconv.Itoa(e.Index)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// CorruptedError records stored bytes that could not be decoded, keyed
// by the id they were read under.
type CorruptedError struct {
	Key    string
	Reason string
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("corrupted object %s: %s", e.Key, e.Reason)
}

func (e *CorruptedError) Is(target error) bool {
	return target == ErrCorrupted
}
