package object

import "fmt"

// Type identifies the kind of object stored. The numeric values are the
// store's wire codes and are passed through to callers unchanged.
type Type int

const (
	// TypeAny is a lookup filter matching every object kind. It is not
	// a storable type.
	TypeAny Type = -2
	// TypeBad is returned when a type token cannot be decoded.
	TypeBad Type = -1

	TypeCommit Type = 1
	TypeTree   Type = 2
	TypeBlob   Type = 3
	TypeTag    Type = 4
)

// Valid reports whether t names a concrete storable object kind.
func (t Type) Valid() bool {
	switch t {
	case TypeCommit, TypeTree, TypeBlob, TypeTag:
		return true
	}
	return false
}

// String returns the canonical envelope token for t.
func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	case TypeTag:
		return "tag"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// ParseType decodes a canonical envelope token. Unknown tokens yield
// TypeBad and an error.
func ParseType(token string) (Type, error) {
	switch token {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	case "tag":
		return TypeTag, nil
	}
	return TypeBad, fmt.Errorf("unknown object type %q", token)
}
