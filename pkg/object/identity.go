package object

import (
	"fmt"
	"strconv"
	"strings"
)

// Identity names a person plus the moment they acted: committer, author
// or tagger. When is seconds since the Unix epoch. A plain value, safe
// to copy and compare.
type Identity struct {
	Name  string
	Email string
	When  int64
}

// IsZero reports whether id carries no information at all.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// String renders the canonical header form: "Name <email> when +0000".
// Timestamps are stored as plain UTC seconds, so the offset is fixed.
func (id Identity) String() string {
	return fmt.Sprintf("%s <%s> %d +0000", id.Name, id.Email, id.When)
}

// parseIdentity inverts Identity.String. The email sits between the
// last "<" and the following ">", which keeps names containing angle
// brackets out of scope without guessing.
func parseIdentity(s string) (Identity, error) {
	open := strings.LastIndex(s, "<")
	if open < 0 {
		return Identity{}, fmt.Errorf("malformed identity %q: missing email", s)
	}
	end := strings.Index(s[open:], ">")
	if end < 0 {
		return Identity{}, fmt.Errorf("malformed identity %q: unterminated email", s)
	}
	end += open

	id := Identity{
		Name:  strings.TrimSpace(s[:open]),
		Email: s[open+1 : end],
	}

	rest := strings.Fields(s[end+1:])
	if len(rest) < 1 {
		return Identity{}, fmt.Errorf("malformed identity %q: missing timestamp", s)
	}
	when, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("malformed identity %q: bad timestamp: %w", s, err)
	}
	id.When = when
	return id, nil
}
