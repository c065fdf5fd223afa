package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// CommitObj is the decoded payload of a commit object.
type CommitObj struct {
	Tree      Oid
	Parents   []Oid
	Author    Identity
	Committer Identity
	Signature string // opaque single-line signature token, empty if unsigned
	Message   string
}

// TagObj is the decoded payload of an annotated tag object. Target is
// the id of the tagged object and TargetType its stored kind.
type TagObj struct {
	Target     Oid
	TargetType Type
	Name       string
	Tagger     Identity // zero value when the tag carries no tagger line
	Message    string
}

// TreeEntry is one (mode, id, name) record inside a tree payload.
type TreeEntry struct {
	Mode uint32
	ID   Oid
	Name string
}

// TreeObj is the decoded payload of a tree object. Entry order is owned
// by the model layer; the codec preserves it verbatim.
type TreeObj struct {
	Entries []TreeEntry
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a commit payload:
//
//	tree <40hex>
//	parent <40hex>      (zero or more)
//	author Name <email> when +0000
//	committer Name <email> when +0000
//	gpgsig <token>      (optional)
//
//	<message>
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.Tree)
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "committer %s\n", c.Committer)
	if c.Signature != "" {
		fmt.Fprintf(&buf, "gpgsig %s\n", c.Signature)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a commit payload. Decode failures surface as
// *CorruptedError keyed by key.
func UnmarshalCommit(key string, data []byte) (*CommitObj, error) {
	header, message, err := splitPayload(key, data)
	if err != nil {
		return nil, err
	}

	c := &CommitObj{Message: message}
	for _, line := range header {
		field, val, _ := strings.Cut(line, " ")
		switch field {
		case "tree":
			if c.Tree, err = ParseOid(val); err != nil {
				return nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("bad tree id %q", val)}
			}
		case "parent":
			p, err := ParseOid(val)
			if err != nil {
				return nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("bad parent id %q", val)}
			}
			c.Parents = append(c.Parents, p)
		case "author":
			if c.Author, err = parseIdentity(val); err != nil {
				return nil, &CorruptedError{Key: key, Reason: err.Error()}
			}
		case "committer":
			if c.Committer, err = parseIdentity(val); err != nil {
				return nil, &CorruptedError{Key: key, Reason: err.Error()}
			}
		case "gpgsig":
			c.Signature = val
		default:
			return nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("unknown commit header %q", field)}
		}
	}
	if c.Tree.IsZero() {
		return nil, &CorruptedError{Key: key, Reason: "commit has no tree header"}
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Tag
// ---------------------------------------------------------------------------

// MarshalTag serializes a tag payload:
//
//	object <40hex>
//	type <token>
//	tag <name>
//	tagger Name <email> when +0000   (optional)
//
//	<message>
func MarshalTag(t *TagObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "object %s\n", t.Target)
	fmt.Fprintf(&buf, "type %s\n", t.TargetType)
	fmt.Fprintf(&buf, "tag %s\n", t.Name)
	if !t.Tagger.IsZero() {
		fmt.Fprintf(&buf, "tagger %s\n", t.Tagger)
	}
	buf.WriteByte('\n')
	buf.WriteString(t.Message)
	return buf.Bytes()
}

// UnmarshalTag parses a tag payload, failing with *CorruptedError.
func UnmarshalTag(key string, data []byte) (*TagObj, error) {
	header, message, err := splitPayload(key, data)
	if err != nil {
		return nil, err
	}

	t := &TagObj{Message: message}
	for _, line := range header {
		field, val, _ := strings.Cut(line, " ")
		switch field {
		case "object":
			if t.Target, err = ParseOid(val); err != nil {
				return nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("bad target id %q", val)}
			}
		case "type":
			if t.TargetType, err = ParseType(val); err != nil {
				return nil, &CorruptedError{Key: key, Reason: err.Error()}
			}
		case "tag":
			t.Name = val
		case "tagger":
			if t.Tagger, err = parseIdentity(val); err != nil {
				return nil, &CorruptedError{Key: key, Reason: err.Error()}
			}
		default:
			return nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("unknown tag header %q", field)}
		}
	}
	if t.Target.IsZero() {
		return nil, &CorruptedError{Key: key, Reason: "tag has no object header"}
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// MarshalTree serializes a tree payload, one entry per line:
//
//	<octal mode> <40hex> <name>
//
// The name comes last so it may contain spaces.
func MarshalTree(tr *TreeObj) []byte {
	var buf bytes.Buffer
	for _, e := range tr.Entries {
		fmt.Fprintf(&buf, "%o %s %s\n", e.Mode, e.ID, e.Name)
	}
	return buf.Bytes()
}

// UnmarshalTree parses a tree payload, failing with *CorruptedError.
func UnmarshalTree(key string, data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return tr, nil
	}
	for _, line := range strings.Split(text, "\n") {
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 {
			return nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("malformed tree entry %q", line)}
		}
		mode, err := strconv.ParseUint(parts[0], 8, 32)
		if err != nil {
			return nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("bad entry mode %q", parts[0])}
		}
		id, err := ParseOid(parts[1])
		if err != nil {
			return nil, &CorruptedError{Key: key, Reason: fmt.Sprintf("bad entry id %q", parts[1])}
		}
		tr.Entries = append(tr.Entries, TreeEntry{
			Mode: uint32(mode),
			ID:   id,
			Name: parts[2],
		})
	}
	return tr, nil
}

// splitPayload separates the header lines from the message at the first
// blank line.
func splitPayload(key string, data []byte) ([]string, string, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, "", &CorruptedError{Key: key, Reason: "missing header/message separator"}
	}
	return strings.Split(string(data[:idx]), "\n"), string(data[idx+2:]), nil
}
