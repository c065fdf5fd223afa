package repo

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/odvcencio/gitobj/pkg/object"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

// writeRawObject bypasses the typed wrappers to seed fixture objects.
func writeRawObject(t *testing.T, r *Repository, typ object.Type, data []byte) object.Oid {
	t.Helper()
	id, err := r.store.Write(typ, data)
	if err != nil {
		t.Fatalf("seed %s object: %v", typ, err)
	}
	return id
}

func writeBlob(t *testing.T, r *Repository, data string) object.Oid {
	t.Helper()
	return writeRawObject(t, r, object.TypeBlob, []byte(data))
}

// writeCommit seeds a minimal commit over a single-file tree and
// returns its id and payload length.
func writeCommit(t *testing.T, r *Repository, message string) (object.Oid, int) {
	t.Helper()
	blobID := writeBlob(t, r, "fixture content\n")
	treeID := writeRawObject(t, r, object.TypeTree, object.MarshalTree(&object.TreeObj{
		Entries: []object.TreeEntry{{Mode: 0o100644, ID: blobID, Name: "file.txt"}},
	}))
	payload := object.MarshalCommit(&object.CommitObj{
		Tree:      treeID,
		Author:    object.Identity{Name: "Ada", Email: "ada@example.com", When: 1700000000},
		Committer: object.Identity{Name: "Ada", Email: "ada@example.com", When: 1700000000},
		Message:   message,
	})
	return writeRawObject(t, r, object.TypeCommit, payload), len(payload)
}

func TestOpenRejectsNonStore(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Open on a non-store dir should fail")
	}
}

func TestOpenAfterInit(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Open(dir); err != nil {
		t.Fatalf("Open: %v", err)
	}
}

func TestContains(t *testing.T) {
	r := newTestRepo(t)
	id := writeBlob(t, r, "present")

	ok, err := r.Contains(id.String())
	if err != nil || !ok {
		t.Errorf("Contains(written) = %v, %v; want true", ok, err)
	}

	missing := object.HashObject(object.TypeBlob, []byte("absent"))
	ok, err = r.Contains(missing.String())
	if err != nil || ok {
		t.Errorf("Contains(missing) = %v, %v; want false", ok, err)
	}

	if _, err := r.Contains("nothex"); !errors.Is(err, object.ErrInvalidOid) {
		t.Errorf("Contains(bad hex) = %v, want ErrInvalidOid", err)
	}
}

func TestLookupMissingCarriesOriginalKey(t *testing.T) {
	r := newTestRepo(t)
	hex := strings.ToUpper(object.HashObject(object.TypeBlob, []byte("nope")).String())

	_, err := r.Lookup(hex, object.TypeAny)
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("Lookup missing = %v, want ErrNotFound", err)
	}
	var nf *object.NotFoundError
	if !errors.As(err, &nf) || nf.Key != hex {
		t.Errorf("not-found should carry the caller's text %q, got %v", hex, err)
	}
}

func TestLookupTypeFilter(t *testing.T) {
	r := newTestRepo(t)
	id := writeBlob(t, r, "typed")

	obj, err := r.Lookup(id.String(), object.TypeBlob)
	if err != nil {
		t.Fatalf("Lookup with matching filter: %v", err)
	}
	if obj.Type() != object.TypeBlob {
		t.Errorf("Type = %s, want blob", obj.Type())
	}

	if _, err := r.Lookup(id.String(), object.TypeCommit); !errors.Is(err, object.ErrInvalidType) {
		t.Errorf("Lookup with wrong filter = %v, want ErrInvalidType", err)
	}
}

func TestLookupCorrupted(t *testing.T) {
	r := newTestRepo(t)
	// A commit payload that does not parse: stored fine, wrapped never.
	id := writeRawObject(t, r, object.TypeCommit, []byte("not a commit"))

	if _, err := r.Lookup(id.String(), object.TypeAny); !errors.Is(err, object.ErrCorrupted) {
		t.Errorf("Lookup corrupted payload = %v, want ErrCorrupted", err)
	}
}

func TestReadRawEndToEnd(t *testing.T) {
	r := newTestRepo(t)
	commitID, payloadLen := writeCommit(t, r, "end to end\n")

	typ, data, err := r.ReadRaw(commitID.String())
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if typ != object.TypeCommit {
		t.Errorf("type = %s, want commit", typ)
	}
	if len(data) != payloadLen {
		t.Errorf("payload length = %d, want %d", len(data), payloadLen)
	}

	// Repeated reads must be byte-identical.
	_, again, err := r.ReadRaw(commitID.String())
	if err != nil {
		t.Fatalf("ReadRaw again: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("repeated ReadRaw returned different bytes")
	}

	if _, _, err := r.ReadRaw("zz"); !errors.Is(err, object.ErrInvalidOid) {
		t.Errorf("ReadRaw(bad hex) = %v, want ErrInvalidOid", err)
	}
}

func TestWriteThenLookup(t *testing.T) {
	r := newTestRepo(t)
	commitID, _ := writeCommit(t, r, "lookup me\n")

	ok, err := r.Contains(commitID.String())
	if err != nil || !ok {
		t.Fatalf("Contains after write = %v, %v; want true", ok, err)
	}

	obj, err := r.Lookup(commitID.String(), object.TypeAny)
	if err != nil {
		t.Fatalf("Lookup after write: %v", err)
	}
	id, hasID := obj.ID()
	if !hasID || id != commitID {
		t.Errorf("looked-up object id = %s (ok=%v), want %s", id, hasID, commitID)
	}
	if obj.Origin() != Borrowed {
		t.Errorf("looked-up object should be Borrowed, got %s", obj.Origin())
	}
}
