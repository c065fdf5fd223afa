package repo

import (
	"errors"
	"testing"

	"github.com/odvcencio/gitobj/pkg/object"
)

func TestNewCreatesOwnedVariants(t *testing.T) {
	r := newTestRepo(t)

	kinds := []object.Type{object.TypeCommit, object.TypeTree, object.TypeBlob, object.TypeTag}
	for _, kind := range kinds {
		obj, err := New(r, kind)
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		if obj.Type() != kind {
			t.Errorf("Type = %s, want %s", obj.Type(), kind)
		}
		if obj.Origin() != Owned {
			t.Errorf("%s: Origin = %s, want owned", kind, obj.Origin())
		}
		if _, ok := obj.ID(); ok {
			t.Errorf("%s: fresh object should have no id", kind)
		}
		data, err := obj.ReadRaw()
		if err != nil || data != nil {
			t.Errorf("%s: ReadRaw on unwritten object = %v, %v; want nil, nil", kind, data, err)
		}
		if obj.Repo() != r {
			t.Errorf("%s: Repo should return the binding repository", kind)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	r := newTestRepo(t)

	if _, err := New(r, object.TypeAny); !errors.Is(err, object.ErrInvalidType) {
		t.Errorf("New(TypeAny) = %v, want ErrInvalidType", err)
	}
	if _, err := New(r, object.Type(99)); !errors.Is(err, object.ErrInvalidType) {
		t.Errorf("New(99) = %v, want ErrInvalidType", err)
	}
	if _, err := New(nil, object.TypeBlob); err == nil {
		t.Error("New(nil repo) should fail")
	}
}

func TestObjectIDAssignedOnFirstWrite(t *testing.T) {
	r := newTestRepo(t)
	obj, err := New(r, object.TypeTree)
	if err != nil {
		t.Fatal(err)
	}
	tree := obj.(*Tree)

	if _, ok := tree.ID(); ok {
		t.Fatal("unwritten tree should have no id")
	}
	id, err := tree.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, ok := tree.ID()
	if !ok || got != id {
		t.Errorf("after write ID = %s (ok=%v), want %s", got, ok, id)
	}

	// Owned objects stay Owned after a write; the tag tracks where the
	// wrapper came from, not whether it has been persisted.
	if tree.Origin() != Owned {
		t.Errorf("Origin after write = %s, want owned", tree.Origin())
	}
}

func TestObjectRewriteMayChangeID(t *testing.T) {
	r := newTestRepo(t)
	blobID := writeBlob(t, r, "entry target")

	obj, err := New(r, object.TypeTree)
	if err != nil {
		t.Fatal(err)
	}
	tree := obj.(*Tree)
	first, err := tree.Write()
	if err != nil {
		t.Fatalf("first Write: %v", err)
	}

	if err := tree.AddEntry(blobID.String(), "file.txt", 0o100644); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	second, err := tree.Write()
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if first == second {
		t.Error("changed content should be assigned a new id")
	}
	got, _ := tree.ID()
	if got != second {
		t.Errorf("ID = %s, want latest write %s", got, second)
	}
}
