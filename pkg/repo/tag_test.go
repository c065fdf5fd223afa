package repo

import (
	"errors"
	"testing"

	"github.com/odvcencio/gitobj/pkg/object"
)

func newOwnedTag(t *testing.T, r *Repository) *Tag {
	t.Helper()
	obj, err := New(r, object.TypeTag)
	if err != nil {
		t.Fatalf("New(tag): %v", err)
	}
	return obj.(*Tag)
}

func TestFreshTagHasNoTarget(t *testing.T) {
	r := newTestRepo(t)
	tag := newOwnedTag(t, r)

	if tag.Target() != nil {
		t.Error("fresh tag should have nil target")
	}
	if _, ok := tag.TargetType(); ok {
		t.Error("fresh tag should have no target type")
	}
}

func TestSetTarget(t *testing.T) {
	r := newTestRepo(t)
	blobID := writeBlob(t, r, "tagged content")
	blob, err := r.Lookup(blobID.String(), object.TypeBlob)
	if err != nil {
		t.Fatal(err)
	}

	tag := newOwnedTag(t, r)
	if err := tag.SetTarget(blob); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}

	if tag.Target() != blob {
		t.Error("Target should return the object just set")
	}
	tt, ok := tag.TargetType()
	if !ok || tt != blob.Type() {
		t.Errorf("TargetType = %s (ok=%v), want %s", tt, ok, blob.Type())
	}

	if err := tag.SetTarget(nil); err == nil {
		t.Error("SetTarget(nil) should fail")
	}
}

func TestSetTargetReplacesAndSharesPrevious(t *testing.T) {
	r := newTestRepo(t)
	firstID := writeBlob(t, r, "first target")
	first, err := r.Lookup(firstID.String(), object.TypeBlob)
	if err != nil {
		t.Fatal(err)
	}
	commitID, _ := writeCommit(t, r, "second target\n")
	second, err := r.Lookup(commitID.String(), object.TypeAny)
	if err != nil {
		t.Fatal(err)
	}

	tag := newOwnedTag(t, r)
	if err := tag.SetTarget(first); err != nil {
		t.Fatal(err)
	}
	if err := tag.SetTarget(second); err != nil {
		t.Fatal(err)
	}

	if tag.Target() != second {
		t.Error("replacement target should be visible")
	}
	if tt, _ := tag.TargetType(); tt != object.TypeCommit {
		t.Errorf("TargetType after replacement = %s, want commit", tt)
	}

	// The caller's reference to the replaced target stays valid.
	data, err := first.(*Blob).Data()
	if err != nil || string(data) != "first target" {
		t.Errorf("previous target should remain usable, got %q, %v", data, err)
	}
}

func TestTagWriteValidation(t *testing.T) {
	r := newTestRepo(t)

	tag := newOwnedTag(t, r)
	tag.SetName("v0.1.0")
	tag.SetMessage("no target yet")
	if _, err := tag.Write(); err == nil {
		t.Error("Write without target should fail")
	}

	// A target that has never been written has no id to reference.
	unwritten, err := New(r, object.TypeTree)
	if err != nil {
		t.Fatal(err)
	}
	if err := tag.SetTarget(unwritten); err != nil {
		t.Fatal(err)
	}
	if _, err := tag.Write(); err == nil {
		t.Error("Write with an unwritten target should fail")
	}
}

func TestTagWriteLookupRoundTrip(t *testing.T) {
	r := newTestRepo(t)
	commitID, _ := writeCommit(t, r, "release me\n")
	target, err := r.Lookup(commitID.String(), object.TypeAny)
	if err != nil {
		t.Fatal(err)
	}

	tag := newOwnedTag(t, r)
	tag.SetName("v1.2.3")
	tag.SetMessage("release v1.2.3\n")
	tag.SetTagger(object.Identity{Name: "Rel Eng", Email: "rel@example.com", When: 1700001000})
	if err := tag.SetTarget(target); err != nil {
		t.Fatal(err)
	}

	id, err := tag.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	obj, err := r.Lookup(id.String(), object.TypeTag)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	loaded := obj.(*Tag)

	if loaded.Name() != "v1.2.3" || loaded.Message() != "release v1.2.3\n" {
		t.Errorf("metadata mismatch: %q / %q", loaded.Name(), loaded.Message())
	}
	tagger, ok := loaded.Tagger()
	if !ok || tagger.Name != "Rel Eng" {
		t.Errorf("Tagger = %+v (ok=%v)", tagger, ok)
	}

	// Lookup resolves the target eagerly; the tag always exposes a
	// live object.
	resolved := loaded.Target()
	if resolved == nil {
		t.Fatal("stored tag should come back with a resolved target")
	}
	if resolvedID, _ := resolved.ID(); resolvedID != commitID {
		t.Errorf("resolved target id = %s, want %s", resolvedID, commitID)
	}
	if tt, _ := loaded.TargetType(); tt != object.TypeCommit {
		t.Errorf("TargetType = %s, want commit", tt)
	}
}

func TestLookupTagWithDanglingTarget(t *testing.T) {
	r := newTestRepo(t)

	// Seed a tag whose target id was never written. The wrapper must
	// never be exposed half-resolved; the lookup itself fails.
	dangling := object.HashObject(object.TypeCommit, []byte("missing"))
	payload := object.MarshalTag(&object.TagObj{
		Target:     dangling,
		TargetType: object.TypeCommit,
		Name:       "broken",
		Message:    "points nowhere",
	})
	tagID := writeRawObject(t, r, object.TypeTag, payload)

	_, err := r.Lookup(tagID.String(), object.TypeTag)
	if !errors.Is(err, object.ErrNotFound) {
		t.Errorf("Lookup of tag with dangling target = %v, want ErrNotFound", err)
	}
}
