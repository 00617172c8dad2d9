package abnferr

import "testing"

func TestCollectEmpty(t *testing.T) {
	if err := Collect(nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestCollectSingleLeaf(t *testing.T) {
	want := &ValidationError{Index: 1, Message: "boom"}
	err := Collect([]error{want})
	if err != want {
		t.Fatalf("want single error returned bare, got %v", err)
	}
}

func TestCollectFlattensNestedCollections(t *testing.T) {
	leaf1 := &ValidationError{Index: 1, Message: "one"}
	leaf2 := &ValidationError{Index: 2, Message: "two"}
	leaf3 := &ValidationError{Index: 3, Message: "three"}
	nested := &ErrorCollection{Errors: []*ValidationError{leaf2, leaf3}}

	err := Collect([]error{leaf1, nested})
	coll, ok := err.(*ErrorCollection)
	if !ok {
		t.Fatalf("want *ErrorCollection, got %T", err)
	}
	if len(coll.Errors) != 3 {
		t.Fatalf("want 3 flattened errors, got %d", len(coll.Errors))
	}
	if coll.Errors[0] != leaf1 || coll.Errors[1] != leaf2 || coll.Errors[2] != leaf3 {
		t.Fatalf("unexpected flattened order: %+v", coll.Errors)
	}
}
