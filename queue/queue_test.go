package queue

import (
	"errors"
	"testing"
)

func names(q *Queue) []string {
	items := q.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddAdmission(t *testing.T) {
	q := New(10)

	if _, err := q.Add("small.pdf", make([]byte, 10)); err != nil {
		t.Fatalf("Add small: %v", err)
	}
	_, err := q.Add("big.pdf", make([]byte, 11))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Add big: err = %v, want ErrFileTooLarge", err)
	}
	if q.Len() != 1 {
		t.Errorf("oversized file must not enter the queue, len=%d", q.Len())
	}
}

func TestAddNoLimit(t *testing.T) {
	q := New(0)
	if _, err := q.Add("any.pdf", make([]byte, 1<<20)); err != nil {
		t.Fatalf("Add with no limit: %v", err)
	}
}

func TestUniqueIDs(t *testing.T) {
	q := New(0)
	a, _ := q.Add("a.pdf", []byte("x"))
	b, _ := q.Add("b.pdf", []byte("y"))
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids must be unique and non-empty: %q vs %q", a.ID, b.ID)
	}
}

func TestMoveTo(t *testing.T) {
	q := New(0)
	var ids []string
	for _, n := range []string{"a", "b", "c", "d"} {
		it, _ := q.Add(n, []byte(n))
		ids = append(ids, it.ID)
	}

	if !q.MoveTo(ids[3], 0) {
		t.Fatal("MoveTo returned false for known id")
	}
	if got := names(q); !equal(got, []string{"d", "a", "b", "c"}) {
		t.Errorf("move to front: %v", got)
	}

	q.MoveTo(ids[3], 2)
	if got := names(q); !equal(got, []string{"a", "b", "d", "c"}) {
		t.Errorf("move to middle: %v", got)
	}

	// Clamped targets.
	q.MoveTo(ids[0], 99)
	if got := names(q); !equal(got, []string{"b", "d", "c", "a"}) {
		t.Errorf("move past end: %v", got)
	}
	q.MoveTo(ids[0], -5)
	if got := names(q); !equal(got, []string{"a", "b", "d", "c"}) {
		t.Errorf("move before start: %v", got)
	}

	if q.MoveTo("nope", 0) {
		t.Error("MoveTo of unknown id should report false")
	}
}

func TestRemove(t *testing.T) {
	q := New(0)
	a, _ := q.Add("a", []byte("x"))
	q.Add("b", []byte("y"))

	if !q.Remove(a.ID) {
		t.Fatal("Remove returned false for known id")
	}
	if got := names(q); !equal(got, []string{"b"}) {
		t.Errorf("after remove: %v", got)
	}
	if q.Remove(a.ID) {
		t.Error("second Remove should report false")
	}
}
