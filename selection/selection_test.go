package selection

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		pageCount int
		want      []int
	}{
		{"single pages", "1,3,5", 10, []int{0, 2, 4}},
		{"range", "2-4", 10, []int{1, 2, 3}},
		{"reversed range", "4-2", 10, []int{1, 2, 3}},
		{"mixed with spaces", " 1-3 , 5 ", 10, []int{0, 1, 2, 4}},
		{"duplicates collapse", "1,1,1-2", 10, []int{0, 1}},
		{"out of range dropped", "1,99", 5, []int{0}},
		{"range clamped", "3-99", 5, []int{2, 3, 4}},
		{"garbage tokens dropped", "a,1,x-y,3", 5, []int{0, 2}},
		{"zero and negatives clamped", "0-2,-1", 5, []int{0, 1}},
		{"empty", "", 5, []int{}},
		{"only garbage", "foo, bar", 5, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in, tt.pageCount)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q, %d) = %v, want %v", tt.in, tt.pageCount, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want string
	}{
		{"empty", nil, ""},
		{"single", []int{0}, "1"},
		{"run merges", []int{0, 1, 2, 4}, "1-3, 5"},
		{"unsorted input", []int{4, 0, 2, 1}, "1-3, 5"},
		{"all singles", []int{0, 2, 4}, "1, 3, 5"},
		{"duplicates ignored", []int{1, 1, 2}, "2-3"},
		{"two runs", []int{0, 1, 5, 6, 7}, "1-2, 6-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// Parse(Format(S)) == S for arbitrary valid sets.
	sets := [][]int{
		{0},
		{0, 1, 2},
		{0, 2, 4, 6},
		{0, 1, 2, 4, 9},
		{3, 4, 5, 7, 8, 19},
	}
	for _, s := range sets {
		text := Format(s)
		got := Parse(text, 20)
		if !reflect.DeepEqual(got, s) {
			t.Errorf("round trip of %v via %q = %v", s, text, got)
		}
		// Parsing the formatter's own output must be stable.
		if again := Parse(Format(got), 20); !reflect.DeepEqual(again, got) {
			t.Errorf("reparse of %q unstable: %v != %v", Format(got), again, got)
		}
	}
}

func TestRoundTripNormalizes(t *testing.T) {
	// "1,2,3" and "1-3" describe the same set; formatting normalizes.
	a := Parse("1,2,3", 10)
	b := Parse("1-3", 10)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("equivalent inputs parsed differently: %v vs %v", a, b)
	}
	if got := Format(a); got != "1-3" {
		t.Errorf("Format = %q, want \"1-3\"", got)
	}
}

func TestModel(t *testing.T) {
	m := New(5)

	m.Toggle(2)
	m.Toggle(0)
	if got := m.Text(); got != "1, 3" {
		t.Errorf("after toggles Text() = %q, want \"1, 3\"", got)
	}
	m.Toggle(1)
	if got := m.Text(); got != "1-3" {
		t.Errorf("after third toggle Text() = %q, want \"1-3\"", got)
	}
	m.Toggle(1)
	if got := m.Text(); got != "1, 3" {
		t.Errorf("toggle off Text() = %q, want \"1, 3\"", got)
	}

	m.SelectAll()
	if m.Count() != 5 || m.Text() != "1-5" {
		t.Errorf("SelectAll: count=%d text=%q", m.Count(), m.Text())
	}

	m.Clear()
	if m.Count() != 0 || m.Text() != "" {
		t.Errorf("Clear: count=%d text=%q", m.Count(), m.Text())
	}

	m.SetText("2-4, 99, junk")
	if got := m.Indices(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("SetText indices = %v", got)
	}
	// SetText keeps the user's raw text until normalized.
	if m.Text() != "2-4, 99, junk" {
		t.Errorf("SetText should preserve raw text, got %q", m.Text())
	}
	if m.Normalize() != "2-4" {
		t.Errorf("Normalize = %q, want \"2-4\"", m.Text())
	}

	m.Toggle(-1)
	m.Toggle(5)
	if m.Count() != 3 {
		t.Errorf("out-of-range toggles must be ignored, count=%d", m.Count())
	}
}
