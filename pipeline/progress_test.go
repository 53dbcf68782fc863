package pipeline

import (
	"reflect"
	"testing"
)

func TestTrackerMonotone(t *testing.T) {
	var got []int
	tr := NewTracker(func(p int) { got = append(got, p) },
		Phase{"load", 1}, Phase{"work", 3})

	tr.Step(0, 1, 2)
	tr.Step(0, 2, 2)
	tr.Step(1, 1, 3)
	tr.Step(1, 2, 3)
	tr.Step(1, 3, 3)
	tr.Finish()

	last := -1
	for _, p := range got {
		if p < last || p > 100 {
			t.Fatalf("progress sequence invalid: %v", got)
		}
		last = p
	}
	if got[len(got)-1] != 100 {
		t.Fatalf("must end at exactly 100: %v", got)
	}
}

func TestTrackerEqualSplit(t *testing.T) {
	var got []int
	tr := NewTracker(func(p int) { got = append(got, p) },
		Phase{"merge", 1}, Phase{"number", 1})

	tr.FinishPhase(0)
	tr.FinishPhase(1)

	if !reflect.DeepEqual(got, []int{50, 100}) {
		t.Errorf("50/50 phase budget expected, got %v", got)
	}
}

func TestTrackerDedupes(t *testing.T) {
	var got []int
	tr := NewTracker(func(p int) { got = append(got, p) }, Phase{"work", 1})

	tr.Step(0, 1, 10)
	tr.Step(0, 1, 10)
	tr.Step(0, 2, 10)

	if !reflect.DeepEqual(got, []int{10, 20}) {
		t.Errorf("duplicate percentages must not repeat: %v", got)
	}
}

func TestTrackerOverflowClamped(t *testing.T) {
	var got []int
	tr := NewTracker(func(p int) { got = append(got, p) }, Phase{"work", 1})

	tr.Step(0, 5, 2)
	if !reflect.DeepEqual(got, []int{100}) {
		t.Errorf("overshoot must clamp to 100: %v", got)
	}
}

func TestTrackerNilReport(t *testing.T) {
	tr := NewTracker(nil, Phase{"work", 1})
	tr.Step(0, 1, 1)
	tr.Finish()
}
