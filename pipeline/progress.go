package pipeline

// Phase is one weighted slice of a job's progress budget.
type Phase struct {
	Name   string
	Weight int
}

// Tracker converts per-phase step counts into a single 0-100 percentage.
// Emitted values never regress and never exceed 100; Finish always lands on
// exactly 100. Phases are assumed to run in declaration order.
type Tracker struct {
	report  func(int)
	phases  []Phase
	total   int
	current int
	last    int
}

// NewTracker builds a tracker over the given phases. report may be nil.
func NewTracker(report func(int), phases ...Phase) *Tracker {
	if report == nil {
		report = func(int) {}
	}
	t := &Tracker{report: report, phases: phases, last: -1}
	for _, p := range phases {
		t.total += p.Weight
	}
	return t
}

func (t *Tracker) emit(pct int) {
	if pct > 100 {
		pct = 100
	}
	if pct <= t.last {
		return
	}
	t.last = pct
	t.report(pct)
}

func (t *Tracker) weightBefore(phase int) int {
	w := 0
	for i := 0; i < phase && i < len(t.phases); i++ {
		w += t.phases[i].Weight
	}
	return w
}

// Step records that done of total units finished within the given phase.
func (t *Tracker) Step(phase, done, total int) {
	if t.total == 0 || phase < 0 || phase >= len(t.phases) {
		return
	}
	if total <= 0 {
		total = 1
	}
	if done > total {
		done = total
	}
	t.current = phase
	within := t.phases[phase].Weight * done / total
	t.emit((t.weightBefore(phase) + within) * 100 / t.total)
}

// FinishPhase marks the phase fully complete.
func (t *Tracker) FinishPhase(phase int) { t.Step(phase, 1, 1) }

// Finish drives progress to exactly 100.
func (t *Tracker) Finish() {
	t.last = 99
	t.emit(100)
}
