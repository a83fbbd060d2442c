package selsort

import "fmt"

// None marks an unset pointer.
const None = -1

type Counters struct {
	Iterations  int
	Comparisons int
	Swaps       int
}

// State is the full progress record of one sort pass.
// Finalized grows as a prefix 0..k-1 until the pass completes.
type State struct {
	Values    []int
	Finalized []int
	Current   int
	Compare   int
	Min       int
	Counters
	Done bool
}

// New returns an idle state over a copy of values.
func New(values []int) State {
	v := make([]int, len(values))
	copy(v, values)
	return State{
		Values:    v,
		Finalized: make([]int, 0, len(values)),
		Current:   None,
		Compare:   None,
		Min:       None,
	}
}

func (s State) Len() int { return len(s.Values) }

func (s State) Clone() State {
	c := s
	c.Values = make([]int, len(s.Values))
	copy(c.Values, s.Values)
	c.Finalized = make([]int, len(s.Finalized), cap(s.Finalized))
	copy(c.Finalized, s.Finalized)
	return c
}

func (s State) IsFinalized(i int) bool {
	for _, f := range s.Finalized {
		if f == i {
			return true
		}
	}
	return false
}

// Started reports whether any micro-step has been taken since regeneration.
func (s State) Started() bool {
	return s.Iterations > 0 || s.Done
}

// Validate checks the structural invariants that Step relies on.
func (s State) Validate() error {
	n := len(s.Values)
	if len(s.Finalized) > n {
		return &StateError{Reason: "more finalized indices than values", State: s}
	}
	for k, f := range s.Finalized {
		if f != k {
			return &StateError{Reason: "finalized indices are not a prefix", State: s}
		}
	}
	if s.Done && len(s.Finalized) != n {
		return &StateError{Reason: "done before every index is finalized", State: s}
	}
	if s.Compare == None {
		if s.Current != None || s.Min != None {
			return &StateError{Reason: "pointers set while idle", State: s}
		}
		return nil
	}
	if s.Done {
		return &StateError{Reason: "pointers set after completion", State: s}
	}
	if s.Current != len(s.Finalized) {
		return &StateError{Reason: "current is not the first unfinalized index", State: s}
	}
	if s.Min < s.Current || s.Min >= s.Compare || s.Compare > n {
		return &StateError{Reason: "pointer order violated", State: s}
	}
	return nil
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseComparing
	PhaseFinalize
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseComparing:
		return "comparing"
	case PhaseFinalize:
		return "finalize"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Phase derives the tag of the next micro-step from the pointers.
func (s State) Phase() Phase {
	switch {
	case s.Done:
		return PhaseDone
	case s.Compare == None:
		return PhaseIdle
	case s.Compare < len(s.Values):
		return PhaseComparing
	default:
		return PhaseFinalize
	}
}

type EventKind int

const (
	EventNone EventKind = iota
	EventIterationStart
	EventCompare
	EventSwap
	EventInPlace
	EventDone
)

var eventNames = map[EventKind]string{
	EventNone:           "none",
	EventIterationStart: "start",
	EventCompare:        "compare",
	EventSwap:           "swap",
	EventInPlace:        "in-place",
	EventDone:           "done",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(name string) (EventKind, error) {
	for k, n := range eventNames {
		if n == name {
			return k, nil
		}
	}
	return EventNone, fmt.Errorf("selsort: unknown event kind %q", name)
}

// Event describes the micro-step Step just performed. Pointer fields hold
// the values they had while the step ran.
type Event struct {
	Kind       EventKind
	Current    int
	Compare    int
	Min        int
	NewMinimum bool
}
