package selsort

import "context"

// Step advances s by exactly one micro-step and returns the new state.
// s itself is left untouched.
func Step(s State) (State, Event) {
	n := len(s.Values)

	switch s.Phase() {
	case PhaseDone:
		return s, Event{Kind: EventNone, Current: None, Compare: None, Min: None}

	case PhaseIdle:
		next := s.Clone()
		if len(s.Finalized) >= n {
			next.Done = true
			next.Finalized = next.Finalized[:0]
			for i := 0; i < n; i++ {
				next.Finalized = append(next.Finalized, i)
			}
			next.Current, next.Compare, next.Min = None, None, None
			return next, Event{Kind: EventDone, Current: None, Compare: None, Min: None}
		}
		i := len(s.Finalized)
		next.Current, next.Compare, next.Min = i, i+1, i
		next.Iterations++
		return next, Event{Kind: EventIterationStart, Current: i, Compare: i + 1, Min: i}

	case PhaseComparing:
		next := s
		ev := Event{Kind: EventCompare, Current: s.Current, Compare: s.Compare, Min: s.Min}
		next.Comparisons++
		if s.Values[s.Compare] < s.Values[s.Min] {
			next.Min = s.Compare
			ev.NewMinimum = true
		}
		next.Compare++
		return next, ev
	}

	// PhaseFinalize: Compare == n.
	next := s.Clone()
	ev := Event{Kind: EventInPlace, Current: s.Current, Compare: s.Compare, Min: s.Min}
	if s.Min != s.Current {
		next.Values[s.Current], next.Values[s.Min] = next.Values[s.Min], next.Values[s.Current]
		next.Swaps++
		ev.Kind = EventSwap
	}
	next.Finalized = append(next.Finalized, s.Current)
	next.Current, next.Compare, next.Min = None, None, None
	return next, ev
}

// MaxSteps bounds the number of micro-steps a pass over n values can take:
// one start and one finalize per position, every comparison, and the final
// transition to done.
func MaxSteps(n int) int {
	return 2*n + n*(n-1)/2 + 1
}

// Observer is notified after every micro-step of Run.
type Observer interface {
	OnStep(tick int, ev Event, s State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(tick int, ev Event, s State)

func (f ObserverFunc) OnStep(tick int, ev Event, s State) { f(tick, ev, s) }

// Run steps s until it is done. obs may be nil.
func Run(ctx context.Context, s State, obs Observer) (State, error) {
	limit := MaxSteps(len(s.Values))
	for tick := 1; s.Phase() != PhaseDone; tick++ {
		if tick > limit {
			return s, ErrStepLimit
		}
		select {
		case <-ctx.Done():
			return s, ErrCanceled
		default:
		}
		var ev Event
		s, ev = Step(s)
		if obs != nil {
			obs.OnStep(tick, ev, s)
		}
	}
	return s, nil
}
