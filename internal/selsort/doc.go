// Package selsort implements selection sort as a tick-driven state machine.
//
// Each call to [Step] performs exactly one micro-step of the algorithm so a
// driver can render every pointer movement:
//
//   - [PhaseIdle]: between iterations; the next step starts an iteration or
//     finishes the sort
//   - [PhaseComparing]: one comparison of Values[Compare] against Values[Min]
//   - [PhaseFinalize]: swap the minimum into place and finalize Current
//   - [PhaseDone]: terminal
//
// # Example
//
//	s := selsort.New([]int{5, 3, 8, 1})
//	for s.Phase() != selsort.PhaseDone {
//		s, _ = selsort.Step(s)
//	}
//
// # Ownership
//
// A [State] has a single owner. [Step] never mutates its argument, so a
// driver may keep old states around (pause, trace, replay) without copying.
package selsort
