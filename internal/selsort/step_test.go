package selsort_test

import (
	"context"
	"math/rand"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/selsort"
)

// stepUntil advances s until pred holds, failing after MaxSteps.
func stepUntil(s selsort.State, pred func(selsort.State) bool) selsort.State {
	for i := 0; i <= selsort.MaxSteps(s.Len()); i++ {
		if pred(s) {
			return s
		}
		s, _ = selsort.Step(s)
	}
	Fail("predicate never held")
	return s
}

func runToDone(values []int) (selsort.State, []selsort.Event) {
	var events []selsort.Event
	s, err := selsort.Run(context.Background(), selsort.New(values), selsort.ObserverFunc(func(_ int, ev selsort.Event, st selsort.State) {
		Expect(st.Validate()).To(Succeed())
		events = append(events, ev)
	}))
	Expect(err).NotTo(HaveOccurred())
	return s, events
}

var _ = Describe("Step", func() {
	Describe("the [5,3,8,1] walkthrough", func() {
		var s selsort.State

		BeforeEach(func() {
			s = selsort.New([]int{5, 3, 8, 1})
		})

		It("starts an iteration without comparing", func() {
			next, ev := selsort.Step(s)
			Expect(ev.Kind).To(Equal(selsort.EventIterationStart))
			Expect(next.Current).To(Equal(0))
			Expect(next.Compare).To(Equal(1))
			Expect(next.Min).To(Equal(0))
			Expect(next.Iterations).To(Equal(1))
			Expect(next.Comparisons).To(BeZero())
		})

		It("tracks the minimum through the first pass and swaps it into place", func() {
			var ev selsort.Event
			s, _ = selsort.Step(s)

			s, ev = selsort.Step(s)
			Expect(ev.Kind).To(Equal(selsort.EventCompare))
			Expect(ev.NewMinimum).To(BeTrue())
			Expect(s.Min).To(Equal(1))

			s, ev = selsort.Step(s)
			Expect(ev.NewMinimum).To(BeFalse())
			Expect(s.Min).To(Equal(1))

			s, ev = selsort.Step(s)
			Expect(ev.NewMinimum).To(BeTrue())
			Expect(s.Min).To(Equal(3))
			Expect(s.Phase()).To(Equal(selsort.PhaseFinalize))

			s, ev = selsort.Step(s)
			Expect(ev.Kind).To(Equal(selsort.EventSwap))
			Expect(s.Values).To(Equal([]int{1, 3, 8, 5}))
			Expect(s.Finalized).To(Equal([]int{0}))
			Expect(s.Phase()).To(Equal(selsort.PhaseIdle))
			Expect(s.Current).To(Equal(selsort.None))
			Expect(s.Min).To(Equal(selsort.None))
		})

		It("leaves an element that is already in place", func() {
			s = stepUntil(s, func(st selsort.State) bool { return len(st.Finalized) == 1 })
			s = stepUntil(s, func(st selsort.State) bool { return st.Phase() == selsort.PhaseFinalize })
			Expect(s.Min).To(Equal(s.Current))

			var ev selsort.Event
			s, ev = selsort.Step(s)
			Expect(ev.Kind).To(Equal(selsort.EventInPlace))
			Expect(s.Swaps).To(Equal(1))
			Expect(s.Finalized).To(Equal([]int{0, 1}))
		})

		It("ends sorted with the expected counters", func() {
			done, events := runToDone([]int{5, 3, 8, 1})
			Expect(done.Values).To(Equal([]int{1, 3, 5, 8}))
			Expect(done.Done).To(BeTrue())
			Expect(done.Finalized).To(Equal([]int{0, 1, 2, 3}))
			Expect(done.Iterations).To(Equal(4))
			Expect(done.Comparisons).To(Equal(6))
			Expect(done.Swaps).To(Equal(2))
			Expect(events).To(HaveLen(selsort.MaxSteps(4)))
			Expect(events[len(events)-1].Kind).To(Equal(selsort.EventDone))
		})
	})

	It("keeps the first occurrence of a duplicated minimum", func() {
		s := selsort.New([]int{4, 2, 7, 2})
		s = stepUntil(s, func(st selsort.State) bool { return st.Phase() == selsort.PhaseFinalize })
		Expect(s.Min).To(Equal(1))
	})

	It("does not mutate the state it is given", func() {
		s := selsort.New([]int{2, 1})
		s = stepUntil(s, func(st selsort.State) bool { return st.Phase() == selsort.PhaseFinalize })
		before := s.Clone()
		_, _ = selsort.Step(s)
		Expect(s).To(Equal(before))
	})

	It("is a no-op once done", func() {
		done, _ := runToDone([]int{1})
		next, ev := selsort.Step(done)
		Expect(ev.Kind).To(Equal(selsort.EventNone))
		Expect(next).To(Equal(done))
	})

	It("finishes an empty array in one step", func() {
		next, ev := selsort.Step(selsort.New(nil))
		Expect(ev.Kind).To(Equal(selsort.EventDone))
		Expect(next.Done).To(BeTrue())
	})

	DescribeTable("sorting properties",
		func(values []int) {
			n := len(values)
			want := append([]int(nil), values...)
			sort.Ints(want)

			done, events := runToDone(values)
			Expect(done.Values).To(Equal(want))
			Expect(done.Comparisons).To(Equal(n * (n - 1) / 2))
			Expect(done.Swaps).To(BeNumerically("<=", max(n-1, 0)))
			Expect(done.Iterations).To(Equal(n))

			perIteration := map[int]int{}
			for _, ev := range events {
				switch ev.Kind {
				case selsort.EventCompare:
					perIteration[ev.Current]++
				case selsort.EventSwap:
					Expect(ev.Min).NotTo(Equal(ev.Current))
				case selsort.EventInPlace:
					Expect(ev.Min).To(Equal(ev.Current))
				}
			}
			for i := 0; i < n-1; i++ {
				Expect(perIteration[i]).To(Equal(n-i-1), "comparisons in iteration starting at %d", i)
			}
		},
		Entry("single element", []int{42}),
		Entry("already sorted", []int{1, 2, 3, 4, 5}),
		Entry("reversed", []int{9, 7, 5, 3, 1}),
		Entry("all equal", []int{6, 6, 6, 6}),
		Entry("duplicates", []int{3, 1, 3, 1, 2, 2}),
	)

	It("sorts random arrays with duplicates", func() {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 50; trial++ {
			n := 1 + rng.Intn(50)
			values := make([]int, n)
			for i := range values {
				values[i] = 5 + rng.Intn(10)
			}
			want := append([]int(nil), values...)
			sort.Ints(want)
			done, _ := runToDone(values)
			Expect(done.Values).To(Equal(want))
		}
	})
})

var _ = Describe("Run", func() {
	It("resumes exactly where a paused pass stopped", func() {
		values := []int{8, 6, 7, 5, 3, 0, 9}
		var straight []selsort.Event
		_, err := selsort.Run(context.Background(), selsort.New(values), selsort.ObserverFunc(func(_ int, ev selsort.Event, _ selsort.State) {
			straight = append(straight, ev)
		}))
		Expect(err).NotTo(HaveOccurred())

		s := selsort.New(values)
		var resumed []selsort.Event
		for i := 0; i < 11; i++ {
			var ev selsort.Event
			s, ev = selsort.Step(s)
			resumed = append(resumed, ev)
		}
		paused := s.Clone()
		_, err = selsort.Run(context.Background(), paused, selsort.ObserverFunc(func(_ int, ev selsort.Event, _ selsort.State) {
			resumed = append(resumed, ev)
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(resumed).To(Equal(straight))
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s, err := selsort.Run(ctx, selsort.New([]int{3, 2, 1}), nil)
		Expect(err).To(MatchError(selsort.ErrCanceled))
		Expect(s.Started()).To(BeFalse())
	})
})

var _ = Describe("Validate", func() {
	It("rejects pointers set while idle", func() {
		s := selsort.New([]int{1, 2})
		s.Min = 1
		Expect(s.Validate()).To(MatchError(selsort.ErrInvalidState))
	})

	It("rejects a done state with unfinalized positions", func() {
		s := selsort.New([]int{4, 1, 3})
		s.Done = true
		Expect(s.Validate()).To(MatchError(selsort.ErrInvalidState))

		s.Finalized = []int{0, 1}
		Expect(s.Validate()).To(MatchError(selsort.ErrInvalidState))

		s.Finalized = []int{0, 1, 2}
		Expect(s.Validate()).To(Succeed())
	})

	It("accepts every state of a full run", func() {
		_, err := selsort.Run(context.Background(), selsort.New([]int{5, 3, 8, 1, 3}), selsort.ObserverFunc(func(_ int, _ selsort.Event, s selsort.State) {
			Expect(s.Validate()).To(Succeed())
		}))
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a minimum past the comparison pointer", func() {
		s := selsort.New([]int{1, 2, 3})
		s.Current, s.Compare, s.Min = 0, 1, 2
		Expect(s.Validate()).To(MatchError(selsort.ErrInvalidState))
	})
})

var _ = Describe("EventKind", func() {
	It("round-trips through its name", func() {
		for _, k := range []selsort.EventKind{selsort.EventIterationStart, selsort.EventCompare, selsort.EventSwap, selsort.EventInPlace, selsort.EventDone} {
			parsed, err := selsort.ParseEventKind(k.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(k))
		}
		_, err := selsort.ParseEventKind("bogus")
		Expect(err).To(HaveOccurred())
	})
})
