package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/selsort"
	"github.com/sirupsen/logrus"
)

var logger = logging.GetLogger("experiment")

type Config struct {
	Size      int
	Seed      int64
	Generator string
	Low       int
	High      int
}

// FromConfig takes the regeneration settings out of a session config.
func FromConfig(c *config.Config) Config {
	return Config{
		Size:      c.Size,
		Seed:      c.Seed,
		Generator: c.Generator,
		Low:       c.Low,
		High:      c.High,
	}
}

// Frame is one recorded micro-step.
type Frame struct {
	Tick  int
	Event selsort.Event
	State selsort.State
}

type Result struct {
	Initial []int
	Final   selsort.State
	Frames  []Frame
	// PerIteration[k] is the number of comparisons made in iteration k+1.
	PerIteration []int
}

type Experiment struct {
	cfg        Config
	generator  Generator
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (e *Experiment) Setup(r *Registry) error {
	g, err := r.Get(e.cfg.Generator)
	if err != nil {
		return err
	}
	e.generator = g
	return nil
}

func (e *Experiment) Config() Config { return e.cfg }

// Resize changes the array length used by later calls to Fresh.
func (e *Experiment) Resize(n int) {
	e.cfg.Size = n
}

// Fresh generates a new array and returns its idle state with zeroed
// counters. Successive calls draw from the same seeded source.
func (e *Experiment) Fresh() selsort.State {
	lo, hi := e.cfg.Low, e.cfg.High
	if hi < lo {
		hi = lo
	}
	values := e.generator.Generate(e.randSource, e.cfg.Size, lo, hi)
	logger.WithField("size", len(values)).Debug("generated array")
	return selsort.New(values)
}

// Run generates one array and sorts it headlessly, recording every frame.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	s := e.Fresh()
	res := &Result{
		Initial: append([]int(nil), s.Values...),
		Frames:  make([]Frame, 0, selsort.MaxSteps(s.Len())),
	}
	final, err := selsort.Run(ctx, s, res)
	if err != nil {
		return nil, err
	}
	res.Final = final
	logger.WithFields(logrus.Fields{
		"size":        final.Len(),
		"iterations":  final.Iterations,
		"comparisons": final.Comparisons,
		"swaps":       final.Swaps,
	}).Info("run complete")
	return res, nil
}

// OnStep records a frame; Result is the observer for Run.
func (r *Result) OnStep(tick int, ev selsort.Event, s selsort.State) {
	r.Frames = append(r.Frames, Frame{Tick: tick, Event: ev, State: s})
	switch ev.Kind {
	case selsort.EventIterationStart:
		r.PerIteration = append(r.PerIteration, 0)
	case selsort.EventCompare:
		r.PerIteration[len(r.PerIteration)-1]++
	}
}
