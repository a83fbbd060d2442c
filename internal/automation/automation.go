package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/logging"
	"gopkg.in/yaml.v3"
)

var logger = logging.GetLogger("automation")

// Scenario defines a scripted sequence of headless sorts
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single sort in a scenario. Preset supplies defaults
// that the other fields override when set.
type ScenarioStep struct {
	Preset    string `yaml:"preset"`
	Generator string `yaml:"generator"`
	Size      int    `yaml:"size"`
	Seed      int64  `yaml:"seed"`
	Low       int    `yaml:"low"`
	High      int    `yaml:"high"`
	Save      bool   `yaml:"save"`
}

// Saver persists a finished run and returns its id.
type Saver interface {
	Save(cfg experiment.Config, result *experiment.Result) (string, error)
}

// StepResult pairs a step's outcome with the run id it was saved under, if
// any.
type StepResult struct {
	Config experiment.Config
	Result *experiment.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Resolve turns a step into a normalized session config.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		cfg = p
	}
	if s.Generator != "" {
		cfg.Generator = s.Generator
	}
	if s.Size != 0 {
		cfg.Size = s.Size
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Low != 0 {
		cfg.Low = s.Low
	}
	if s.High != 0 {
		cfg.High = s.High
	}
	cfg.Normalize()
	return cfg, nil
}

// RunScenario executes all steps in order. saver may be nil, in which case
// Save flags are ignored.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, saver Saver) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(experiment.FromConfig(cfg))
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Config: exp.Config(), Result: result}
		if step.Save && saver != nil {
			if sr.RunID, err = saver.Save(sr.Config, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		logger.WithField("step", i+1).WithField("run", sr.RunID).Info("scenario step done")
		results = append(results, sr)
	}

	return results, nil
}

// SizeSweep sorts Runs arrays at every size from MinSize to MaxSize.
type SizeSweep struct {
	Generator string
	MinSize   int
	MaxSize   int
	Step      int
	Runs      int
	Seed      int64
	Low       int
	High      int
}

// SweepResult holds the aggregate counters at one size
type SweepResult struct {
	Size int
	experiment.Summary
}

// RunSweep executes a size sweep, one ensemble per size.
func RunSweep(ctx context.Context, sweep *SizeSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.Step < 1 {
		return nil, fmt.Errorf("sweep step must be positive, got %d", sweep.Step)
	}
	if sweep.MinSize < 1 || sweep.MaxSize < sweep.MinSize {
		return nil, fmt.Errorf("invalid sweep range %d..%d", sweep.MinSize, sweep.MaxSize)
	}

	results := make([]SweepResult, 0, (sweep.MaxSize-sweep.MinSize)/sweep.Step+1)
	for n := sweep.MinSize; n <= sweep.MaxSize; n += sweep.Step {
		base := experiment.Config{
			Size:      n,
			Generator: sweep.Generator,
			Low:       sweep.Low,
			High:      sweep.High,
		}
		runs, err := experiment.NewEnsemble(base, registry, sweep.Runs, sweep.Seed).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("size %d: %w", n, err)
		}
		results = append(results, SweepResult{Size: n, Summary: experiment.Summarize(runs)})
		logger.WithField("size", n).Debug("sweep point done")
	}

	return results, nil
}
