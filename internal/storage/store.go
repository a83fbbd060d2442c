package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/selsort"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var stepsHeader = []string{"tick", "event", "current", "compare", "min", "new_min", "iterations", "comparisons", "swaps", "finalized", "values"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Generator    string    `json:"generator"`
	Timestamp    time.Time `json:"timestamp"`
	Seed         int64     `json:"seed"`
	Size         int       `json:"size"`
	Low          int       `json:"low"`
	High         int       `json:"high"`
	Initial      []int     `json:"initial"`
	Final        []int     `json:"final"`
	Iterations   int       `json:"iterations"`
	Comparisons  int       `json:"comparisons"`
	Swaps        int       `json:"swaps"`
	Steps        int       `json:"steps"`
	PerIteration []int     `json:"per_iteration"`
}

// StepRecord is one row of steps.csv.
type StepRecord struct {
	Tick       int
	Event      selsort.EventKind
	Current    int
	Compare    int
	Min        int
	NewMinimum bool
	selsort.Counters
	Finalized int
	Values    []int
}

func (s *Store) Save(cfg experiment.Config, result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Generator, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Generator:    cfg.Generator,
		Timestamp:    now,
		Seed:         cfg.Seed,
		Size:         cfg.Size,
		Low:          cfg.Low,
		High:         cfg.High,
		Initial:      result.Initial,
		Final:        result.Final.Values,
		Iterations:   result.Final.Iterations,
		Comparisons:  result.Final.Comparisons,
		Swaps:        result.Final.Swaps,
		Steps:        len(result.Frames),
		PerIteration: result.PerIteration,
	}

	if err := writeRun(runDir, meta, result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

// writeRun fills runDir with the metadata and steps files. On failure the
// directory is removed so List never sees a half-written run.
func writeRun(runDir string, meta RunMetadata, frames []experiment.Frame) error {
	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, stepsFile), func(w io.Writer) error {
			return WriteSteps(w, frames)
		})
	}
	if err != nil {
		os.RemoveAll(runDir)
		return err
	}
	return nil
}

// writeFile creates path, fills it with write and reports the close error
// too, since that is where a failed flush surfaces.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteSteps writes frames in the steps.csv layout.
func WriteSteps(out io.Writer, frames []experiment.Frame) error {
	w := csv.NewWriter(out)
	if err := w.Write(stepsHeader); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Tick),
			f.Event.Kind.String(),
			strconv.Itoa(f.State.Current),
			strconv.Itoa(f.State.Compare),
			strconv.Itoa(f.State.Min),
			strconv.FormatBool(f.Event.NewMinimum),
			strconv.Itoa(f.State.Iterations),
			strconv.Itoa(f.State.Comparisons),
			strconv.Itoa(f.State.Swaps),
			strconv.Itoa(len(f.State.Finalized)),
			joinInts(f.State.Values),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]StepRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stepsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []StepRecord{}, nil
	}

	steps := make([]StepRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		rec, err := parseStep(record)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", stepsFile, i+2, err)
		}
		steps = append(steps, rec)
	}
	return steps, nil
}

// ExportJSON writes the metadata and every step of a run to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	steps, err := s.LoadSteps(runID)
	if err != nil {
		return err
	}

	type exportStep struct {
		Tick        int    `json:"tick"`
		Event       string `json:"event"`
		Current     int    `json:"current"`
		Compare     int    `json:"compare"`
		Min         int    `json:"min"`
		NewMinimum  bool   `json:"new_min"`
		Iterations  int    `json:"iterations"`
		Comparisons int    `json:"comparisons"`
		Swaps       int    `json:"swaps"`
		Finalized   int    `json:"finalized"`
		Values      []int  `json:"values"`
	}
	out := struct {
		*RunMetadata
		Trace []exportStep `json:"trace"`
	}{RunMetadata: meta, Trace: make([]exportStep, len(steps))}
	for i, st := range steps {
		out.Trace[i] = exportStep{
			Tick: st.Tick, Event: st.Event.String(),
			Current: st.Current, Compare: st.Compare, Min: st.Min, NewMinimum: st.NewMinimum,
			Iterations: st.Iterations, Comparisons: st.Comparisons, Swaps: st.Swaps,
			Finalized: st.Finalized, Values: st.Values,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func parseStep(record []string) (StepRecord, error) {
	var rec StepRecord
	ints := make([]int, 0, 8)
	for _, idx := range []int{0, 2, 3, 4, 6, 7, 8, 9} {
		v, err := strconv.Atoi(record[idx])
		if err != nil {
			return rec, err
		}
		ints = append(ints, v)
	}
	kind, err := selsort.ParseEventKind(record[1])
	if err != nil {
		return rec, err
	}
	newMin, err := strconv.ParseBool(record[5])
	if err != nil {
		return rec, err
	}
	values, err := splitInts(record[10])
	if err != nil {
		return rec, err
	}

	rec.Tick, rec.Current, rec.Compare, rec.Min = ints[0], ints[1], ints[2], ints[3]
	rec.Iterations, rec.Comparisons, rec.Swaps, rec.Finalized = ints[4], ints[5], ints[6], ints[7]
	rec.Event, rec.NewMinimum, rec.Values = kind, newMin, values
	return rec, nil
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func splitInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	v := make([]int, len(fields))
	for i, f := range fields {
		x, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}
