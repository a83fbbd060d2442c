package viz

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/selsort"
)

// Role is the visual category of one bar.
type Role int

const (
	RoleDefault Role = iota
	RoleComparing
	RoleCurrent
	RoleMinimum
	RoleSorted
)

func (r Role) String() string {
	switch r {
	case RoleComparing:
		return "comparing"
	case RoleCurrent:
		return "current"
	case RoleMinimum:
		return "minimum"
	case RoleSorted:
		return "sorted"
	}
	return "default"
}

const (
	DefaultColumns = 100
	DefaultRows    = 14
	minBarWidth    = 1
)

// RoleOf applies the precedence sorted > minimum > current > comparing.
func RoleOf(s selsort.State, i int) Role {
	switch {
	case s.IsFinalized(i):
		return RoleSorted
	case i == s.Min:
		return RoleMinimum
	case i == s.Current:
		return RoleCurrent
	case i == s.Compare:
		return RoleComparing
	}
	return RoleDefault
}

// Pointers lists the labels drawn above index i. min is hidden when it
// coincides with i.
func Pointers(s selsort.State, i int) []string {
	var p []string
	if i == s.Current {
		p = append(p, "i")
	}
	if i == s.Min && i != s.Current {
		p = append(p, "min")
	}
	if i == s.Compare {
		p = append(p, "j")
	}
	return p
}

type Bar struct {
	Index    int
	Value    int
	Height   int
	Width    int
	Role     Role
	Pointers []string
}

// FrameOptions sizes the bar area. Zero fields take defaults; a zero
// MaxValue scales to the largest value in the array.
type FrameOptions struct {
	Columns  int
	Rows     int
	MaxValue int
}

type Frame struct {
	Bars    []Bar
	Rows    int
	Status  string
	Running bool
	selsort.Counters
	Sorted int
	Total  int
}

// BarWidth shrinks bars as the array grows but never below one column.
func BarWidth(n, columns int) int {
	if n <= 0 {
		return minBarWidth
	}
	w := columns/n - 1
	if w < minBarWidth {
		return minBarWidth
	}
	return w
}

// BarHeight scales v against maxValue; positive values keep at least one row.
func BarHeight(v, maxValue, rows int) int {
	if v <= 0 || maxValue <= 0 {
		return 0
	}
	h := v * rows / maxValue
	if h < 1 {
		h = 1
	}
	if h > rows {
		h = rows
	}
	return h
}

// BuildFrame maps a state to everything the view draws. It has no side
// effects.
func BuildFrame(s selsort.State, running bool, opts FrameOptions) Frame {
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	maxValue := opts.MaxValue
	if maxValue <= 0 {
		for _, v := range s.Values {
			if v > maxValue {
				maxValue = v
			}
		}
	}

	width := BarWidth(s.Len(), opts.Columns)
	bars := make([]Bar, s.Len())
	for i, v := range s.Values {
		bars[i] = Bar{
			Index:    i,
			Value:    v,
			Height:   BarHeight(v, maxValue, opts.Rows),
			Width:    width,
			Role:     RoleOf(s, i),
			Pointers: Pointers(s, i),
		}
	}

	return Frame{
		Bars:     bars,
		Rows:     opts.Rows,
		Status:   Status(s, running),
		Running:  running,
		Counters: s.Counters,
		Sorted:   len(s.Finalized),
		Total:    s.Len(),
	}
}

// Status describes the step the engine will take next.
func Status(s selsort.State, running bool) string {
	if running {
		switch s.Phase() {
		case selsort.PhaseIdle:
			return "Starting new iteration..."
		case selsort.PhaseComparing:
			return fmt.Sprintf("Comparing elements at positions [%d] and [%d]", s.Min, s.Compare)
		case selsort.PhaseFinalize:
			if s.Min != s.Current {
				return fmt.Sprintf("Swapping elements at positions [%d] and [%d]", s.Current, s.Min)
			}
			return fmt.Sprintf("Element at position [%d] is already in the correct position", s.Current)
		}
	}
	if s.Done || len(s.Finalized) == s.Len() {
		return "Array is fully sorted!"
	}
	if s.Started() {
		return "Paused. Press Start to continue"
	}
	return "Press Start to begin sorting"
}
