package viz

import (
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/sortviz/internal/selsort"
)

func active(values []int, finalized []int, current, compare, min int) selsort.State {
	s := selsort.New(values)
	s.Finalized = append(s.Finalized, finalized...)
	s.Current, s.Compare, s.Min = current, compare, min
	return s
}

func TestRoleOfPrecedence(t *testing.T) {
	s := active([]int{1, 9, 4, 7, 3}, []int{0}, 1, 3, 2)

	want := []Role{RoleSorted, RoleCurrent, RoleMinimum, RoleComparing, RoleDefault}
	for i, r := range want {
		if got := RoleOf(s, i); got != r {
			t.Errorf("index %d: expected %v, got %v", i, r, got)
		}
	}

	// minimum outranks current when they coincide
	s = active([]int{1, 2, 3}, nil, 0, 1, 0)
	if got := RoleOf(s, 0); got != RoleMinimum {
		t.Errorf("expected minimum to win over current, got %v", got)
	}
}

func TestPointers(t *testing.T) {
	s := active([]int{5, 3, 8, 1}, nil, 0, 2, 1)
	tests := []struct {
		index int
		want  []string
	}{
		{0, []string{"i"}},
		{1, []string{"min"}},
		{2, []string{"j"}},
		{3, nil},
	}
	for _, tt := range tests {
		if got := Pointers(s, tt.index); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("index %d: expected %v, got %v", tt.index, tt.want, got)
		}
	}

	s = active([]int{5, 3}, nil, 0, 1, 0)
	if got := Pointers(s, 0); !reflect.DeepEqual(got, []string{"i"}) {
		t.Errorf("min on current should be hidden, got %v", got)
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		n, columns, want int
	}{
		{10, 100, 9},
		{50, 100, 1},
		{5, 100, 19},
		{0, 100, 1},
		{200, 100, 1},
	}
	for _, tt := range tests {
		if got := BarWidth(tt.n, tt.columns); got != tt.want {
			t.Errorf("BarWidth(%d, %d): expected %d, got %d", tt.n, tt.columns, tt.want, got)
		}
	}
}

func TestBarHeight(t *testing.T) {
	if h := BarHeight(104, 104, 14); h != 14 {
		t.Errorf("expected full height, got %d", h)
	}
	if h := BarHeight(52, 104, 14); h != 7 {
		t.Errorf("expected half height, got %d", h)
	}
	if h := BarHeight(1, 104, 14); h != 1 {
		t.Errorf("expected floor of one row, got %d", h)
	}
	if h := BarHeight(0, 104, 14); h != 0 {
		t.Errorf("expected zero for zero value, got %d", h)
	}
}

func TestBuildFrame(t *testing.T) {
	s := active([]int{10, 20, 40}, nil, 0, 1, 0)
	f := BuildFrame(s, true, FrameOptions{Columns: 30, Rows: 8})

	if len(f.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(f.Bars))
	}
	if f.Bars[2].Height != 8 || f.Bars[0].Height != 2 {
		t.Errorf("expected heights scaled to max value, got %d and %d", f.Bars[0].Height, f.Bars[2].Height)
	}
	if f.Bars[0].Width != 9 {
		t.Errorf("expected width 9, got %d", f.Bars[0].Width)
	}
	if f.Bars[1].Role != RoleComparing {
		t.Errorf("expected comparing role, got %v", f.Bars[1].Role)
	}
	if !strings.HasPrefix(f.Status, "Comparing") {
		t.Errorf("unexpected status %q", f.Status)
	}
}

func TestStatus(t *testing.T) {
	fresh := selsort.New([]int{3, 1, 2})
	tests := []struct {
		name    string
		state   selsort.State
		running bool
		want    string
	}{
		{"not started", fresh, false, "Press Start to begin sorting"},
		{"idle while running", fresh, true, "Starting new iteration..."},
		{"comparing", active([]int{3, 1, 2}, nil, 0, 2, 1), true, "Comparing elements at positions [1] and [2]"},
		{"swap pending", active([]int{3, 1, 2}, nil, 0, 3, 1), true, "Swapping elements at positions [0] and [1]"},
		{"in place", active([]int{1, 3, 2}, nil, 0, 3, 0), true, "Element at position [0] is already in the correct position"},
		{"all finalized", active([]int{1, 2, 3}, []int{0, 1, 2}, selsort.None, selsort.None, selsort.None), false, "Array is fully sorted!"},
	}

	for _, tt := range tests {
		if got := Status(tt.state, tt.running); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}

	paused, _ := selsort.Step(fresh)
	if got := Status(paused, false); !strings.HasPrefix(got, "Paused") {
		t.Errorf("expected paused status, got %q", got)
	}
}

func TestRenderBarsHidesLabelsWhenNarrow(t *testing.T) {
	s := selsort.New(make([]int, 50))
	for i := range s.Values {
		s.Values[i] = i + 1
	}
	out := RenderBars(BuildFrame(s, false, FrameOptions{}), ThemeTailwind)
	if strings.Contains(out, "[0]") {
		t.Error("index labels should be hidden for one-column bars")
	}

	s = selsort.New([]int{5, 3, 8, 1})
	out = RenderBars(BuildFrame(s, false, FrameOptions{}), ThemeTailwind)
	if !strings.Contains(out, "[3]") {
		t.Error("expected index labels for wide bars")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != ThemeTailwind.Name {
		t.Error("unknown theme should fall back to tailwind")
	}
	th := ThemeTailwind
	for range Themes {
		th = th.Next()
	}
	if th.Name != ThemeTailwind.Name {
		t.Errorf("cycling through all themes should wrap, got %s", th.Name)
	}
	if ThemeTailwind.Color(RoleSorted) != ThemeTailwind.Sorted {
		t.Error("sorted role should use the sorted color")
	}
}
