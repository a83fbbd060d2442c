package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg carries the generation it was scheduled under.
type tickMsg struct {
	gen int
	at  time.Time
}

// ticker keeps at most one tick pending. tea.Tick cannot be withdrawn once
// issued, so cancel bumps the generation and accept drops any tick that was
// scheduled under an older one.
type ticker struct {
	gen     int
	pending bool
}

func (t *ticker) schedule(d time.Duration) tea.Cmd {
	t.gen++
	t.pending = true
	gen := t.gen
	return tea.Tick(d, func(at time.Time) tea.Msg { return tickMsg{gen: gen, at: at} })
}

func (t *ticker) cancel() {
	t.gen++
	t.pending = false
}

func (t *ticker) accept(msg tickMsg) bool {
	if !t.pending || msg.gen != t.gen {
		return false
	}
	t.pending = false
	return true
}
