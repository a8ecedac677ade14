// Package tui runs cloudhop in the terminal with Bubble Tea, locally and
// over SSH. It maps keys to actions, paces the simulation and draws frames.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is a presentation frame; it carries the wall-clock time that the
// fixed-timestep stepper converts into simulation ticks.
type TickMsg time.Time

// tickCmd schedules the next frame at fps frames per second.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
