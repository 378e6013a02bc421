package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/transitkiosk/abfahrt/internal/board"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		// A paused board, or one with a fetch still outstanding, only
		// re-arms the timer; the next fetch never starts before the
		// previous result was delivered.
		if m.paused || m.fetchInFlight {
			return m, m.tickCmd()
		}
		m.fetchInFlight = true
		m.rearmOnApply = true
		return m, m.fetchCmd()

	case boardMsg:
		m.fetchInFlight = false
		m.apply(board.Result(msg))
		if m.rearmOnApply {
			m.rearmOnApply = false
			return m, m.tickCmd()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Refresh):
		// Manual refresh rides alongside the periodic timer: it does
		// not re-arm on delivery, so the cadence is unchanged.
		if m.paused || m.fetchInFlight {
			return m, nil
		}
		m.fetchInFlight = true
		return m, m.fetchCmd()
	}

	return m, nil
}

// apply installs one cycle's result as the new display state and
// publishes it for the HTTP API.
func (m *Model) apply(res board.Result) {
	m.latest = res
	m.haveResult = true
	m.lastUpdate = m.clk.Now()

	switch res.Kind {
	case board.KindOK:
		m.rows = res.Rows
		m.stale = false
	case board.KindNetworkError:
		// Keep the previous rows on screen, marked stale, rather than
		// blanking the kiosk on a transient failure.
		m.stale = len(m.rows) > 0
	default:
		m.rows = nil
		m.stale = false
	}

	if m.snapshot != nil {
		m.snapshot.Publish(res)
	}
}
