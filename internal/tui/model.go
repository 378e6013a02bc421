// Package tui renders the departure board full-screen and drives the
// refresh cycle: one periodic tick, at most one fetch in flight, and a
// single-handoff message carrying each cycle's immutable result back
// onto the render loop.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/transitkiosk/abfahrt/internal/board"
	"github.com/transitkiosk/abfahrt/internal/clock"
)

// Fetcher produces one board result per call. It must never panic or
// block past its own timeout; every failure comes back as a result kind.
type Fetcher interface {
	Stationboard(ctx context.Context, station string) board.Result
}

// tickMsg fires once per refresh interval.
type tickMsg time.Time

// boardMsg delivers a finished fetch cycle. It is produced exactly once
// per cycle and consumed exactly once by Update.
type boardMsg board.Result

// Model is the kiosk board: scheduler state and display state.
type Model struct {
	fetcher  Fetcher
	station  string
	interval time.Duration
	clk      clock.Clock
	keys     KeyMap

	// snapshot, when set, receives every applied result for the HTTP
	// API. May be nil when the API is disabled.
	snapshot *board.Snapshot

	width  int
	height int

	// Scheduler state. fetchInFlight guarantees at most one
	// outstanding fetch; rearmOnApply makes the periodic timer re-arm
	// when the result is applied rather than when the tick fired, so a
	// slow fetch stretches the cycle instead of stacking fetches.
	fetchInFlight bool
	rearmOnApply  bool
	paused        bool

	// Display state, replaced wholesale on every applied cycle.
	latest     board.Result
	haveResult bool
	rows       []board.Row
	stale      bool
	lastUpdate time.Time
}

// New creates the board model.
func New(fetcher Fetcher, station string, interval time.Duration, clk clock.Clock, snapshot *board.Snapshot) *Model {
	if interval <= 0 {
		interval = board.DefaultRefreshInterval
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Model{
		fetcher:  fetcher,
		station:  station,
		interval: interval,
		clk:      clk,
		keys:     DefaultKeyMap(),
		snapshot: snapshot,
	}
}

// Init starts the first fetch cycle immediately; the periodic timer is
// armed when its result arrives.
func (m *Model) Init() tea.Cmd {
	m.fetchInFlight = true
	m.rearmOnApply = true
	return m.fetchCmd()
}

// fetchCmd runs one fetch off the render loop and hands the result back
// as a boardMsg.
func (m *Model) fetchCmd() tea.Cmd {
	fetcher, station := m.fetcher, m.station
	return func() tea.Msg {
		return boardMsg(fetcher.Stationboard(context.Background(), station))
	}
}

// tickCmd arms the refresh timer for one interval.
func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
