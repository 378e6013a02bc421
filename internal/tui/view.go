package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/transitkiosk/abfahrt/internal/board"
)

const (
	minWidth  = 40
	minHeight = 10

	timeColWidth     = 12
	lineColWidth     = 6
	platformColWidth = 8
)

// View renders the board.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing departure board..."
	}
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("Terminal too small. Resize to at least %dx%d.", minWidth, minHeight)
	}

	header := m.renderHeader()
	body := m.renderBody()
	status := m.renderStatusLine()

	// Body fills the space between header and status line.
	bodyHeight := m.height - lipgloss.Height(header) - 1
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("🚏 " + m.station)
	clock := clockStyle.Render(m.clk.Now().Format("15:04:05"))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + clock
}

func (m *Model) renderBody() string {
	if !m.haveResult {
		return helpStyle.Render("Loading departures...")
	}

	switch m.latest.Kind {
	case board.KindStationNotFound:
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			errorStyle.Render(fmt.Sprintf("Station %q not found!", m.station)),
			"",
			helpStyle.Render("Use abfahrt-find to search for the correct station name."),
		)

	case board.KindNetworkError:
		if !m.stale {
			return lipgloss.JoinVertical(lipgloss.Left,
				"",
				errorStyle.Render("⚠ "+m.latest.Err),
			)
		}
		// Stale rows stay visible; the status line carries the error.
		return m.renderRows()

	case board.KindEmpty:
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			statusStyle.Render("No departures scheduled."),
		)
	}

	if len(m.rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			statusStyle.Render("No upcoming departures."),
		)
	}
	return m.renderRows()
}

func (m *Model) renderRows() string {
	destWidth := m.width - timeColWidth - lineColWidth - platformColWidth - 3
	if destWidth < 10 {
		destWidth = 10
	}

	lines := make([]string, 0, len(m.rows)+1)
	lines = append(lines, columnHeaderStyle.Render(fmt.Sprintf(
		"%-*s %-*s %-*s %*s",
		timeColWidth, "Time", lineColWidth, "Line", destWidth, "Destination", platformColWidth, "Platform",
	)))

	visible := m.height - 4
	for i, row := range m.rows {
		if i >= visible {
			break
		}
		lines = append(lines, m.renderRow(row, destWidth))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(row board.Row, destWidth int) string {
	timeStyle := timeCellStyle
	if row.Imminent {
		timeStyle = imminentCellStyle
	}
	timeCell := timeStyle.Render(fmt.Sprintf("%-*s", timeColWidth, rowTime(row)))

	icon := categoryIcons[row.Category]
	lineCell := lineBadgeStyle(row.Category).Render(fmt.Sprintf("%-*s", lineColWidth, row.Line))

	dest := row.Destination
	if runes := []rune(dest); len(runes) > destWidth {
		dest = string(runes[:destWidth-1]) + "…"
	}
	destCell := destinationStyle.Render(fmt.Sprintf("%-*s", destWidth, dest))

	platform := row.Platform
	if platform == "" {
		platform = "-"
	}
	platformCell := platformStyle.Render(fmt.Sprintf("%*s", platformColWidth, platform))

	return timeCell + " " + icon + lineCell + " " + destCell + " " + platformCell
}

// rowTime formats the departure cell: "Now" for imminent departures,
// clock time plus countdown otherwise, clock time alone for already
// departed rows, and a placeholder when the feed carried no time.
func rowTime(row board.Row) string {
	if row.TimeUnknown {
		return "--:--"
	}
	clock := row.Departure.Format("15:04")
	switch {
	case row.Minutes < 0:
		return clock
	case row.Minutes == 0:
		return "Now"
	default:
		return fmt.Sprintf("%s (%dm)", clock, row.Minutes)
	}
}

func (m *Model) renderStatusLine() string {
	var parts []string

	if m.haveResult {
		parts = append(parts, "Last updated: "+m.lastUpdate.Format("15:04:05"))
		switch m.latest.Kind {
		case board.KindOK:
			parts = append(parts, fmt.Sprintf("%d departures", len(m.rows)))
		case board.KindNetworkError:
			msg := m.latest.Err
			if m.stale {
				msg = "stale · " + msg
			}
			parts = append(parts, errorStyle.Render(msg))
		}
	} else {
		parts = append(parts, "Loading...")
	}

	if m.paused {
		parts = append(parts, errorStyle.Render("PAUSED"))
	}

	left := statusStyle.Render(strings.Join(parts, " · "))
	help := helpStyle.Render("r refresh · space pause · q quit")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + help
}
