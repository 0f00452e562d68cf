package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/quadra/internal/game"
)

// View implements tea.Model. Everything drawn here comes from one snapshot;
// the view never asks the core whether anything is legal.
func (m Model) View() string {
	snap := m.state.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderTopBar(snap))
	b.WriteString("\n")
	b.WriteString(m.renderBoard(snap))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.commandOpen {
		b.WriteString(commandPromptStyle.Render(":" + m.commandInput + "▌"))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderTopBar(snap game.Snapshot) string {
	playerStyle := playerOneStyle
	if snap.ActivePlayer == game.PlayerTwo {
		playerStyle = playerTwoStyle
	}

	turn := fmt.Sprintf("%s to move", playerStyle.Render(m.playerLabel(snap.ActivePlayer)))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		brandStyle.Render("QUADRA"),
		topBarStyle.Render(turn),
		topBarStyle.Render(flag("place", snap.CanPlace)),
		topBarStyle.Render(flag("turn", snap.CanTurn)),
		topBarStyle.Render("rule: "+m.ruleName),
	)
}

// flag renders one availability indicator from the snapshot flags.
func flag(name string, on bool) string {
	if on {
		return flagOnStyle.Render(name + " ✓")
	}
	return flagOffStyle.Render(name + " ·")
}

func (m Model) renderBoard(snap game.Snapshot) string {
	rows := make([][]string, game.BoardHeight)
	for r := 0; r < game.BoardHeight; r++ {
		row := make([]string, game.BoardWidth)
		for c := 0; c < game.BoardWidth; c++ {
			row[c] = m.cellGlyph(snap, game.Index(r, c))
		}
		rows[r] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(boardBorderStyle).
		BorderRow(true).
		BorderColumn(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			idx := game.Index(row, col)
			style := m.cellStyle(snap, idx)
			if idx == snap.Cursor {
				style = style.Bold(true).Background(colorSurface1)
			}
			return style.Padding(0, 1)
		})

	return t.Render()
}

func (m Model) cellGlyph(snap game.Snapshot, idx int) string {
	if game.IsDivider(idx) {
		return m.glyphs.Divider
	}
	switch snap.Board[idx] {
	case game.PlayerOne:
		return m.glyphs.PlayerOne
	case game.PlayerTwo:
		return m.glyphs.PlayerTwo
	default:
		return m.glyphs.Empty
	}
}

func (m Model) cellStyle(snap game.Snapshot, idx int) lipgloss.Style {
	if game.IsDivider(idx) {
		return cellDividerStyle
	}
	switch snap.Board[idx] {
	case game.PlayerOne:
		return playerOneStyle
	case game.PlayerTwo:
		return playerTwoStyle
	default:
		return cellEmptyStyle
	}
}

func (m Model) renderStatus() string {
	if m.statusIsErr {
		return statusErrorStyle.Render(m.status)
	}
	return statusInfoStyle.Render(m.status)
}
