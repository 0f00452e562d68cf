package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// Semantic aliases.
const (
	colorBrand     = colorMauve
	colorError     = colorRed
	colorSuccess   = colorGreen
	colorInfo      = colorTeal
	colorPlayerOne = colorBlue
	colorPlayerTwo = colorPeach
)

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

var (
	brandStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBrand).
			Bold(true).
			Padding(0, 1)

	topBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 1)

	playerOneStyle = lipgloss.NewStyle().Foreground(colorPlayerOne).Bold(true)
	playerTwoStyle = lipgloss.NewStyle().Foreground(colorPlayerTwo).Bold(true)

	flagOnStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	flagOffStyle = lipgloss.NewStyle().Foreground(colorOverlay0)

	boardBorderStyle = lipgloss.NewStyle().Foreground(colorSurface1)

	cellEmptyStyle   = lipgloss.NewStyle().Foreground(colorOverlay0)
	cellDividerStyle = lipgloss.NewStyle().Foreground(colorSurface1)

	statusInfoStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusErrorStyle = lipgloss.NewStyle().Foreground(colorError)

	commandPromptStyle = lipgloss.NewStyle().Foreground(colorYellow)

	helpStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
)

// glyphSet is the character vocabulary of the board. The unicode set is the
// default; ui.ascii switches to plain characters for terminals without good
// glyph coverage.
type glyphSet struct {
	Empty     string
	Divider   string
	PlayerOne string
	PlayerTwo string
}

var (
	unicodeGlyphs = glyphSet{Empty: "·", Divider: "░", PlayerOne: "●", PlayerTwo: "●"}
	asciiGlyphs   = glyphSet{Empty: ".", Divider: "#", PlayerOne: "X", PlayerTwo: "O"}
)
