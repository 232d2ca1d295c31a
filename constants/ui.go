package constants

import "github.com/gdamore/tcell/v2"

// Grid Rendering Constants
const (
	// CellGlyph is drawn for every filled cell (WHITE SQUARE)
	CellGlyph = '□'

	// PanelGap is the number of blank columns between the grid and the status panel
	PanelGap = 2

	// PanelWidth is the minimum width the status panel needs to be drawn
	PanelWidth = 16
)

// Grid Colors
var (
	ColorBackground = tcell.ColorBlack
	ColorCell       = tcell.ColorWhite
	ColorPanelText  = tcell.ColorSilver
	ColorGameOver   = tcell.ColorRed
)

// Status panel text
const (
	TextGameOver = "GAME OVER"
	TextHelp     = "a/d move q/e rot"
	TextQuit     = "esc quit"
)
