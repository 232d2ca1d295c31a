package render

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/engine"
)

// ErrScreenTooSmall is returned when the screen cannot hold the full grid
var ErrScreenTooSmall = errors.New("screen too small for grid")

// Screen is the subset of tcell.Screen the renderer draws through
type Screen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Fill(r rune, style tcell.Style)
	Show()
}

// GridRenderer draws a snapshot one terminal cell per grid cell, with a status panel to the right
type GridRenderer struct {
	screen Screen
}

// NewGridRenderer creates a renderer bound to screen
func NewGridRenderer(screen Screen) *GridRenderer {
	return &GridRenderer{screen: screen}
}

// Draw renders a full frame. The panel is skipped when the screen is too narrow for it,
// but a screen smaller than the grid itself is an error.
func (r *GridRenderer) Draw(s engine.Snapshot) error {
	width, height := r.screen.Size()
	if width < engine.Cols || height < engine.Rows {
		return fmt.Errorf("%w: need %dx%d, have %dx%d",
			ErrScreenTooSmall, engine.Cols, engine.Rows, width, height)
	}

	bg := tcell.StyleDefault.Background(constants.ColorBackground)
	cell := bg.Foreground(constants.ColorCell)

	r.screen.Fill(' ', bg)

	for row := 0; row < engine.Rows; row++ {
		for col := 0; col < engine.Cols; col++ {
			if s.Grid[row][col] != engine.Empty {
				r.screen.SetContent(col, row, constants.CellGlyph, nil, cell)
			} else {
				r.screen.SetContent(col, row, ' ', nil, bg)
			}
		}
	}

	if width >= engine.Cols+constants.PanelGap+constants.PanelWidth {
		r.drawPanel(s, bg)
	}

	r.screen.Show()
	return nil
}

func (r *GridRenderer) drawPanel(s engine.Snapshot, bg tcell.Style) {
	x := engine.Cols + constants.PanelGap
	text := bg.Foreground(constants.ColorPanelText)

	lines := []string{
		fmt.Sprintf("piece  %v", s.Piece),
		fmt.Sprintf("rot    %d", s.Rotation),
		fmt.Sprintf("ticks  %d", s.Stats.Ticks),
		fmt.Sprintf("pieces %d", s.Stats.Pieces),
		fmt.Sprintf("rows   %d", s.Stats.RowsCleared),
		"",
		constants.TextHelp,
		constants.TextQuit,
	}
	for i, line := range lines {
		r.drawText(x, i, line, text)
	}

	if s.Over {
		r.drawText(x, len(lines)+1, constants.TextGameOver, bg.Foreground(constants.ColorGameOver).Bold(true))
	}
}

func (r *GridRenderer) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// Sync forces a full repaint on screens that support it, used after a resize
func (r *GridRenderer) Sync() {
	if s, ok := r.screen.(interface{ Sync() }); ok {
		s.Sync()
	}
}
