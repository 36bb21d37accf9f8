package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"duelsim/internal/combat"
)

const (
	rowTitle  = 0
	rowBars   = 1
	rowStatus = 2
	rowFX     = 7
	rowArena  = 8
	rowFloor  = 9
	barWidth  = 20
)

var (
	styleText  = tcell.StyleDefault.Foreground(tcell.GetColor("#d9f2ff"))
	styleDim   = tcell.StyleDefault.Foreground(tcell.GetColor("#143036"))
	styleFloor = tcell.StyleDefault.Foreground(tcell.GetColor("#2a3b4f"))
)

var fxGlyphs = map[combat.FXType]rune{
	combat.FXSpark:     '*',
	combat.FXBurn:      '^',
	combat.FXIce:       '#',
	combat.FXExplosion: 'O',
	combat.FXHeal:      '+',
	combat.FXStun:      '@',
}

// ScaleX maps an arena x coordinate onto a terminal column.
func ScaleX(x float64, cols int) int {
	if cols <= 1 {
		return 0
	}
	c := int(x / combat.ArenaWidth * float64(cols-1))
	return max(0, min(cols-1, c))
}

// Draw paints one snapshot plus the log line. It clears the screen first and
// leaves Show to the caller.
func Draw(screen tcell.Screen, s combat.Snapshot, speed float64, logLine string) {
	screen.Clear()
	w, h := screen.Size()

	putString(screen, 0, rowTitle, fmt.Sprintf("DUEL  %s  frame %d  speed x%.2f", s.State, s.Frame, speed), styleText)

	left, right := s.Fighters[0], s.Fighters[1]
	drawBar(screen, 0, rowBars, left)
	drawBar(screen, max(w/2, w-barWidth-len(right.ID)-3), rowBars, right)

	for i, line := range left.StatusLines() {
		putString(screen, 0, rowStatus+i, line, styleText)
	}
	for i, line := range right.StatusLines() {
		putString(screen, w/2, rowStatus+i, line, styleText)
	}

	for x := 0; x < w; x++ {
		screen.SetContent(x, rowFloor, '─', nil, styleFloor)
	}
	for _, f := range s.FX {
		g, ok := fxGlyphs[f.Type]
		if !ok {
			continue
		}
		screen.SetContent(ScaleX(f.X, w), rowFX, g, nil, styleText)
	}
	if _, ok := s.WinnerView(); ok {
		putString(screen, 0, rowFX, strings.Repeat("!", min(w, 3)), styleText)
	}
	for _, f := range s.Fighters {
		screen.SetContent(ScaleX(f.X, w), rowArena, fighterGlyph(f), nil, fighterStyle(f))
	}

	putString(screen, 0, h-1, logLine, styleText)
}

func fighterGlyph(f combat.FighterView) rune {
	if f.HP <= 0 {
		return 'x'
	}
	if f.ID == "" {
		return '?'
	}
	return []rune(f.ID)[0]
}

func fighterStyle(f combat.FighterView) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.GetColor(f.Color)).Bold(true)
}

// drawBar draws "A [#######.....]" with the fill in the fighter's color.
func drawBar(screen tcell.Screen, x, y int, f combat.FighterView) {
	x = putString(screen, x, y, f.ID+" [", styleText)
	filled := 0
	if f.MaxHP > 0 && f.HP > 0 {
		filled = (f.HP*barWidth + f.MaxHP - 1) / f.MaxHP
	}
	for i := 0; i < barWidth; i++ {
		if i < filled {
			screen.SetContent(x+i, y, '█', nil, fighterStyle(f))
		} else {
			screen.SetContent(x+i, y, '·', nil, styleDim)
		}
	}
	screen.SetContent(x+barWidth, y, ']', nil, styleText)
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
